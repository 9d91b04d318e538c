package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	fx "github.com/footworks/footmon.go/pkg/framework"

	"github.com/footworks/footmon.go/pkg/footctl"
	pub "github.com/footworks/footmon.go/pkg/pub/mqtt"
	"github.com/footworks/footmon.go/pkg/serial"
)

const defaultDevice = "/dev/ttyUSB1"

var (
	mqttURL string

	baud      = flag.Int("baud", 10416, "Serial bit rate. The device clocks at 10416 bps (custom clock).")
	format    = flag.String("format", "8N1", "Line format <data><parity><stop>.")
	handshake = flag.Bool("handshake", false, "Enable RTS/CTS hardware handshake.")
)

func init() {
	if val := os.Getenv("FOOTMON_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "Publish events to this MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	device := defaultDevice
	if flag.NArg() >= 1 {
		device = flag.Arg(0)
	}

	port, err := serial.Open(device)
	if err != nil {
		log.Fatalf("Can't open serial device: %v", err)
	}
	transport := serial.NewTransport(port)
	if err := transport.Configure(*baud, *format, *handshake); err != nil {
		port.Close()
		log.Fatalf("Can't initialize serial device: %v", err)
	}
	line := transport.Line()
	log.Printf("initialized %s with %d bps (%s)", device, line.Baud, line.Format())

	mon := footctl.NewMonitor(transport)
	mon.Renderer = &consoleRenderer{out: os.Stdout}

	if mqttURL != "" {
		publisher, err := pub.NewPublisherFromURL(mqttURL)
		if err != nil {
			port.Close()
			log.Fatalf("Bad MQTT URL: %v", err)
		}
		if err := publisher.Connect(); err != nil {
			port.Close()
			log.Fatalf("MQTT connect: %v", err)
		}
		defer publisher.Close()
		mon.Sink = publisher
	}

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.NamedRun("monitor", fx.RunFunc(func(ctx context.Context) error {
		return fx.RunWithContextCloser(ctx, port, func() error {
			return mon.Run(ctx)
		})
	})))
	if err := runner.Wait(); err != nil {
		log.Fatalln(err)
	}
}

// consoleRenderer refreshes a single status line in place, the way the
// original bench tool displayed the device.
type consoleRenderer struct {
	out *os.File
}

// Render implements footctl.Renderer.
func (r *consoleRenderer) Render(s footctl.State) {
	fmt.Fprintf(r.out, "\rCMD:%02X ", s.LastCmd)
	fmt.Fprintf(r.out, "Exp1:%02X%02X ", s.Pedals[0][0], s.Pedals[0][1])
	fmt.Fprintf(r.out, "Exp2:%02X%02X ", s.Pedals[1][0], s.Pedals[1][1])
	fmt.Fprint(r.out, "Button:")
	for _, pressed := range s.Buttons {
		if pressed {
			fmt.Fprint(r.out, "*")
		} else {
			fmt.Fprint(r.out, " ")
		}
	}
	if s.LastErr != nil {
		fmt.Fprintf(r.out, " [%v]", s.LastErr)
	}
}
