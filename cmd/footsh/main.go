package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/footworks/footmon.go/pkg/footctl"
	"github.com/footworks/footmon.go/pkg/serial"
)

// footsh is an interactive bench companion to footmon: open the port,
// poke raw bytes at the device, and watch decoded events one at a
// time.

const defaultDevice = "/dev/ttyUSB1"

const sessionKey = "$session"

type session struct {
	device    string
	port      serial.Handle
	transport *serial.Transport
	decoder   *footctl.Decoder
	state     footctl.State
}

func main() {
	flag.Parse()

	s := &session{device: defaultDevice, decoder: footctl.NewDecoder()}
	if flag.NArg() >= 1 {
		s.device = flag.Arg(0)
	}

	sh := ishell.New()
	sh.Println("footsh - foot controller diagnostics")
	sh.SetPrompt(s.device + " > ")
	sh.Set(sessionKey, s)
	for _, cmd := range commands {
		sh.AddCmd(cmd)
	}
	sh.Run()
	s.close()
}

func sessionFrom(c *ishell.Context) *session {
	return c.Get(sessionKey).(*session)
}

// mustBeOpen wraps command funcs requiring an open port.
func mustBeOpen(fn func(*ishell.Context, *session)) func(*ishell.Context) {
	return func(c *ishell.Context) {
		s := sessionFrom(c)
		if s.transport == nil {
			c.Err(fmt.Errorf("port not open"))
			return
		}
		fn(c, s)
	}
}

func (s *session) close() {
	if s.port != nil {
		s.port.Close()
		s.port, s.transport = nil, nil
	}
}

var commands = []*ishell.Cmd{
	{
		Name: "open",
		Help: "open [path] [baud] [format]: open and configure the device",
		Func: func(c *ishell.Context) {
			s := sessionFrom(c)
			s.close()
			device, baud, format := s.device, 10416, "8N1"
			if len(c.Args) >= 1 {
				device = c.Args[0]
			}
			if len(c.Args) >= 2 {
				val, err := strconv.Atoi(c.Args[1])
				if err != nil {
					c.Err(fmt.Errorf("bad bit rate %q", c.Args[1]))
					return
				}
				baud = val
			}
			if len(c.Args) >= 3 {
				format = c.Args[2]
			}
			port, err := serial.Open(device)
			if err != nil {
				c.Err(err)
				return
			}
			transport := serial.NewTransport(port)
			if err := transport.Configure(baud, format, false); err != nil {
				port.Close()
				c.Err(err)
				return
			}
			s.device, s.port, s.transport = device, port, transport
			line := transport.Line()
			c.Printf("%s: %d bps %s\n", device, line.Baud, line.Format())
		},
	},
	{
		Name: "close",
		Help: "close the device",
		Func: mustBeOpen(func(c *ishell.Context, s *session) {
			s.close()
			c.Println("closed")
		}),
	},
	{
		Name: "line",
		Help: "show the achieved line configuration",
		Func: mustBeOpen(func(c *ishell.Context, s *session) {
			line := s.transport.Line()
			c.Printf("%d bps %s handshake=%v\n", line.Baud, line.Format(), line.Handshake)
		}),
	},
	{
		Name: "send",
		Help: "send <hex> ...: write raw bytes and drain",
		Func: mustBeOpen(func(c *ishell.Context, s *session) {
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("nothing to send"))
				return
			}
			buf := make([]byte, 0, len(c.Args))
			for _, arg := range c.Args {
				val, err := strconv.ParseUint(arg, 16, 8)
				if err != nil {
					c.Err(fmt.Errorf("bad byte %q", arg))
					return
				}
				buf = append(buf, byte(val))
			}
			if err := s.transport.Send(buf); err != nil {
				c.Err(err)
				return
			}
			if err := s.transport.Drain(); err != nil {
				c.Err(err)
				return
			}
			c.Printf("sent %d bytes\n", len(buf))
		}),
	},
	{
		Name: "recv",
		Help: "recv <n> [ms]: read n bytes with a bounded timeout",
		Func: mustBeOpen(func(c *ishell.Context, s *session) {
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("byte count required"))
				return
			}
			n, err := strconv.Atoi(c.Args[0])
			if err != nil || n <= 0 {
				c.Err(fmt.Errorf("bad byte count %q", c.Args[0]))
				return
			}
			tmo := serial.Bounded(time.Second)
			if len(c.Args) >= 2 {
				ms, err := strconv.Atoi(c.Args[1])
				if err != nil || ms < 0 {
					c.Err(fmt.Errorf("bad timeout %q", c.Args[1]))
					return
				}
				tmo = serial.Bounded(time.Duration(ms) * time.Millisecond)
			}
			buf, err := s.transport.Receive(n, tmo)
			if err != nil {
				c.Err(err)
			}
			c.Printf("got % 02X\n", buf)
		}),
	},
	{
		Name: "flush",
		Help: "discard buffered bytes in both directions",
		Func: mustBeOpen(func(c *ishell.Context, s *session) {
			if err := s.port.Flush(); err != nil {
				c.Err(err)
			}
		}),
	},
	{
		Name: "poll",
		Help: "poll [count]: decode up to count events (default 1)",
		Func: mustBeOpen(func(c *ishell.Context, s *session) {
			count := 1
			if len(c.Args) >= 1 {
				val, err := strconv.Atoi(c.Args[0])
				if err != nil || val <= 0 {
					c.Err(fmt.Errorf("bad count %q", c.Args[0]))
					return
				}
				count = val
			}
			for i := 0; i < count; i++ {
				ev, err := s.decoder.Next(s.transport)
				if err != nil {
					c.Err(err)
					return
				}
				if ev == nil {
					c.Println("no event")
					continue
				}
				s.state.Apply(ev)
				printEvent(c, ev)
			}
		}),
	},
	{
		Name: "status",
		Help: "show the decoded device state",
		Func: func(c *ishell.Context) {
			s := sessionFrom(c)
			snap := s.state.Snapshot()
			c.Printf("CMD:%02X Exp1:%02X%02X Exp2:%02X%02X Button:",
				snap.LastCmd,
				snap.Pedals[0][0], snap.Pedals[0][1],
				snap.Pedals[1][0], snap.Pedals[1][1])
			for _, pressed := range snap.Buttons {
				if pressed {
					c.Print("*")
				} else {
					c.Print(" ")
				}
			}
			c.Println()
		},
	},
}

func printEvent(c *ishell.Context, ev footctl.Event) {
	switch e := ev.(type) {
	case *footctl.PedalEvent:
		c.Printf("pedal %d: %02X%02X\n", e.Pedal, e.Raw[0], e.Raw[1])
	case *footctl.ButtonEvent:
		c.Printf("button %d pressed\n", e.Button)
	case *footctl.ClearEvent:
		c.Println("buttons cleared")
	}
}
