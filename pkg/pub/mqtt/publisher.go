// Package mqtt publishes decoded foot-controller events to an MQTT
// broker so the live state can be watched remotely.
package mqtt

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/denisbrodbeck/machineid"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/footworks/footmon.go/pkg/footctl"
)

// Publisher forwards events and retained state snapshots.
type Publisher struct {
	Client      paho.Client
	TopicPrefix string
}

// ClientOptionsFromURL creates ClientOptions from URL. The URL path
// becomes the topic prefix; a client-id query parameter overrides the
// machine-derived default.
func ClientOptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	var server string
	if u.Scheme == "" || u.Scheme == "mqtt" {
		server = "tcp"
	} else {
		server = u.Scheme
	}
	server += "://" + u.Host

	topicPrefix := strings.TrimPrefix(u.Path, "/")
	if topicPrefix != "" && !strings.HasSuffix(topicPrefix, "/") {
		topicPrefix += "/"
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(server).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}

	clientID := u.Query().Get("client-id")
	if clientID == "" {
		if id, err := machineid.ID(); err == nil {
			clientID = "footmon-" + id
		} else {
			glog.Warningf("machine id unavailable: %v", err)
		}
	}
	if clientID != "" {
		opts.SetClientID(clientID)
	}

	return opts, topicPrefix, nil
}

// NewPublisherFromURL creates a Publisher from a broker URL like
// mqtt://host:1883/footmon/.
func NewPublisherFromURL(brokerURL string) (*Publisher, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return &Publisher{
		Client:      paho.NewClient(opts),
		TopicPrefix: topicPrefix,
	}, nil
}

// Connect connects the client and waits for the handshake.
func (p *Publisher) Connect() error {
	tk := p.Client.Connect()
	tk.Wait()
	return tk.Error()
}

// Close implements io.Closer.
func (p *Publisher) Close() error {
	p.Client.Disconnect(0)
	return nil
}

// Publish implements footctl.EventSink. Events go to <prefix>events,
// the state snapshot is retained on <prefix>state.
func (p *Publisher) Publish(ev footctl.Event, snap footctl.State) error {
	payload, err := json.Marshal(encodeEvent(ev, snap))
	if err != nil {
		return err
	}
	p.Client.Publish(p.TopicPrefix+"events", 0, false, payload)
	state, err := json.Marshal(encodeState(snap))
	if err != nil {
		return err
	}
	p.Client.Publish(p.TopicPrefix+"state", 0, true, state)
	return nil
}

type eventView struct {
	Cmd    string `json:"cmd"`
	Type   string `json:"type"`
	Pedal  *int   `json:"pedal,omitempty"`
	Raw    string `json:"raw,omitempty"`
	Button *int   `json:"button,omitempty"`
}

type stateView struct {
	Pedals  []string `json:"pedals"`
	Buttons []bool   `json:"buttons"`
}

func encodeEvent(ev footctl.Event, snap footctl.State) eventView {
	v := eventView{Cmd: fmt.Sprintf("%02x", ev.Command())}
	switch e := ev.(type) {
	case *footctl.PedalEvent:
		v.Type = "pedal"
		pedal := e.Pedal
		v.Pedal = &pedal
		v.Raw = hex.EncodeToString(e.Raw[:])
	case *footctl.ButtonEvent:
		v.Type = "button"
		button := e.Button
		v.Button = &button
	case *footctl.ClearEvent:
		v.Type = "clear"
	default:
		v.Type = "unknown"
	}
	return v
}

func encodeState(snap footctl.State) stateView {
	v := stateView{
		Pedals:  make([]string, footctl.PedalCount),
		Buttons: snap.Buttons[:],
	}
	for i := range snap.Pedals {
		v.Pedals[i] = hex.EncodeToString(snap.Pedals[i][:])
	}
	return v
}
