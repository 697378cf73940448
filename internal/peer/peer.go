// Package peer negotiates the WebRTC link between a lens and a viewer. Offers,
// answers and ICE candidates travel over an existing signaling channel.
package peer

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/pion/ice/v4"
	"github.com/pion/webrtc/v4"
)

// Signal message types.
const (
	TypeOffer        = "offer"
	TypeAnswer       = "answer"
	TypeICECandidate = "ice-candidate"
)

// DataChannel labels.
const (
	FramesLabel = "frames"
	InputLabel  = "input"
)

// DefaultICEServers is the default STUN configuration.
var DefaultICEServers = []string{"stun:stun.l.google.com:19302", "stun:stun1.l.google.com:19302"}

// Signaler delivers a signal payload to the other side.
type Signaler interface {
	Signal(msgType string, payload json.RawMessage) error
}

// Config configures a peer connection.
type Config struct {
	ICEServers []string
	// Loopback gathers only IPv4 host candidates including 127.0.0.1, for
	// peers on the same machine.
	Loopback bool
}

// NewPeerConnection creates a configured PeerConnection.
func NewPeerConnection(cfg Config) (*webrtc.PeerConnection, error) {
	var servers []webrtc.ICEServer
	if len(cfg.ICEServers) > 0 {
		servers = []webrtc.ICEServer{{URLs: cfg.ICEServers}}
	}

	se := webrtc.SettingEngine{}
	if cfg.Loopback {
		se.SetIncludeLoopbackCandidate(true)
		se.SetICEMulticastDNSMode(ice.MulticastDNSModeDisabled)
		se.SetNetworkTypes([]webrtc.NetworkType{webrtc.NetworkTypeUDP4})
	}
	api := webrtc.NewAPI(webrtc.WithSettingEngine(se))

	pc, err := api.NewPeerConnection(webrtc.Configuration{ICEServers: servers})
	if err != nil {
		return nil, err
	}
	pc.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		log.Printf("peer connection state: %s", state.String())
	})
	return pc, nil
}

// candidates holds remote ICE candidates that arrive before the remote
// description is set.
type candidates struct {
	mu        sync.Mutex
	remoteSet bool
	queue     []webrtc.ICECandidateInit
}

func (c *candidates) add(pc *webrtc.PeerConnection, payload json.RawMessage) error {
	var candidate webrtc.ICECandidateInit
	if err := json.Unmarshal(payload, &candidate); err != nil {
		return err
	}
	c.mu.Lock()
	if !c.remoteSet {
		c.queue = append(c.queue, candidate)
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	return pc.AddICECandidate(candidate)
}

func (c *candidates) flush(pc *webrtc.PeerConnection) error {
	c.mu.Lock()
	c.remoteSet = true
	queue := c.queue
	c.queue = nil
	c.mu.Unlock()
	for _, candidate := range queue {
		if err := pc.AddICECandidate(candidate); err != nil {
			return err
		}
	}
	return nil
}

func trickle(pc *webrtc.PeerConnection, sig Signaler) {
	pc.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			return
		}
		data, err := json.Marshal(c.ToJSON())
		if err != nil {
			log.Printf("marshal ICE candidate: %v", err)
			return
		}
		_ = sig.Signal(TypeICECandidate, data)
	})
}
