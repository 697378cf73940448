package peer

import (
	"encoding/json"
	"log"

	"github.com/pion/webrtc/v4"

	"github.com/junsooki/WinLens/internal/transport"
)

// Host is the lens side of a WebRTC link. It answers a viewer's offer and
// adopts the DataChannels the viewer opened.
type Host struct {
	pc        *webrtc.PeerConnection
	sig       Signaler
	transport *transport.DataChannelTransport
	remote    candidates
}

// NewHost creates a Host peer manager.
func NewHost(sig Signaler, cfg Config) (*Host, error) {
	pc, err := NewPeerConnection(cfg)
	if err != nil {
		return nil, err
	}

	h := &Host{
		pc:        pc,
		sig:       sig,
		transport: transport.NewDataChannelTransport(nil, nil),
	}

	pc.OnDataChannel(func(dc *webrtc.DataChannel) {
		log.Printf("data channel received: %s", dc.Label())
		switch dc.Label() {
		case FramesLabel:
			h.transport.SetFramesChannel(dc)
		case InputLabel:
			h.transport.SetInputChannel(dc)
		}
	})
	trickle(pc, sig)

	return h, nil
}

// Transport returns the DataChannelTransport for sending frames and receiving input.
func (h *Host) Transport() *transport.DataChannelTransport {
	return h.transport
}

// HandleOffer processes an incoming offer and signals the answer.
func (h *Host) HandleOffer(payload json.RawMessage) error {
	var offer webrtc.SessionDescription
	if err := json.Unmarshal(payload, &offer); err != nil {
		return err
	}

	if err := h.pc.SetRemoteDescription(offer); err != nil {
		return err
	}
	if err := h.remote.flush(h.pc); err != nil {
		return err
	}

	answer, err := h.pc.CreateAnswer(nil)
	if err != nil {
		return err
	}

	if err := h.pc.SetLocalDescription(answer); err != nil {
		return err
	}

	answerJSON, err := json.Marshal(answer)
	if err != nil {
		return err
	}

	return h.sig.Signal(TypeAnswer, answerJSON)
}

// HandleICECandidate adds a remote ICE candidate.
func (h *Host) HandleICECandidate(payload json.RawMessage) error {
	return h.remote.add(h.pc, payload)
}

// Close shuts down the peer connection.
func (h *Host) Close() {
	if h.pc != nil {
		h.pc.Close()
	}
}
