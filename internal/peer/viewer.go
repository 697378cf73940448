package peer

import (
	"encoding/json"

	"github.com/pion/webrtc/v4"

	"github.com/junsooki/WinLens/internal/transport"
)

// Viewer is the viewer side of a WebRTC link. It opens the DataChannels and
// sends the offer.
type Viewer struct {
	pc        *webrtc.PeerConnection
	sig       Signaler
	transport *transport.DataChannelTransport
	remote    candidates
}

// NewViewer creates a Viewer peer manager.
func NewViewer(sig Signaler, cfg Config) (*Viewer, error) {
	pc, err := NewPeerConnection(cfg)
	if err != nil {
		return nil, err
	}

	// Frames are unordered and never retransmitted: a late frame is useless.
	framesOrdered := false
	framesMaxRetransmits := uint16(0)
	framesDC, err := pc.CreateDataChannel(FramesLabel, &webrtc.DataChannelInit{
		Ordered:        &framesOrdered,
		MaxRetransmits: &framesMaxRetransmits,
	})
	if err != nil {
		pc.Close()
		return nil, err
	}

	inputOrdered := true
	inputDC, err := pc.CreateDataChannel(InputLabel, &webrtc.DataChannelInit{
		Ordered: &inputOrdered,
	})
	if err != nil {
		pc.Close()
		return nil, err
	}

	v := &Viewer{
		pc:        pc,
		sig:       sig,
		transport: transport.NewDataChannelTransport(framesDC, inputDC),
	}
	trickle(pc, sig)
	return v, nil
}

// Transport returns the DataChannelTransport for receiving frames and sending input.
func (v *Viewer) Transport() *transport.DataChannelTransport {
	return v.transport
}

// Connect initiates the WebRTC connection by creating and sending an offer.
func (v *Viewer) Connect() error {
	offer, err := v.pc.CreateOffer(nil)
	if err != nil {
		return err
	}

	if err := v.pc.SetLocalDescription(offer); err != nil {
		return err
	}

	offerJSON, err := json.Marshal(offer)
	if err != nil {
		return err
	}

	return v.sig.Signal(TypeOffer, offerJSON)
}

// HandleAnswer processes an incoming SDP answer.
func (v *Viewer) HandleAnswer(payload json.RawMessage) error {
	var answer webrtc.SessionDescription
	if err := json.Unmarshal(payload, &answer); err != nil {
		return err
	}
	if err := v.pc.SetRemoteDescription(answer); err != nil {
		return err
	}
	return v.remote.flush(v.pc)
}

// HandleICECandidate adds a remote ICE candidate.
func (v *Viewer) HandleICECandidate(payload json.RawMessage) error {
	return v.remote.add(v.pc, payload)
}

// Close shuts down the peer connection.
func (v *Viewer) Close() {
	if v.pc != nil {
		v.pc.Close()
	}
}
