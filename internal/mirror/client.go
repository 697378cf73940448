package mirror

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/junsooki/WinLens/internal/input"
	"github.com/junsooki/WinLens/internal/interaction"
	"github.com/junsooki/WinLens/internal/peer"
)

// Handler callbacks for incoming mirror messages.
type Handler struct {
	OnHello func(session string, transforms []string)
	OnFrame func(data []byte)
	OnError func(msg string)
}

// Client is a viewer-side mirror connection.
type Client struct {
	url     string
	handler Handler
	rtc     *peer.Config

	conn   *websocket.Conn
	viewer *peer.Viewer
	mu     sync.Mutex
	done   chan struct{}
	closed bool
}

// NewClient creates a mirror client for a ws:// URL ending in /ws.
func NewClient(url string, handler Handler) *Client {
	return &Client{
		url:     url,
		handler: handler,
		done:    make(chan struct{}),
	}
}

// EnableWebRTC makes Connect offer a DataChannel link after dialing. Frames
// keep arriving over the websocket until the link is open.
func (c *Client) EnableWebRTC(cfg peer.Config) {
	c.rtc = &cfg
}

// Connect dials the mirror and starts reading messages.
func (c *Client) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("mirror dial: %w", err)
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readLoop()

	if c.rtc == nil {
		return nil
	}
	v, err := peer.NewViewer(c, *c.rtc)
	if err != nil {
		c.Close()
		return fmt.Errorf("webrtc viewer: %w", err)
	}
	v.Transport().OnFrame(func(data []byte) {
		if c.handler.OnFrame != nil {
			c.handler.OnFrame(data)
		}
	})
	c.mu.Lock()
	c.viewer = v
	c.mu.Unlock()
	if err := v.Connect(); err != nil {
		c.Close()
		return fmt.Errorf("webrtc offer: %w", err)
	}
	return nil
}

// Done is closed once the connection is gone.
func (c *Client) Done() <-chan struct{} { return c.done }

// RTCOpen reports whether frames and keys travel over DataChannels.
func (c *Client) RTCOpen() bool {
	c.mu.Lock()
	v := c.viewer
	c.mu.Unlock()
	return v != nil && v.Transport().FramesOpen() && v.Transport().InputOpen()
}

// Close shuts down the connection.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.done)
	v, conn := c.viewer, c.conn
	c.mu.Unlock()

	if v != nil {
		v.Close()
	}
	if conn != nil {
		conn.Close()
	}
}

// SendKey forwards one key press to the lens, over the input DataChannel when
// it is open.
func (c *Client) SendKey(k interaction.Key) error {
	e := input.KeyDown(k)

	c.mu.Lock()
	v, closed := c.viewer, c.closed
	c.mu.Unlock()
	if v != nil && !closed {
		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		if err := v.Transport().SendInput(data); err == nil {
			return nil
		}
	}
	return c.send(Message{Type: string(e.Type), Key: e.Key})
}

// Signal sends an offer or ICE candidate to the lens.
func (c *Client) Signal(msgType string, payload json.RawMessage) error {
	return c.send(Message{Type: msgType, Payload: payload})
}

func (c *Client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil || c.closed {
		return fmt.Errorf("not connected")
	}
	return c.conn.WriteJSON(msg)
}

func (c *Client) readLoop() {
	defer c.Close()
	for {
		messageType, payload, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				log.Printf("mirror read error: %v", err)
			}
			return
		}
		switch messageType {
		case websocket.BinaryMessage:
			if c.handler.OnFrame != nil {
				c.handler.OnFrame(payload)
			}
		case websocket.TextMessage:
			var msg Message
			if err := json.Unmarshal(payload, &msg); err != nil {
				continue
			}
			c.dispatch(msg)
		}
	}
}

func (c *Client) dispatch(msg Message) {
	switch msg.Type {
	case TypeHello:
		if c.handler.OnHello != nil {
			c.handler.OnHello(msg.Session, msg.Transforms)
		}
	case TypeAnswer, TypeICECandidate:
		c.mu.Lock()
		v := c.viewer
		c.mu.Unlock()
		if v == nil {
			return
		}
		var err error
		if msg.Type == TypeAnswer {
			err = v.HandleAnswer(msg.Payload)
		} else {
			err = v.HandleICECandidate(msg.Payload)
		}
		if err != nil {
			log.Printf("mirror webrtc: %v", err)
		}
	case TypeError:
		if c.handler.OnError != nil {
			c.handler.OnError(msg.Msg)
		}
	}
}
