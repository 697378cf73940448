// Package mirror serves the presented frames to remote viewers over a
// websocket and feeds their key presses back into the session. A viewer may
// upgrade to a WebRTC DataChannel link, signaled over the same websocket.
package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/junsooki/WinLens/internal/encoder"
	"github.com/junsooki/WinLens/internal/frame"
	"github.com/junsooki/WinLens/internal/input"
	"github.com/junsooki/WinLens/internal/interaction"
	"github.com/junsooki/WinLens/internal/peer"
	"github.com/junsooki/WinLens/internal/transport"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
	pingEvery = (pongWait * 9) / 10
)

var errClientGone = errors.New("viewer disconnected")

// KeyFunc receives key presses from remote viewers.
type KeyFunc func(k interaction.Key)

// Server broadcasts the latest frame to every connected viewer.
type Server struct {
	upgrader   websocket.Upgrader
	enc        encoder.Encoder
	session    string
	transforms []string
	onKey      KeyFunc
	rtc        *peer.Config

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte
}

type client struct {
	conn *websocket.Conn
	// send holds at most one pending frame; a newer frame replaces it.
	send chan []byte
	text chan Message
	done chan struct{}

	mu     sync.Mutex
	host   *peer.Host
	frames transport.FrameSender
}

// NewServer creates a mirror for one session. transforms is sent to each
// viewer on connect so it can label selector keys.
func NewServer(session string, transforms []string, enc encoder.Encoder, onKey KeyFunc) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		enc:        enc,
		session:    session,
		transforms: transforms,
		onKey:      onKey,
		clients:    make(map[*client]struct{}),
	}
}

// EnableWebRTC lets viewers send an offer and move frames and keys onto
// DataChannels. Without it offers are answered with an error message.
func (s *Server) EnableWebRTC(cfg peer.Config) {
	s.rtc = &cfg
}

// Handler returns the HTTP routes served by the mirror.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/frame.jpg", s.handleFrame)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Run listens on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		s.closeAll()
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Present encodes f and hands it to every viewer. Viewers that have not
// drained their previous frame skip it.
func (s *Server) Present(f *frame.Frame) error {
	data, err := s.enc.Encode(f)
	if err != nil {
		return fmt.Errorf("mirror encode: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = data
	for c := range s.clients {
		offer(c.send, data)
	}
	return nil
}

// ClientCount returns the number of connected viewers.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// RTCCount returns the number of viewers receiving frames over a DataChannel.
func (s *Server) RTCCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for c := range s.clients {
		if c.rtcOpen() {
			n++
		}
	}
	return n
}

func offer(ch chan []byte, data []byte) {
	select {
	case ch <- data:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- data:
	default:
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	conn.SetReadLimit(1 << 16)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c := &client{
		conn: conn,
		send: make(chan []byte, 1),
		text: make(chan Message, 32),
		done: make(chan struct{}),
	}

	// No writer goroutine yet, so the hello can go out directly.
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	hello := Message{Type: TypeHello, Session: s.session, Transforms: s.transforms}
	if err := conn.WriteJSON(hello); err != nil {
		conn.Close()
		return
	}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	if s.latest != nil {
		offer(c.send, s.latest)
	}
	s.mu.Unlock()
	log.Printf("mirror: viewer connected from %s", r.RemoteAddr)

	go s.writeLoop(c)
	s.readLoop(c)
}

func (s *Server) readLoop(c *client) {
	defer s.removeClient(c)
	for {
		messageType, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		var msg Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			continue
		}
		s.dispatch(c, msg)
	}
}

func (s *Server) dispatch(c *client, msg Message) {
	switch msg.Type {
	case TypeOffer:
		if err := s.acceptOffer(c, msg.Payload); err != nil {
			log.Printf("mirror: webrtc offer: %v", err)
			_ = c.queue(Message{Type: TypeError, Msg: err.Error()})
		}
	case TypeICECandidate:
		c.mu.Lock()
		host := c.host
		c.mu.Unlock()
		if host == nil {
			return
		}
		if err := host.HandleICECandidate(msg.Payload); err != nil {
			log.Printf("mirror: ICE candidate: %v", err)
		}
	default:
		s.key(msg.event())
	}
}

func (s *Server) key(e input.Event) {
	k, ok := e.KeyValue()
	if !ok || s.onKey == nil {
		return
	}
	s.onKey(k)
}

func (s *Server) acceptOffer(c *client, payload json.RawMessage) error {
	if s.rtc == nil {
		return errors.New("webrtc not enabled")
	}
	c.mu.Lock()
	if c.host != nil {
		c.mu.Unlock()
		return errors.New("viewer already has a webrtc link")
	}
	host, err := peer.NewHost(c, *s.rtc)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.host = host
	c.frames = host.Transport()
	c.mu.Unlock()

	host.Transport().OnInput(func(data []byte) {
		var e input.Event
		if err := json.Unmarshal(data, &e); err != nil {
			return
		}
		s.key(e)
	})
	return host.HandleOffer(payload)
}

// Signal queues a signaling message for the viewer.
func (c *client) Signal(msgType string, payload json.RawMessage) error {
	return c.queue(Message{Type: msgType, Payload: payload})
}

func (c *client) queue(msg Message) error {
	select {
	case c.text <- msg:
		return nil
	case <-c.done:
		return errClientGone
	}
}

func (c *client) rtcOpen() bool {
	c.mu.Lock()
	host := c.host
	c.mu.Unlock()
	return host != nil && host.Transport().FramesOpen()
}

// sendFrame prefers the DataChannel. A busy channel skips the frame; a
// missing or closed one falls back to the websocket.
func (c *client) sendFrame(data []byte) error {
	c.mu.Lock()
	frames := c.frames
	c.mu.Unlock()
	if frames != nil {
		err := frames.SendFrame(data)
		if !errors.Is(err, transport.ErrNotOpen) {
			return nil
		}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (s *Server) writeLoop(c *client) {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			if err := c.sendFrame(data); err != nil {
				_ = c.conn.Close()
				return
			}
		case msg := <-c.text:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				_ = c.conn.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.conn.Close()
				return
			}
		}
	}
}

func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.clients, c)
	s.mu.Unlock()
	close(c.done)
	c.conn.Close()

	c.mu.Lock()
	host := c.host
	c.mu.Unlock()
	if host != nil {
		host.Close()
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()
	for _, c := range clients {
		s.removeClient(c)
	}
}

func (s *Server) handleFrame(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	data := s.latest
	s.mu.Unlock()
	if data == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
