package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tourboxd/tourboxd/internal/logger"
	"github.com/tourboxd/tourboxd/internal/mapping"
)

// WebSocket connection and HTTP server tuning, adapted verbatim from
// the teacher's websocket/server.go constants.
const (
	readBufferSize  = 1024
	writeBufferSize = 1024
	maxMessageSize  = 1024 * 1024

	readTimeout        = 60 * time.Second
	writeTimeout       = 10 * time.Second
	pingInterval       = 20 * time.Second
	serverReadTimeout  = 15 * time.Second
	serverWriteTimeout = 15 * time.Second
	serverIdleTimeout  = 60 * time.Second
	shutdownTimeout    = 5 * time.Second
)

// actionMessage is the websocket wire envelope for one emitted action.
// It replaces the teacher's speech-transcription Message{Type,Payload}
// envelope with an action-echo shape of the same kind (spec.md §2 Sink).
type actionMessage struct {
	Type      string `json:"type"`
	Kind      string `json:"kind"`
	Token     string `json:"token"`
	Timestamp int64  `json:"timestamp"`
}

// WebSocketSink broadcasts every emitted action to connected
// diagnostic clients. Grounded on the teacher's WebSocketServer:
// connection map + mutex, ping interval, http.Server with read/write/
// idle timeouts, graceful Shutdown.
type WebSocketSink struct {
	addr     string
	log      logger.Logger
	upgrader websocket.Upgrader

	clientsLock sync.Mutex
	clients     map[*websocket.Conn]bool

	server  *http.Server
	wg      sync.WaitGroup
	started bool
}

// NewWebSocketSink builds a sink that will listen on addr once Start is
// called.
func NewWebSocketSink(addr string, log logger.Logger) *WebSocketSink {
	return &WebSocketSink{
		addr: addr,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBufferSize,
			WriteBufferSize: writeBufferSize,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// Start begins accepting diagnostic client connections in the
// background.
func (s *WebSocketSink) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      mux,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.started = true
		s.log.Info("diagnostics: listening on %s", s.addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("diagnostics: server error: %v", err)
		}
	}()
	return nil
}

func (s *WebSocketSink) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("diagnostics: upgrade error: %v", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		s.log.Debug("diagnostics: SetReadDeadline error: %v", err)
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	s.clientsLock.Lock()
	s.clients[conn] = true
	s.clientsLock.Unlock()

	defer func() {
		_ = conn.Close()
		s.clientsLock.Lock()
		delete(s.clients, conn)
		s.clientsLock.Unlock()
	}()

	go s.pingClient(conn)

	// A diagnostic client only ever receives broadcasts; drain and
	// discard anything it sends so reads keep the deadline fresh.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *WebSocketSink) pingClient(conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for range ticker.C {
		if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeTimeout)); err != nil {
			return
		}
	}
}

// Publish broadcasts the action to every connected client. A send
// failure to one client (it has gone away) is logged and that client
// is dropped; it is not fatal to the pipeline (spec.md §5).
func (s *WebSocketSink) Publish(action mapping.Action) error {
	msg := actionMessage{
		Type:      "action",
		Kind:      action.Kind.String(),
		Token:     action.Token,
		Timestamp: time.Now().Unix(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("diagnostics: marshal action: %w", err)
	}

	s.clientsLock.Lock()
	defer s.clientsLock.Unlock()
	for conn := range s.clients {
		if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			s.log.Debug("diagnostics: SetWriteDeadline error: %v", err)
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.log.Warning("diagnostics: dropping unreachable client: %v", err)
			delete(s.clients, conn)
			_ = conn.Close()
		}
	}
	return nil
}

// Close gracefully shuts the websocket server down, closing every
// connected client first.
func (s *WebSocketSink) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.clientsLock.Lock()
	for conn := range s.clients {
		_ = conn.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
	s.clientsLock.Unlock()

	err := s.server.Shutdown(ctx)
	s.wg.Wait()
	return err
}
