package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// StreamClient handles the WebSocket connection to the live results feed.
// The feed pushes a message when a draw completes, ahead of the same result
// appearing on the polling API.
type StreamClient struct {
	conn            *websocket.Conn
	apiKey          string
	streamURL       string
	mu              sync.RWMutex
	isConnected     bool
	handlers        []ResultHandler
	reconnectConfig ReconnectConfig
	lastMessageTime time.Time
	logger          *log.Logger
}

// ReconnectConfig controls reconnection behavior
type ReconnectConfig struct {
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// ResultHandler is called when a draw result message is received
type ResultHandler func(msg ResultMessage) error

// ResultMessage represents a message from the live results feed
type ResultMessage struct {
	Op       string    `json:"op"`
	ID       int       `json:"id,omitempty"`
	Status   int       `json:"status,omitempty"`
	Draw     *DrawData `json:"draw,omitempty"`
	Heartbeat bool     `json:"heartbeat,omitempty"`
}

// DefaultReconnectConfig returns default reconnection configuration
func DefaultReconnectConfig() ReconnectConfig {
	return ReconnectConfig{
		MaxRetries:        10,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 1.5,
	}
}

// NewStreamClient creates a new live results stream client
func NewStreamClient(streamURL, apiKey string, logger *log.Logger) *StreamClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &StreamClient{
		apiKey:          apiKey,
		streamURL:       streamURL,
		handlers:        make([]ResultHandler, 0),
		reconnectConfig: DefaultReconnectConfig(),
		logger:          logger,
	}
}

// Connect establishes the connection to the live results feed
func (s *StreamClient) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isConnected {
		return fmt.Errorf("already connected")
	}

	s.logger.Printf("Connecting to results stream: %s", s.streamURL)

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, s.streamURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to results stream: %w", err)
	}

	s.conn = conn
	s.isConnected = true
	s.lastMessageTime = time.Now()

	s.logger.Printf("Connected to results stream")

	// Start message reading loop
	go s.readMessages()

	return nil
}

// Authenticate sends the authentication message
func (s *StreamClient) Authenticate(ctx context.Context) error {
	s.mu.RLock()
	if !s.isConnected || s.conn == nil {
		s.mu.RUnlock()
		return fmt.Errorf("not connected to stream")
	}
	s.mu.RUnlock()

	authMsg := map[string]interface{}{
		"op":     "connection",
		"apiKey": s.apiKey,
	}

	return s.sendMessage(authMsg)
}

// SubscribeToGames subscribes to draw results for the named games
func (s *StreamClient) SubscribeToGames(ctx context.Context, gameNames []string) error {
	s.mu.RLock()
	if !s.isConnected || s.conn == nil {
		s.mu.RUnlock()
		return fmt.Errorf("not connected to stream")
	}
	s.mu.RUnlock()

	subMsg := map[string]interface{}{
		"op":        "subscribe",
		"apiKey":    s.apiKey,
		"games":     gameNames,
		"heartbeat": true,
	}

	s.logger.Printf("Subscribing to %d games", len(gameNames))
	return s.sendMessage(subMsg)
}

// AddHandler registers a result handler
func (s *StreamClient) AddHandler(handler ResultHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// readMessages reads messages from the WebSocket connection
func (s *StreamClient) readMessages() {
	defer s.Close()

	for {
		var raw json.RawMessage
		err := s.conn.ReadJSON(&raw)
		if err != nil {
			s.logger.Printf("Error reading stream message: %v", err)
			s.mu.Lock()
			s.isConnected = false
			s.mu.Unlock()
			return
		}

		s.mu.Lock()
		s.lastMessageTime = time.Now()
		s.mu.Unlock()

		var msg ResultMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.logger.Printf("Malformed stream message: %v", err)
			continue
		}

		if msg.Heartbeat {
			continue
		}

		// Call registered handlers
		s.mu.RLock()
		handlers := s.handlers
		s.mu.RUnlock()

		for _, handler := range handlers {
			if err := handler(msg); err != nil {
				s.logger.Printf("Handler error: %v", err)
			}
		}
	}
}

// sendMessage sends a JSON message to the stream
func (s *StreamClient) sendMessage(msg interface{}) error {
	s.mu.RLock()
	if !s.isConnected || s.conn == nil {
		s.mu.RUnlock()
		return fmt.Errorf("not connected")
	}
	conn := s.conn
	s.mu.RUnlock()

	return conn.WriteJSON(msg)
}

// IsConnected returns whether the stream is connected
func (s *StreamClient) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isConnected
}

// LastMessageTime returns the time of the last received message
func (s *StreamClient) LastMessageTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMessageTime
}

// Close closes the stream connection
func (s *StreamClient) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}

	s.isConnected = false
	return s.conn.Close()
}

// Ping sends a ping message to keep the connection alive
func (s *StreamClient) Ping() error {
	return s.sendMessage(map[string]interface{}{
		"op": "ping",
	})
}
