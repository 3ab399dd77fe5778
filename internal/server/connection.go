package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/pokerodds/equity"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	server    *Server
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.Mutex
	running   map[string]context.CancelFunc
	closeOnce sync.Once
	sendMu    sync.RWMutex
	closed    bool
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, server *Server) *Connection {
	ctx, cancel := context.WithCancel(server.ctx)

	return &Connection{
		conn:    conn,
		send:    make(chan *Message, 256),
		server:  server,
		logger:  server.logger.WithPrefix("conn"),
		ctx:     ctx,
		cancel:  cancel,
		running: make(map[string]context.CancelFunc),
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection and cancels its simulations
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		c.sendMu.Lock()
		c.closed = true
		close(c.send)
		c.sendMu.Unlock()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg *Message) error {
	c.sendMu.RLock()
	defer c.sendMu.RUnlock()
	if c.closed {
		return ErrConnectionClosed
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			var (
				syntaxErr *json.SyntaxError
				typeErr   *json.UnmarshalTypeError
			)
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				c.sendError("", ErrCodeInvalidMessage, "Malformed JSON")
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := c.server.clock.NewTicker(pingPeriod, "conn", "ping")
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "request", msg.RequestID)

	switch msg.Type {
	case MessageTypeEquity:
		var data EquityRequest
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, ErrCodeInvalidMessage, "Failed to parse equity request")
			return
		}
		c.handleEquity(msg.RequestID, data)

	case MessageTypeCancel:
		c.handleCancel(msg.RequestID)

	default:
		c.sendError(msg.RequestID, ErrCodeUnknownType, "Unknown message type: "+msg.Type.String())
	}
}

func (c *Connection) handleEquity(requestID string, data EquityRequest) {
	cfg, err := data.Config(c.server.opts.MaxTrials)
	if err != nil {
		c.sendError(requestID, ErrCodeInvalidRequest, err.Error())
		return
	}

	if requestID == "" {
		requestID = c.server.ids.Generate()
	}

	ctx, cancel := context.WithCancel(c.ctx)
	c.mu.Lock()
	if _, dup := c.running[requestID]; dup {
		c.mu.Unlock()
		cancel()
		c.sendError(requestID, ErrCodeDuplicate, "Request already running: "+requestID)
		return
	}
	if !c.server.sims.TryAcquire(1) {
		c.mu.Unlock()
		cancel()
		c.sendError(requestID, ErrCodeBusy, "Too many simulations running, try again later")
		return
	}
	c.running[requestID] = cancel
	c.mu.Unlock()

	cfg.Workers = c.server.opts.Workers
	cfg.Clock = c.server.clock
	cfg.Logger = c.logger
	cfg.OnProgress = c.progressReporter(requestID)

	go func() {
		defer c.server.sims.Release(1)
		defer func() {
			c.mu.Lock()
			delete(c.running, requestID)
			c.mu.Unlock()
			cancel()
		}()

		c.logger.Info("Running simulation", "request", requestID, "players", cfg.Players, "trials", cfg.Trials)
		res, err := equity.Run(ctx, cfg)
		if err != nil {
			c.sendError(requestID, ErrCodeSimulation, err.Error())
			return
		}
		c.sendTyped(MessageTypeResult, requestID, NewResultData(res))
	}()
}

func (c *Connection) handleCancel(requestID string) {
	c.mu.Lock()
	cancel, ok := c.running[requestID]
	c.mu.Unlock()
	if !ok {
		c.sendError(requestID, ErrCodeNotFound, "No running request: "+requestID)
		return
	}
	c.logger.Info("Cancelling simulation", "request", requestID)
	cancel()
}

// progressReporter throttles progress messages to the configured
// interval. The final update is always sent.
func (c *Connection) progressReporter(requestID string) func(done, total int) {
	var (
		mu   sync.Mutex
		last time.Time
	)
	interval := c.server.opts.ProgressInterval
	return func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		if done < total && !last.IsZero() && c.server.clock.Since(last) < interval {
			return
		}
		last = c.server.clock.Now()
		c.sendTyped(MessageTypeProgress, requestID, ProgressData{Done: done, Total: total})
	}
}

func (c *Connection) sendTyped(t MessageType, requestID string, data any) {
	msg, err := NewMessage(t, requestID, data, c.server.clock.Now())
	if err != nil {
		c.logger.Error("Failed to create message", "type", t, "error", err)
		return
	}
	if err := c.SendMessage(msg); err != nil {
		c.logger.Debug("Dropped message for closed connection", "type", t, "error", err)
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(requestID, code, message string) {
	c.sendTyped(MessageTypeError, requestID, ErrorData{Code: code, Message: message})
}
