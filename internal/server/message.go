package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/pokerodds/equity"
	"github.com/lox/pokerodds/poker"
)

// MessageType represents a WebSocket message type with type safety
type MessageType string

const (
	// Client to server messages
	MessageTypeEquity MessageType = "equity"
	MessageTypeCancel MessageType = "cancel"

	// Server to client messages
	MessageTypeProgress MessageType = "progress"
	MessageTypeResult   MessageType = "result"
	MessageTypeError    MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Error codes sent in ErrorData
const (
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeUnknownType    = "unknown_message_type"
	ErrCodeBusy           = "busy"
	ErrCodeDuplicate      = "duplicate_request"
	ErrCodeNotFound       = "not_found"
	ErrCodeSimulation     = "simulation_failed"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message stamped with now
func NewMessage(messageType MessageType, requestID string, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
		RequestID: requestID,
	}, nil
}

// EquityRequest asks for a simulation. Hands are two-card strings such
// as "AsKd"; player 0 is the hero.
type EquityRequest struct {
	Players int      `json:"players"`
	Hands   []string `json:"hands,omitempty"`
	Board   string   `json:"board,omitempty"`
	Trials  int      `json:"trials"`
	Seed    int64    `json:"seed,omitempty"`
}

// Config converts the request into a simulation config, rejecting
// anything above maxTrials.
func (r EquityRequest) Config(maxTrials int) (equity.Config, error) {
	if r.Trials > maxTrials {
		return equity.Config{}, fmt.Errorf("%d trials exceeds the limit of %d", r.Trials, maxTrials)
	}

	cfg := equity.Config{Players: r.Players, Trials: r.Trials, Seed: r.Seed}
	for i, h := range r.Hands {
		cards, err := poker.ParseCards(h)
		if err != nil {
			return equity.Config{}, fmt.Errorf("hand %d: %w", i, err)
		}
		if len(cards) != 2 {
			return equity.Config{}, fmt.Errorf("hand %d: want 2 cards, got %d", i, len(cards))
		}
		cfg.Hands = append(cfg.Hands, [2]poker.Card{cards[0], cards[1]})
	}

	board, err := poker.ParseCards(r.Board)
	if err != nil {
		return equity.Config{}, fmt.Errorf("board: %w", err)
	}
	cfg.Board = board

	return cfg, cfg.Validate()
}

// ProgressData reports how many trials have completed
type ProgressData struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// PlayerResult is one seat's share of the showdowns
type PlayerResult struct {
	Seat  int `json:"seat"`
	Wins  int `json:"wins"`
	Draws int `json:"draws"`
}

// ResultData is the final aggregate of a simulation
type ResultData struct {
	Trials      int            `json:"trials"`
	Wins        int            `json:"wins"`
	Draws       int            `json:"draws"`
	Losses      int            `json:"losses"`
	WinRate     float64        `json:"winRate"`
	DrawRate    float64        `json:"drawRate"`
	LossRate    float64        `json:"lossRate"`
	Equity      float64        `json:"equity"`
	EquityLow   float64        `json:"equityLow"`
	EquityHigh  float64        `json:"equityHigh"`
	Categories  map[string]int `json:"categories"`
	Players     []PlayerResult `json:"players"`
	Seed        int64          `json:"seed"`
	ElapsedMs   int64          `json:"elapsedMs"`
	Interrupted bool           `json:"interrupted"`
}

// NewResultData flattens a simulation result for the wire
func NewResultData(res *equity.Result) ResultData {
	low, high := res.ConfidenceInterval()
	data := ResultData{
		Trials:      res.Trials,
		Wins:        res.Wins,
		Draws:       res.Draws,
		Losses:      res.Losses(),
		WinRate:     res.WinRate(),
		DrawRate:    res.DrawRate(),
		LossRate:    res.LossRate(),
		Equity:      res.Equity(),
		EquityLow:   low,
		EquityHigh:  high,
		Categories:  make(map[string]int),
		Seed:        res.Seed,
		ElapsedMs:   res.Elapsed.Milliseconds(),
		Interrupted: res.Interrupted,
	}
	for _, c := range poker.Categories {
		if n := res.Categories[c]; n > 0 {
			data.Categories[c.String()] = n
		}
	}
	for i, p := range res.Players {
		data.Players = append(data.Players, PlayerResult{Seat: i, Wins: p.Wins, Draws: p.Draws})
	}
	return data
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
