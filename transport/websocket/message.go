package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const (
	actionNew   = "session:new"
	actionGet   = "session:get"
	actionMove  = "session:move"
	actionJump  = "session:jump"
	actionOrder = "session:order"
	actionEnd   = "session:end"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is used for requests and responses alike.
type Payload struct {
	SessionID string                 `json:"session_id,omitempty"`
	Cell      *int                   `json:"cell,omitempty"`
	Step      *int                   `json:"step,omitempty"`
	View      *tictactoe.SessionView `json:"view,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *websocket.Conn, action, errorMessage string) error {
	return that.sendMessage(conn, action, Payload{Error: errorMessage})
}
