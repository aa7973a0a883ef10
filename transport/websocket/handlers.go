package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

func (that *Server) handleNewSession(ctx context.Context, _ *Payload, conn *websocket.Conn, action string) error {
	id, view, err := that.sessions.NewGame(ctx)
	if err != nil {
		that.logger.Error("failed to create session", "method", "handleNewSession", "error", err)
		return that.sendErrorResponse(conn, action, clientError(err))
	}

	return that.sendView(conn, action, id, view)
}

func (that *Server) handleGetSession(ctx context.Context, payload *Payload, conn *websocket.Conn, action string) error {
	if payload.SessionID == "" {
		return that.sendErrorResponse(conn, action, "session_id is required")
	}

	view, err := that.sessions.GetGame(ctx, payload.SessionID)
	if err != nil {
		return that.sendErrorResponse(conn, action, clientError(err))
	}

	return that.sendView(conn, action, payload.SessionID, view)
}

func (that *Server) handleMove(ctx context.Context, payload *Payload, conn *websocket.Conn, action string) error {
	if payload.SessionID == "" || payload.Cell == nil {
		return that.sendErrorResponse(conn, action, "session_id and cell are required")
	}

	view, err := that.sessions.MakeMove(ctx, payload.SessionID, *payload.Cell)
	if err != nil {
		return that.sendErrorResponse(conn, action, clientError(err))
	}

	return that.sendView(conn, action, payload.SessionID, view)
}

func (that *Server) handleJump(ctx context.Context, payload *Payload, conn *websocket.Conn, action string) error {
	if payload.SessionID == "" || payload.Step == nil {
		return that.sendErrorResponse(conn, action, "session_id and step are required")
	}

	view, err := that.sessions.JumpTo(ctx, payload.SessionID, *payload.Step)
	if err != nil {
		return that.sendErrorResponse(conn, action, clientError(err))
	}

	return that.sendView(conn, action, payload.SessionID, view)
}

func (that *Server) handleOrder(ctx context.Context, payload *Payload, conn *websocket.Conn, action string) error {
	if payload.SessionID == "" {
		return that.sendErrorResponse(conn, action, "session_id is required")
	}

	view, err := that.sessions.ToggleOrder(ctx, payload.SessionID)
	if err != nil {
		return that.sendErrorResponse(conn, action, clientError(err))
	}

	return that.sendView(conn, action, payload.SessionID, view)
}

func (that *Server) handleEndSession(ctx context.Context, payload *Payload, conn *websocket.Conn, action string) error {
	if payload.SessionID == "" {
		return that.sendErrorResponse(conn, action, "session_id is required")
	}

	if err := that.sessions.EndGame(ctx, payload.SessionID); err != nil {
		return that.sendErrorResponse(conn, action, clientError(err))
	}

	return that.sendMessage(conn, action, Payload{SessionID: payload.SessionID})
}

func (that *Server) sendView(conn *websocket.Conn, action, id string, view tictactoe.SessionView) error {
	if err := that.sendMessage(conn, action, Payload{SessionID: id, View: &view}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

// clientError maps use case errors to the text sent back to the client.
func clientError(err error) string {
	for _, known := range []error{
		apperror.ErrSessionNotFound,
		apperror.ErrInvalidCell,
		apperror.ErrInvalidStep,
		apperror.ErrTooManySessions,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return "internal error"
}
