package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// Order is the display order of the move list.
type Order string

const (
	OrderAscending  Order = "asc"
	OrderDescending Order = "desc"
)

// ParseOrder accepts "asc" or "desc".
func ParseOrder(value string) (Order, error) {
	switch order := Order(value); order {
	case OrderAscending, OrderDescending:
		return order, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidOrder, value)
	}
}

// HistoryEntry is one item of the move list. Selected marks the snapshot at
// the cursor.
type HistoryEntry struct {
	Step     int    `json:"step"`
	Label    string `json:"label"`
	Position string `json:"position,omitempty"`
	Selected bool   `json:"selected"`
}

// SessionView is a consistent read of a session for rendering.
type SessionView struct {
	Board   entity.Board   `json:"board"`
	Outcome entity.Outcome `json:"outcome"`
	Status  string         `json:"status"`
	Step    int            `json:"step"`
	Order   Order          `json:"order"`
	History []HistoryEntry `json:"history"`
}

// WithOrder returns the view with its move list rebuilt in order.
func (that SessionView) WithOrder(order Order) SessionView {
	if that.Order == order {
		return that
	}

	history := make([]HistoryEntry, len(that.History))
	for i, entry := range that.History {
		history[len(history)-1-i] = entry
	}

	that.History = history
	that.Order = order

	return that
}
