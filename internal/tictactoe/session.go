package tictactoe

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// Session is one game: the ordered board snapshots, the label of the move that
// produced each of them, the cursor selecting the active snapshot and the
// display order of the move list.
//
// A full board always sits at cursor 9, since history[0] is the empty board.
type Session struct {
	mu sync.Mutex

	history   []entity.Board
	positions []string
	cursor    int
	reverse   bool
}

func NewSession() *Session {
	return &Session{
		history:   []entity.Board{{}},
		positions: []string{""},
	}
}

// ApplyMove plays the cell for the player whose turn it is at the cursor.
// Moves on an occupied cell or on a decided board are ignored and reported
// as not applied. Any snapshots after the cursor are discarded first.
func (that *Session) ApplyMove(cell int) (bool, error) {
	if !entity.ValidCell(cell) {
		return false, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	active := that.history[that.cursor]
	if entity.Evaluate(active).IsWin() || active[cell] != entity.Empty {
		return false, nil
	}

	that.history = append(that.history[:that.cursor+1], active.With(cell, moverAt(that.cursor)))
	that.positions = append(that.positions[:that.cursor+1], entity.Position(cell))
	that.cursor = len(that.history) - 1

	return true, nil
}

// JumpTo moves the cursor to step without dropping later snapshots.
func (that *Session) JumpTo(step int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if step < 0 || step >= len(that.history) {
		return fmt.Errorf("%w: step %d of %d", apperror.ErrInvalidStep, step, len(that.history))
	}

	that.cursor = step

	return nil
}

func (that *Session) ToggleOrder() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.reverse = !that.reverse
}

func (that *Session) Snapshot() entity.Board {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.history[that.cursor]
}

func (that *Session) Outcome() entity.Outcome {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.outcome()
}

func (that *Session) Step() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.cursor
}

// Len returns the number of recorded snapshots, including the empty board.
func (that *Session) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.history)
}

func (that *Session) Order() Order {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.order()
}

// History returns the move list in the current display order.
func (that *Session) History() []HistoryEntry {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.historyIn(that.order())
}

func (that *Session) HistoryInOrder(order Order) []HistoryEntry {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.historyIn(order)
}

// View reads everything a presentation layer needs under one lock.
func (that *Session) View() SessionView {
	that.mu.Lock()
	defer that.mu.Unlock()

	outcome := that.outcome()

	return SessionView{
		Board:   that.history[that.cursor],
		Outcome: outcome,
		Status:  outcome.StatusText(),
		Step:    that.cursor,
		Order:   that.order(),
		History: that.historyIn(that.order()),
	}
}

func (that *Session) outcome() entity.Outcome {
	board := that.history[that.cursor]

	outcome := entity.Evaluate(board)
	switch {
	case outcome.IsWin():
		return outcome
	case board.IsFull():
		return entity.Outcome{Status: entity.StatusDraw}
	default:
		return entity.Outcome{Status: entity.StatusInProgress, Next: moverAt(that.cursor)}
	}
}

func (that *Session) order() Order {
	if that.reverse {
		return OrderDescending
	}
	return OrderAscending
}

func (that *Session) historyIn(order Order) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(that.history))
	for i := range that.history {
		step := i
		if order == OrderDescending {
			step = len(that.history) - 1 - i
		}

		entries = append(entries, HistoryEntry{
			Step:     step,
			Label:    stepLabel(step),
			Position: that.positions[step],
			Selected: step == that.cursor,
		})
	}

	return entries
}

// moverAt returns the player to move once cursor moves have been played.
func moverAt(cursor int) entity.Cell {
	if cursor%2 == 0 {
		return entity.PlayerX
	}
	return entity.PlayerO
}

func stepLabel(step int) string {
	if step == 0 {
		return "Go to game start"
	}
	return fmt.Sprintf("Go to move #%d", step)
}
