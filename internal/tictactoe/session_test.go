package tictactoe

import (
	"sync"
	"testing"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playMoves(t *testing.T, session *Session, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		applied, err := session.ApplyMove(cell)
		require.NoError(t, err)
		require.True(t, applied, "move on cell %d was ignored", cell)
	}
}

func TestNewSession(t *testing.T) {
	// When: create a new session
	session := NewSession()

	// Then: the session should hold only the empty board with X to move
	assert.Equal(t, 1, session.Len())
	assert.Equal(t, 0, session.Step())
	assert.Equal(t, entity.Board{}, session.Snapshot())
	assert.Equal(t, entity.Outcome{Status: entity.StatusInProgress, Next: entity.PlayerX}, session.Outcome())
	assert.Equal(t, OrderAscending, session.Order())
}

func TestSession_ApplyMove(t *testing.T) {
	t.Run("Players alternate starting with X", func(t *testing.T) {
		// Given: a new session
		session := NewSession()

		for k := 0; k < 5; k++ {
			// Then: X is to move after an even number of moves
			expected := entity.PlayerX
			if k%2 == 1 {
				expected = entity.PlayerO
			}
			require.Equal(t, expected, session.Outcome().Next)

			// When: the next move is played
			playMoves(t, session, k)

			// Then: the cell holds the mover's mark
			assert.Equal(t, expected, session.Snapshot()[k])
		}
	})

	t.Run("Earlier snapshots are not modified", func(t *testing.T) {
		// Given: a session with one move
		session := NewSession()
		playMoves(t, session, 4)
		first := session.Snapshot()

		// When: another move is played
		playMoves(t, session, 0)

		// Then: the earlier snapshot is unchanged
		require.NoError(t, session.JumpTo(1))
		assert.Equal(t, first, session.Snapshot())
		assert.Equal(t, 1, session.Snapshot().Filled())
	})

	t.Run("Move on an occupied cell is ignored", func(t *testing.T) {
		// Given: X has played the centre
		session := NewSession()
		playMoves(t, session, 4)

		// When: O plays the centre too
		applied, err := session.ApplyMove(4)

		// Then: nothing changes and no error is reported
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, 2, session.Len())
		assert.Equal(t, 1, session.Step())
		assert.Equal(t, entity.PlayerO, session.Outcome().Next)
	})

	t.Run("Move after a win is ignored", func(t *testing.T) {
		// Given: X has won on the diagonal
		session := NewSession()
		playMoves(t, session, 0, 1, 4, 2, 8)

		// When: O tries to keep playing
		applied, err := session.ApplyMove(5)

		// Then: nothing changes
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, 6, session.Len())
		assert.Equal(t, 5, session.Step())
	})

	t.Run("Invalid cell is rejected", func(t *testing.T) {
		session := NewSession()

		for _, cell := range []int{-1, 9, 20} {
			applied, err := session.ApplyMove(cell)

			require.ErrorIs(t, err, apperror.ErrInvalidCell)
			assert.False(t, applied)
		}
		assert.Equal(t, 1, session.Len())
	})

	t.Run("Position log records column and row", func(t *testing.T) {
		// Given: a new session
		session := NewSession()

		// When: moves are played on cells 0, 5 and 7
		playMoves(t, session, 0, 5, 7)

		// Then: the move list carries their labels
		history := session.HistoryInOrder(OrderAscending)
		require.Len(t, history, 4)
		assert.Equal(t, "", history[0].Position)
		assert.Equal(t, "(1,1)", history[1].Position)
		assert.Equal(t, "(3,2)", history[2].Position)
		assert.Equal(t, "(2,3)", history[3].Position)
	})
}

func TestSession_Outcome(t *testing.T) {
	t.Run("Diagonal win for X", func(t *testing.T) {
		// Given: X plays 0, 4, 8 while O plays 1, 2
		session := NewSession()
		playMoves(t, session, 0, 1, 4, 2, 8)

		// When: reading the outcome
		outcome := session.Outcome()

		// Then: X wins on the main diagonal
		assert.Equal(t, entity.Outcome{Status: entity.StatusWin, Winner: entity.PlayerX, Line: []int{0, 4, 8}}, outcome)
		assert.Equal(t, "Winner: X", outcome.StatusText())
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: nine moves ending in X O X / X O O / O X X
		session := NewSession()
		playMoves(t, session, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// When: reading the outcome
		outcome := session.Outcome()

		// Then: the game is drawn with the cursor at 9
		assert.Equal(t, entity.StatusDraw, outcome.Status)
		assert.Equal(t, 9, session.Step())
		assert.True(t, session.Snapshot().IsFull())
		assert.Equal(t, "No one wins", outcome.StatusText())
	})

	t.Run("Outcome follows the cursor", func(t *testing.T) {
		// Given: a won game
		session := NewSession()
		playMoves(t, session, 0, 1, 4, 2, 8)

		// When: jumping back before the winning move
		require.NoError(t, session.JumpTo(4))

		// Then: the game is in progress again with X to move
		assert.Equal(t, entity.Outcome{Status: entity.StatusInProgress, Next: entity.PlayerX}, session.Outcome())
	})
}

func TestSession_JumpTo(t *testing.T) {
	t.Run("Jump to start shows empty board and X to move", func(t *testing.T) {
		// Given: a session with three moves
		session := NewSession()
		playMoves(t, session, 0, 4, 8)

		// When: jumping to the start
		require.NoError(t, session.JumpTo(0))

		// Then: the board is empty, X is next and nothing is discarded
		assert.Equal(t, entity.Board{}, session.Snapshot())
		assert.Equal(t, entity.PlayerX, session.Outcome().Next)
		assert.Equal(t, 4, session.Len())
	})

	t.Run("Move after jump discards the abandoned future", func(t *testing.T) {
		// Given: three moves and a jump back to step 1
		session := NewSession()
		playMoves(t, session, 0, 1, 2)
		require.NoError(t, session.JumpTo(1))

		// When: O plays a different cell
		playMoves(t, session, 5)

		// Then: history holds exactly the kept prefix plus the new move
		assert.Equal(t, 3, session.Len())
		assert.Equal(t, 2, session.Step())
		assert.Equal(t, entity.Board{0: entity.PlayerX, 5: entity.PlayerO}, session.Snapshot())

		err := session.JumpTo(3)
		require.ErrorIs(t, err, apperror.ErrInvalidStep)

		history := session.HistoryInOrder(OrderAscending)
		assert.Equal(t, "(3,2)", history[2].Position)
	})

	t.Run("Selection follows the cursor", func(t *testing.T) {
		// Given: a session with two moves
		session := NewSession()
		playMoves(t, session, 0, 1)

		// When: jumping to step 1
		require.NoError(t, session.JumpTo(1))

		// Then: only entry 1 is selected
		for _, entry := range session.History() {
			assert.Equal(t, entry.Step == 1, entry.Selected, "step %d", entry.Step)
		}
	})

	t.Run("Out of range step is rejected", func(t *testing.T) {
		session := NewSession()
		playMoves(t, session, 0)

		require.ErrorIs(t, session.JumpTo(-1), apperror.ErrInvalidStep)
		require.ErrorIs(t, session.JumpTo(2), apperror.ErrInvalidStep)
		assert.Equal(t, 1, session.Step())
	})
}

func TestSession_ToggleOrder(t *testing.T) {
	// Given: a session with two moves
	session := NewSession()
	playMoves(t, session, 4, 0)
	before := session.HistoryInOrder(OrderAscending)
	snapshot := session.Snapshot()

	// When: toggling the order
	session.ToggleOrder()

	// Then: the move list is reversed and nothing else changes
	assert.Equal(t, OrderDescending, session.Order())
	assert.Equal(t, 3, session.Len())
	assert.Equal(t, 2, session.Step())
	assert.Equal(t, snapshot, session.Snapshot())
	assert.Equal(t, before, session.HistoryInOrder(OrderAscending))

	expected := []HistoryEntry{
		{Step: 2, Label: "Go to move #2", Position: "(1,1)", Selected: true},
		{Step: 1, Label: "Go to move #1", Position: "(2,2)"},
		{Step: 0, Label: "Go to game start"},
	}
	assert.Equal(t, expected, session.History())

	// When: toggling back
	session.ToggleOrder()

	// Then: ascending order is restored
	assert.Equal(t, before, session.History())
}

func TestSession_View(t *testing.T) {
	// Given: a session where X has won
	session := NewSession()
	playMoves(t, session, 0, 1, 4, 2, 8)
	session.ToggleOrder()

	// When: reading the view
	view := session.View()

	// Then: every field matches the individual queries
	assert.Equal(t, session.Snapshot(), view.Board)
	assert.Equal(t, session.Outcome(), view.Outcome)
	assert.Equal(t, "Winner: X", view.Status)
	assert.Equal(t, 5, view.Step)
	assert.Equal(t, OrderDescending, view.Order)
	assert.Equal(t, session.History(), view.History)
	assert.Equal(t, session.HistoryInOrder(OrderAscending), view.WithOrder(OrderAscending).History)
}

func TestSession_Concurrent(t *testing.T) {
	// Given: a shared session
	session := NewSession()

	// When: all cells are played concurrently
	var wg sync.WaitGroup
	for cell := 0; cell < entity.BoardSize; cell++ {
		wg.Add(1)
		go func(cell int) {
			defer wg.Done()
			_, _ = session.ApplyMove(cell)
			_ = session.View()
		}(cell)
	}
	wg.Wait()

	// Then: history stays consistent, one new cell per snapshot
	length := session.Len()
	require.Equal(t, session.Step()+1, length)
	for step := 1; step < length; step++ {
		require.NoError(t, session.JumpTo(step))
		assert.Equal(t, step, session.Snapshot().Filled())
	}
}

func TestParseOrder(t *testing.T) {
	order, err := ParseOrder("desc")
	require.NoError(t, err)
	assert.Equal(t, OrderDescending, order)

	_, err = ParseOrder("sideways")
	require.ErrorIs(t, err, apperror.ErrInvalidOrder)
}
