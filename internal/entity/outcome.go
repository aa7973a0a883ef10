package entity

type OutcomeStatus string

const (
	StatusInProgress OutcomeStatus = "in_progress"
	StatusWin        OutcomeStatus = "win"
	StatusDraw       OutcomeStatus = "draw"
)

// Outcome describes a board snapshot. Line is set only for a win, Next only
// while the game is in progress.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Winner Cell          `json:"winner,omitempty"`
	Line   []int         `json:"line,omitempty"`
	Next   Cell          `json:"next,omitempty"`
}

func (that Outcome) IsWin() bool {
	return that.Status == StatusWin
}

func (that Outcome) IsDraw() bool {
	return that.Status == StatusDraw
}

func (that Outcome) IsFinished() bool {
	return that.IsWin() || that.IsDraw()
}

// OnLine reports whether cell belongs to the winning line.
func (that Outcome) OnLine(cell int) bool {
	for _, index := range that.Line {
		if index == cell {
			return true
		}
	}

	return false
}

// StatusText is the one-line status shown next to the board.
func (that Outcome) StatusText() string {
	switch that.Status {
	case StatusWin:
		return "Winner: " + string(that.Winner)
	case StatusDraw:
		return "No one wins"
	default:
		return "Next player: " + string(that.Next)
	}
}

// Evaluate looks for a completed line on the board. Every line is checked and
// the last winning one in WinCombos order is reported. A board without a
// winning line yields the zero Outcome.
func Evaluate(board Board) Outcome {
	var outcome Outcome

	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != Empty && a == b && b == c {
			outcome = Outcome{
				Status: StatusWin,
				Winner: a,
				Line:   []int{combo[0], combo[1], combo[2]},
			}
		}
	}

	return outcome
}
