package entity

import "fmt"

type Cell string

const (
	Empty   Cell = ""
	PlayerX Cell = "X"
	PlayerO Cell = "O"
)

const (
	BoardSide = 3
	BoardSize = BoardSide * BoardSide
)

// WinCombos lists the winning lines in the order they are checked.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is one snapshot of the game. It is a value type: assigning or passing
// a Board copies it, so earlier snapshots are never changed by later moves.
type Board [BoardSize]Cell

func (that Board) IsFull() bool {
	return that.Filled() == BoardSize
}

// Filled returns the number of occupied cells.
func (that Board) Filled() int {
	count := 0
	for _, cell := range that {
		if cell != Empty {
			count++
		}
	}

	return count
}

// With returns a copy of the board with cell set to mark.
func (that Board) With(cell int, mark Cell) Board {
	that[cell] = mark
	return that
}

func (that Board) String() string {
	out := make([]byte, 0, BoardSize+BoardSide)
	for row := 0; row < BoardSide; row++ {
		for col := 0; col < BoardSide; col++ {
			cell := that[row*BoardSide+col]
			if cell == Empty {
				out = append(out, '.')
			} else {
				out = append(out, string(cell)...)
			}
		}
		if row < BoardSide-1 {
			out = append(out, '/')
		}
	}

	return string(out)
}

// ValidCell reports whether index addresses a cell of the board.
func ValidCell(index int) bool {
	return index >= 0 && index < BoardSize
}

// Position returns the "(column,row)" label of a cell, both 1-based.
func Position(index int) string {
	return fmt.Sprintf("(%d,%d)", index%BoardSide+1, index/BoardSide+1)
}
