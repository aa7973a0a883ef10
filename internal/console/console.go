// Package console is a terminal front end for a single game session.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

var errQuit = errors.New("quit")

const helpText = `commands:
  <cell> | move <cell>   play cell 0-8 (row by row from the top left)
  jump <step>            show the board after <step> moves
  order                  reverse the move list
  new                    start a new game
  help                   show this text
  quit                   leave
`

type Console struct {
	logger  *slog.Logger
	out     io.Writer
	session *tictactoe.Session
}

func New(logger *slog.Logger, out io.Writer) *Console {
	return &Console{
		logger:  logger.With("component", "console"),
		out:     out,
		session: tictactoe.NewSession(),
	}
}

// Run reads commands from in until it is exhausted or "quit" is entered.
func (that *Console) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	that.render()
	that.prompt()

	for scanner.Scan() {
		err := that.Execute(scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(that.out, "error: %v\n", err)
		}

		that.prompt()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

// Execute runs one command line and renders the result.
func (that *Console) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch command := strings.ToLower(fields[0]); command {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		fmt.Fprint(that.out, helpText)
		return nil
	case "new":
		that.session = tictactoe.NewSession()
	case "order":
		that.session.ToggleOrder()
	case "jump":
		step, err := argument(fields)
		if err != nil {
			return err
		}
		if err = that.session.JumpTo(step); err != nil {
			return err //nolint: wrapcheck // shown to the user as is
		}
	case "move":
		cell, err := argument(fields)
		if err != nil {
			return err
		}
		if err = that.move(cell); err != nil {
			return err
		}
	default:
		cell, err := strconv.Atoi(command)
		if err != nil {
			return fmt.Errorf("unknown command %q, type help", command)
		}
		if err = that.move(cell); err != nil {
			return err
		}
	}

	that.render()

	return nil
}

func (that *Console) move(cell int) error {
	applied, err := that.session.ApplyMove(cell)
	if err != nil {
		return err //nolint: wrapcheck // shown to the user as is
	}

	if !applied {
		that.logger.Debug("move ignored", "cell", cell)
	}

	return nil
}

func (that *Console) prompt() {
	fmt.Fprint(that.out, "> ")
}

func (that *Console) render() {
	fmt.Fprint(that.out, Render(that.session.View()))
}

func argument(fields []string) (int, error) {
	if len(fields) != 2 {
		return 0, fmt.Errorf("%s needs one number", fields[0])
	}

	value, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("%s needs one number: %w", fields[0], err)
	}

	return value, nil
}

// Render draws the board, the status line and the move list. Cells of the
// winning line are bracketed, the selected move is marked with ">".
func Render(view tictactoe.SessionView) string {
	var b strings.Builder

	for row := 0; row < entity.BoardSide; row++ {
		for col := 0; col < entity.BoardSide; col++ {
			index := row*entity.BoardSide + col

			mark := string(view.Board[index])
			if mark == "" {
				mark = strconv.Itoa(index)
			}

			if view.Outcome.OnLine(index) {
				fmt.Fprintf(&b, "[%s]", mark)
			} else {
				fmt.Fprintf(&b, " %s ", mark)
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s\n", view.Status)

	for _, entry := range view.History {
		marker := " "
		if entry.Selected {
			marker = ">"
		}
		line := marker + " " + entry.Label
		if entry.Position != "" {
			line += " " + entry.Position
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}
