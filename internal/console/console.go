package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/krishanu7/sinkorsail/internal/game"
	"github.com/krishanu7/sinkorsail/internal/match"
)

const banner = `## _##############
##|_  | |\ | |/###
## _| | | \| |\###
##########_#######
######/\ |_)######
##### \/ | \######
##_###__##########
#|_  |__| | |  ###
# _| |  | | |__###
##################
`

// Console plays matches over a line-based text interface.
type Console struct {
	in      *bufio.Scanner
	out     io.Writer
	newRand func() game.Rand
	logger  *log.Logger
}

func New(in io.Reader, out io.Writer, newRand func() game.Rand, logger *log.Logger) *Console {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Console{
		in:      bufio.NewScanner(in),
		out:     out,
		newRand: newRand,
		logger:  logger,
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// prompt writes msg and reads the next line. io.EOF means the input is
// exhausted.
func (c *Console) prompt(msg string) (string, error) {
	c.printf("%s", msg)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// Run shows the menu until the player quits or the input ends.
func (c *Console) Run() error {
	for {
		c.printf("%s\n1. Play\n2. Quit\n", banner)
		opt, err := c.prompt(":::")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		opt = strings.ToLower(opt)
		switch {
		case opt == "1" || strings.Contains(opt, "p"):
			if err := c.Play(); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		case opt == "2" || strings.Contains(opt, "q"):
			return nil
		}
	}
}

// Play runs a single match from fleet placement to the final shot.
func (c *Console) Play() error {
	name, err := c.prompt("Enter your name: ")
	if err != nil {
		return err
	}
	if name == "" {
		name = "Player"
	}

	m, err := match.NewMatch(name, c.newRand(), c.logger)
	if err != nil {
		return err
	}
	if err := c.placeFleet(name, m); err != nil {
		return err
	}

	for {
		c.printf("Round: %d\n", m.Round()+1)
		c.printf("%s", RenderBoard("Opponent", m.ComputerBoard(), game.ViewOpponent))

		result, err := c.fire(m)
		if err != nil {
			return err
		}
		c.reportPlayerShot(result.Player)
		c.printf("%s", RenderBoard("Opponent", m.ComputerBoard(), game.ViewOpponent))

		if result.Computer != nil {
			c.reportComputerShot(*result.Computer)
			c.printf("%s", RenderBoard(name, m.PlayerBoard(), game.ViewOwn))
		}

		if result.Finished {
			if result.Winner == match.SidePlayer {
				c.printf("Winner! (%d rounds)\n", result.Round)
			} else {
				c.printf("You Lose.\n")
			}
			return nil
		}
	}
}

func (c *Console) placeFleet(name string, m *match.Match) error {
	for p, ok := m.Next(); ok; p, ok = m.Next() {
		c.printf("%s", RenderBoard(name, m.PlayerBoard(), game.ViewPlacement))
		c.printf("Place your %s! (%dx1)\n", p.Class, p.Class.Length())

		for {
			line, err := c.prompt(`Enter point (ex. A4) or "auto": `)
			if err != nil {
				return err
			}
			if strings.EqualFold(line, "auto") {
				if err := m.AutoPlace(); err != nil {
					return err
				}
				break
			}
			origin, err := m.PlayerBoard().Parse(line)
			if err != nil {
				c.printf("%s\n", invalidPoint(err))
				continue
			}
			if m.PlayerBoard().IsOccupiedOrBuffered(origin) {
				c.printf("Ship Overlap. Try Again.\n")
				continue
			}

			dir := game.Down
			if p.RequiresDirection && p.Class.Length() > 1 {
				if dir, err = c.direction(); err != nil {
					return err
				}
			}

			_, err = m.Place(origin, dir)
			switch {
			case errors.Is(err, game.ErrOverlap):
				c.printf("Ship Overlap. Try Again.\n")
				continue
			case errors.Is(err, game.ErrOutOfBounds):
				c.printf("Extension Out of Bounds. Try Again.\n")
				continue
			case err != nil:
				return err
			}
			break
		}
	}
	c.printf("%s", RenderBoard(name, m.PlayerBoard(), game.ViewOwn))
	return nil
}

func (c *Console) direction() (game.Direction, error) {
	for {
		line, err := c.prompt("Enter direction: ")
		if err != nil {
			return 0, err
		}
		dir, err := game.ParseDirection(line)
		if err == nil {
			return dir, nil
		}
		c.printf("Input must be one of the following: down, up, right, left\n")
	}
}

func (c *Console) fire(m *match.Match) (match.TurnResult, error) {
	for {
		line, err := c.prompt("Enter Guess (ex. A4): ")
		if err != nil {
			return match.TurnResult{}, err
		}
		target, err := m.ComputerBoard().Parse(line)
		if err != nil {
			c.printf("%s\n", invalidPoint(err))
			continue
		}
		result, err := m.Fire(target)
		if errors.Is(err, game.ErrAlreadyGuessed) {
			c.printf("You've already guessed there. Try again.\n")
			continue
		}
		return result, err
	}
}

func invalidPoint(err error) string {
	if errors.Is(err, game.ErrOutOfBounds) {
		return "Out of bounds."
	}
	return "Invalid input."
}

func (c *Console) reportPlayerShot(s match.Shot) {
	switch {
	case s.Outcome.Sunk:
		c.printf("%s hits opponent's %s!\nYou sank opponent's %s!\n", s.Coordinate, s.Outcome.Class, s.Outcome.Class)
	case s.Outcome.Hit:
		c.printf("%s hits opponent's %s!\n", s.Coordinate, s.Outcome.Class)
	default:
		c.printf("%s missed opponent's fleet.\n", s.Coordinate)
	}
}

func (c *Console) reportComputerShot(s match.Shot) {
	c.printf("Opponent guesses %s\n", s.Coordinate)
	switch {
	case s.Outcome.Sunk:
		c.printf("%s hit your %s!\nYour %s has been sunk!\n", s.Coordinate, s.Outcome.Class, s.Outcome.Class)
	case s.Outcome.Hit:
		c.printf("%s hit your %s!\n", s.Coordinate, s.Outcome.Class)
	default:
		c.printf("%s missed your fleet.\n", s.Coordinate)
	}
}
