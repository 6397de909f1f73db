package game

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"htmx-tictactoe/models"

	"github.com/google/uuid"
)

var (
	ErrInvalidCell    = errors.New("invalid cell index")
	ErrStepOutOfRange = errors.New("step out of range")
)

// Controller owns one game's history and cursor. It is not safe for concurrent use;
// callers serialize access per game.
type Controller struct {
	state models.GameState
	now   func() time.Time
}

// NewID returns a fresh game identifier.
func NewID() string {
	return uuid.NewString()
}

// NewController starts a game with a single empty snapshot.
func NewController(id string) *Controller {
	c := &Controller{now: time.Now}
	now := c.now()
	c.state = models.GameState{
		ID:      id,
		History: []models.Board{{}},
		Order:   models.SortAscending,
		Created: now,
		Updated: now,
	}
	return c
}

// Restore resumes a controller from a stored state. Broken states (no history,
// cursor outside history) are repaired rather than rejected.
func Restore(state models.GameState) *Controller {
	state.History = slices.Clone(state.History)
	if len(state.History) == 0 {
		state.History = []models.Board{{}}
	}
	if state.Step < 0 || state.Step >= len(state.History) {
		state.Step = len(state.History) - 1
	}
	if state.Order != models.SortDescending {
		state.Order = models.SortAscending
	}
	return &Controller{state: state, now: time.Now}
}

// MakeMove places the active symbol at cell i. Clicks on an occupied cell or on a
// finished game are ignored and reported as false.
func (c *Controller) MakeMove(i int) (bool, error) {
	if i < 0 || i >= models.BoardSize {
		return false, fmt.Errorf("%w: cell %d", ErrInvalidCell, i)
	}

	current := c.Current()
	if CalculateWinner(current).Has() || current[i] != models.Empty {
		return false, nil
	}

	// drop any future left over from a jump back
	history := c.state.History[:c.state.Step+1]
	next := current
	next[i] = c.ActiveSymbol()

	c.state.History = append(slices.Clip(history), next)
	c.state.Step = len(c.state.History) - 1
	c.touch()

	return true, nil
}

// JumpTo moves the cursor to an existing step without touching the history.
func (c *Controller) JumpTo(step int) error {
	if step < 0 || step >= len(c.state.History) {
		return fmt.Errorf("%w: step %d of %d", ErrStepOutOfRange, step, len(c.state.History))
	}
	c.state.Step = step
	c.touch()
	return nil
}

// ToggleSort flips the move list order.
func (c *Controller) ToggleSort() {
	if c.state.Order == models.SortAscending {
		c.state.Order = models.SortDescending
	} else {
		c.state.Order = models.SortAscending
	}
	c.touch()
}

func (c *Controller) ID() string {
	return c.state.ID
}

func (c *Controller) Step() int {
	return c.state.Step
}

func (c *Controller) Order() models.SortOrder {
	return c.state.Order
}

// Current returns the snapshot at the cursor.
func (c *Controller) Current() models.Board {
	return c.state.History[c.state.Step]
}

// History returns a copy of all snapshots.
func (c *Controller) History() []models.Board {
	return slices.Clone(c.state.History)
}

// ActiveSymbol is the symbol the next move places.
func (c *Controller) ActiveSymbol() models.Cell {
	return SymbolForStep(c.state.Step)
}

func (c *Controller) Winner() models.Winner {
	return CalculateWinner(c.Current())
}

// State derives in-progress/won/draw from the current snapshot and step.
func (c *Controller) State() models.GameStatus {
	switch {
	case c.Winner().Has():
		return models.GameStatusWon
	case c.state.Step == models.BoardSize:
		return models.GameStatusDraw
	default:
		return models.GameStatusInProgress
	}
}

// Status is the line shown above the move list.
func (c *Controller) Status() string {
	switch c.State() {
	case models.GameStatusWon:
		return "Winner: " + c.Winner().Symbol.String()
	case models.GameStatusDraw:
		return "It's a draw!"
	default:
		return "Next player: " + c.ActiveSymbol().String()
	}
}

// SortLabel names the order the toggle switches to.
func (c *Controller) SortLabel() string {
	if c.state.Order == models.SortAscending {
		return "Sort descending"
	}
	return "Sort ascending"
}

// Moves builds the move list in display order.
func (c *Controller) Moves() []models.MoveEntry {
	moves := make([]models.MoveEntry, 0, len(c.state.History))
	for m := range c.state.History {
		moves = append(moves, c.moveEntry(m))
	}
	if c.state.Order == models.SortDescending {
		slices.Reverse(moves)
	}
	return moves
}

func (c *Controller) moveEntry(m int) models.MoveEntry {
	loc, ok := MoveLocation(c.state.History, m)
	suffix := ""
	if ok {
		suffix = " " + loc.String()
	}

	if m == c.state.Step {
		return models.MoveEntry{Move: m, Label: fmt.Sprintf("You are at move #%d%s", m, suffix), Current: true}
	}
	if m == 0 {
		return models.MoveEntry{Move: m, Label: "Go to game start"}
	}
	return models.MoveEntry{Move: m, Label: fmt.Sprintf("Go to move #%d%s", m, suffix)}
}

// Snapshot returns a copy of the state suitable for storage.
func (c *Controller) Snapshot() models.GameState {
	state := c.state
	state.History = slices.Clone(c.state.History)
	return state
}

func (c *Controller) touch() {
	c.state.Updated = c.now()
}
