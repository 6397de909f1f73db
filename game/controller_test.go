package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htmx-tictactoe/models"
)

// play applies moves that are all expected to land.
func play(t *testing.T, c *Controller, cells ...int) {
	t.Helper()
	for _, i := range cells {
		applied, err := c.MakeMove(i)
		require.NoError(t, err, "cell %d", i)
		require.True(t, applied, "cell %d", i)
	}
}

func diffCount(a, b models.Board) int {
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}

func TestNewController(t *testing.T) {
	c := NewController("game-1")

	assert.Equal(t, "game-1", c.ID())
	assert.Equal(t, 0, c.Step())
	assert.Equal(t, []models.Board{{}}, c.History())
	assert.Equal(t, models.X, c.ActiveSymbol())
	assert.Equal(t, models.SortAscending, c.Order())
	assert.Equal(t, models.GameStatusInProgress, c.State())
	assert.Equal(t, "Next player: X", c.Status())
}

func TestController_MakeMove(t *testing.T) {
	t.Run("Places the active symbol and advances", func(t *testing.T) {
		c := NewController("g")

		applied, err := c.MakeMove(4)

		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, 1, c.Step())
		assert.Equal(t, models.X, c.Current()[4])
		assert.Equal(t, models.O, c.ActiveSymbol())
		assert.Equal(t, "Next player: O", c.Status())
	})

	t.Run("History grows by one snapshot per move", func(t *testing.T) {
		c := NewController("g")
		cells := []int{0, 4, 8, 2, 6}

		for k, cell := range cells {
			play(t, c, cell)

			history := c.History()
			require.Len(t, history, k+2)
			assert.Equal(t, 1, diffCount(history[k], history[k+1]))
		}
	})

	t.Run("Occupied cell is ignored", func(t *testing.T) {
		c := NewController("g")
		play(t, c, 0)
		before := c.Snapshot()

		applied, err := c.MakeMove(0)

		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, before.History, c.History())
		assert.Equal(t, before.Step, c.Step())
	})

	t.Run("Moves after a win are ignored", func(t *testing.T) {
		c := NewController("g")
		play(t, c, 0, 4, 1, 7, 2)
		require.Equal(t, models.GameStatusWon, c.State())

		applied, err := c.MakeMove(8)

		require.NoError(t, err)
		assert.False(t, applied)
		assert.Len(t, c.History(), 6)
		assert.Equal(t, models.Empty, c.Current()[8])
	})

	t.Run("Out of range index is rejected", func(t *testing.T) {
		c := NewController("g")

		for _, i := range []int{-1, 9, 42} {
			applied, err := c.MakeMove(i)
			assert.ErrorIs(t, err, ErrInvalidCell)
			assert.False(t, applied)
		}
		assert.Len(t, c.History(), 1)
	})

	t.Run("Move after time travel truncates the future", func(t *testing.T) {
		// Given: four moves played, then a jump back to step 1
		c := NewController("g")
		play(t, c, 0, 4, 1, 7)
		require.NoError(t, c.JumpTo(1))

		// When: a new move is made from step 1
		play(t, c, 8)

		// Then: snapshots after step 1 are gone and exactly one new one is appended
		history := c.History()
		require.Len(t, history, 3)
		assert.Equal(t, 2, c.Step())
		assert.Equal(t, models.O, history[2][8])
		assert.Equal(t, models.Empty, history[2][4])
		assert.Equal(t, 1, diffCount(history[1], history[2]))
	})

	t.Run("Truncation does not alias earlier snapshots", func(t *testing.T) {
		c := NewController("g")
		play(t, c, 0, 4, 1)
		snapshot := c.Snapshot()
		require.NoError(t, c.JumpTo(1))

		play(t, c, 2)

		assert.Equal(t, models.X, snapshot.History[3][1], "stored snapshot must not change")
	})
}

func TestController_EndToEnd(t *testing.T) {
	t.Run("X wins on the top row", func(t *testing.T) {
		c := NewController("g")

		play(t, c, 0, 4, 1, 7, 2)

		winner := c.Winner()
		assert.Equal(t, models.X, winner.Symbol)
		assert.Equal(t, []int{0, 1, 2}, winner.Line)
		assert.Equal(t, "Winner: X", c.Status())
	})

	t.Run("Draw at step 9", func(t *testing.T) {
		c := NewController("g")

		// X O X / X O O / O X X
		play(t, c, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		assert.Equal(t, 9, c.Step())
		assert.Equal(t, models.GameStatusDraw, c.State())
		assert.Equal(t, "It's a draw!", c.Status())
	})

	t.Run("Win on the last move is not a draw", func(t *testing.T) {
		c := NewController("g")

		// X O X / O X O / O X X, diagonal 0-4-8 completes on move 9
		play(t, c, 0, 1, 2, 3, 4, 5, 7, 6, 8)

		assert.Equal(t, models.GameStatusWon, c.State())
		assert.Equal(t, "Winner: X", c.Status())
	})
}

func TestController_JumpTo(t *testing.T) {
	t.Run("Turn follows step parity", func(t *testing.T) {
		c := NewController("g")
		play(t, c, 0, 4, 1, 7, 5)

		for s := 0; s < len(c.History()); s++ {
			require.NoError(t, c.JumpTo(s))

			want := models.X
			if s%2 == 1 {
				want = models.O
			}
			assert.Equal(t, want, c.ActiveSymbol(), "step %d", s)
		}
	})

	t.Run("History is untouched", func(t *testing.T) {
		c := NewController("g")
		play(t, c, 0, 4)
		history := c.History()

		require.NoError(t, c.JumpTo(0))

		assert.Equal(t, history, c.History())
		assert.Equal(t, models.Board{}, c.Current())
	})

	t.Run("Jumping back before a win re-enables moves", func(t *testing.T) {
		c := NewController("g")
		play(t, c, 0, 4, 1, 7, 2)
		require.NoError(t, c.JumpTo(4))

		assert.Equal(t, models.GameStatusInProgress, c.State())
		applied, err := c.MakeMove(8)
		require.NoError(t, err)
		assert.True(t, applied)
	})

	t.Run("Out of range steps are rejected", func(t *testing.T) {
		c := NewController("g")
		play(t, c, 0)

		assert.ErrorIs(t, c.JumpTo(2), ErrStepOutOfRange)
		assert.ErrorIs(t, c.JumpTo(-1), ErrStepOutOfRange)
		assert.Equal(t, 1, c.Step())
	})
}

func TestController_Moves(t *testing.T) {
	t.Run("Labels", func(t *testing.T) {
		c := NewController("g")
		play(t, c, 4, 5)

		assert.Equal(t, []models.MoveEntry{
			{Move: 0, Label: "Go to game start"},
			{Move: 1, Label: "Go to move #1 (2, 2)"},
			{Move: 2, Label: "You are at move #2 (2, 3)", Current: true},
		}, c.Moves())
	})

	t.Run("Current entry at game start", func(t *testing.T) {
		c := NewController("g")

		assert.Equal(t, []models.MoveEntry{
			{Move: 0, Label: "You are at move #0", Current: true},
		}, c.Moves())
	})

	t.Run("Toggling sort reverses only the display order", func(t *testing.T) {
		// Given: a game with some history and the cursor moved back
		c := NewController("g")
		play(t, c, 0, 4, 8)
		require.NoError(t, c.JumpTo(2))
		ascending := c.Moves()
		history := c.History()

		// When: the sort order is toggled
		c.ToggleSort()

		// Then: the list is reversed and nothing else moved
		descending := c.Moves()
		require.Len(t, descending, len(ascending))
		for i := range ascending {
			assert.Equal(t, ascending[i], descending[len(descending)-1-i])
		}
		assert.Equal(t, models.SortDescending, c.Order())
		assert.Equal(t, "Sort ascending", c.SortLabel())
		assert.Equal(t, history, c.History())
		assert.Equal(t, 2, c.Step())
		assert.Equal(t, models.X, c.ActiveSymbol())

		// When: toggled back
		c.ToggleSort()

		// Then: the original order returns
		assert.Equal(t, ascending, c.Moves())
		assert.Equal(t, "Sort descending", c.SortLabel())
	})
}

func TestRestore(t *testing.T) {
	t.Run("Round trip through a snapshot", func(t *testing.T) {
		c := NewController("g")
		play(t, c, 0, 4)
		c.ToggleSort()

		restored := Restore(c.Snapshot())

		assert.Equal(t, c.History(), restored.History())
		assert.Equal(t, c.Step(), restored.Step())
		assert.Equal(t, c.Order(), restored.Order())
	})

	t.Run("Repairs broken states", func(t *testing.T) {
		restored := Restore(models.GameState{ID: "g", Step: 5})

		assert.Equal(t, []models.Board{{}}, restored.History())
		assert.Equal(t, 0, restored.Step())
		assert.Equal(t, models.SortAscending, restored.Order())
	})
}

func TestController_View(t *testing.T) {
	c := NewController("g")
	play(t, c, 0, 4, 1, 7, 2)

	view := c.View()

	assert.Equal(t, "g", view.ID)
	assert.Equal(t, "Winner: X", view.Status)
	assert.Equal(t, models.GameStatusWon, view.State)
	for i, sq := range view.Squares {
		assert.Equal(t, i, sq.Index)
		assert.Equal(t, i <= 2, sq.Highlight, "square %d", i)
	}
	assert.Equal(t, "X", view.Squares[0].Symbol)
	assert.Equal(t, "O", view.Squares[4].Symbol)
	assert.Equal(t, "", view.Squares[8].Symbol)

	rows := view.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, 7, rows[2][1].Index)
	assert.Len(t, view.Moves, 6)
}
