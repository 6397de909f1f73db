package game

import "htmx-tictactoe/models"

// Square is one rendered cell.
type Square struct {
	Index     int    `json:"index"`
	Symbol    string `json:"symbol"`
	Highlight bool   `json:"highlight"`
}

// View is the render-ready projection of a controller. Building it has no side effects.
type View struct {
	ID        string             `json:"id"`
	Squares   [9]Square          `json:"squares"`
	Winner    models.Winner      `json:"winner"`
	State     models.GameStatus  `json:"state"`
	Status    string             `json:"status"`
	Next      string             `json:"next"`
	Step      int                `json:"step"`
	Order     models.SortOrder   `json:"order"`
	SortLabel string             `json:"sortLabel"`
	Moves     []models.MoveEntry `json:"moves"`
}

// Rows groups the squares row-major for templates.
func (v View) Rows() [][]Square {
	rows := make([][]Square, 0, 3)
	for r := 0; r < 3; r++ {
		rows = append(rows, v.Squares[r*3:r*3+3])
	}
	return rows
}

func (c *Controller) View() View {
	board := c.Current()
	winner := CalculateWinner(board)

	v := View{
		ID:        c.state.ID,
		Winner:    winner,
		State:     c.State(),
		Status:    c.Status(),
		Next:      c.ActiveSymbol().String(),
		Step:      c.state.Step,
		Order:     c.state.Order,
		SortLabel: c.SortLabel(),
		Moves:     c.Moves(),
	}
	for i, cell := range board {
		v.Squares[i] = Square{
			Index:     i,
			Symbol:    cell.String(),
			Highlight: winner.Has() && winner.Contains(i),
		}
	}
	return v
}
