package game

import "htmx-tictactoe/models"

// WinCombos lists the 8 winning lines: rows, then columns, then diagonals.
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

// CalculateWinner returns the first complete line on the board, or the zero Winner.
func CalculateWinner(board models.Board) models.Winner {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != models.Empty && a == b && b == c {
			return models.Winner{Symbol: a, Line: []int{combo[0], combo[1], combo[2]}}
		}
	}
	return models.Winner{}
}

// MoveLocation finds the cell that changed between snapshot m-1 and snapshot m.
// It returns false for the initial snapshot, an out of range m, or when the two
// snapshots are identical.
func MoveLocation(history []models.Board, m int) (models.Location, bool) {
	if m <= 0 || m >= len(history) {
		return models.Location{}, false
	}
	prev, cur := history[m-1], history[m]
	for i := range cur {
		if prev[i] != cur[i] {
			return models.Location{Row: i/3 + 1, Col: i%3 + 1}, true
		}
	}
	return models.Location{}, false
}

// IsBoardFull checks if all cells on the board are filled
func IsBoardFull(board models.Board) bool {
	for _, cell := range board {
		if cell == models.Empty {
			return false
		}
	}
	return true
}

// SymbolForStep returns the symbol placed by the move made at the given step.
// X always moves first.
func SymbolForStep(step int) models.Cell {
	if step%2 == 0 {
		return models.X
	}
	return models.O
}
