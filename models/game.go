package models

import (
	"context"
	"fmt"
	"time"
)

// Cell is the content of one square.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Board is a 3x3 snapshot stored row-major (index = row*3 + col).
type Board [9]Cell

const BoardSize = len(Board{})

type GameStatus string

const (
	GameStatusInProgress GameStatus = "in_progress" // moves remain and nobody has won
	GameStatusWon        GameStatus = "won"         // a line is complete
	GameStatusDraw       GameStatus = "draw"        // board full, no line
)

type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// Winner is the result of scanning a snapshot. The zero value means no winner.
type Winner struct {
	Symbol Cell  `json:"symbol"`
	Line   []int `json:"line,omitempty"`
}

func (w Winner) Has() bool {
	return w.Symbol != Empty
}

// Contains reports whether index i is part of the winning line.
func (w Winner) Contains(i int) bool {
	for _, idx := range w.Line {
		if idx == i {
			return true
		}
	}
	return false
}

// Location is a 1-based row/column pair used for move labels.
type Location struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (l Location) String() string {
	return fmt.Sprintf("(%d, %d)", l.Row, l.Col)
}

// MoveEntry is one line of the rendered move list.
type MoveEntry struct {
	Move    int    `json:"move"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

// GameState is everything the controller needs to resume a game. The winner is
// never stored, it is derived from the current snapshot.
type GameState struct {
	ID      string    `json:"id"`
	History []Board   `json:"history"`
	Step    int       `json:"step"`
	Order   SortOrder `json:"order"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

type GameEvent struct {
	Type   string      `json:"type"`
	GameID string      `json:"gameId"`
	Data   interface{} `json:"data"`
}

type GameSubscriber struct {
	ID      string
	GameID  string
	Channel chan GameEvent
	Context context.Context
}
