// Package tui is a terminal frontend for the game controller.
package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"htmx-tictactoe/game"
)

const hint = "arrows/⏎ or 1-9 play   s sort   n new game   tab focus   q quit"

var highlightColor = tcell.ColorGold

// UI wires tview widgets to a controller. Every widget is redrawn from the
// controller's view after each action.
type UI struct {
	app    *tview.Application
	ctrl   *game.Controller
	board  *tview.Table
	status *tview.TextView
	sort   *tview.Button
	moves  *tview.List
	root   *tview.Flex

	focusable []tview.Primitive
	focusIdx  int
}

func New(ctrl *game.Controller) *UI {
	u := &UI{
		app:    tview.NewApplication(),
		ctrl:   ctrl,
		board:  tview.NewTable(),
		status: tview.NewTextView(),
		moves:  tview.NewList(),
	}

	u.board.SetBorders(true).SetSelectable(true, true)
	u.board.SetSelectedFunc(func(row, col int) {
		u.Click(row*3 + col)
	})
	u.board.SetBorder(true).SetTitle(" Board ")

	u.status.SetDynamicColors(false)

	u.sort = tview.NewButton("").SetSelectedFunc(u.ToggleSort)

	u.moves.ShowSecondaryText(false)
	u.moves.SetBorder(true).SetTitle(" Moves ")

	info := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(u.status, 3, 0, false).
		AddItem(u.sort, 1, 0, false).
		AddItem(u.moves, 0, 1, false)

	u.root = tview.NewFlex().
		AddItem(u.board, 15, 0, true).
		AddItem(info, 0, 1, false)

	u.focusable = []tview.Primitive{u.board, u.sort, u.moves}
	u.app.SetInputCapture(u.handleKey)

	u.refresh()
	return u
}

// Run blocks until the user quits or ctx is done.
func (u *UI) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		u.app.Stop()
	}()

	if err := u.app.SetRoot(u.root, true).SetFocus(u.board).Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}

// Click places a symbol at cell i. Ignored clicks leave the screen untouched.
func (u *UI) Click(i int) {
	if applied, err := u.ctrl.MakeMove(i); err != nil || !applied {
		return
	}
	u.refresh()
}

// Jump shows an earlier step.
func (u *UI) Jump(step int) {
	if err := u.ctrl.JumpTo(step); err != nil {
		return
	}
	u.refresh()
}

func (u *UI) ToggleSort() {
	u.ctrl.ToggleSort()
	u.refresh()
}

// NewGame discards the current controller.
func (u *UI) NewGame() {
	u.ctrl = game.NewController(game.NewID())
	u.refresh()
}

func (u *UI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab:
		u.focusIdx = (u.focusIdx + 1) % len(u.focusable)
		u.app.SetFocus(u.focusable[u.focusIdx])
		return nil
	case tcell.KeyRune:
	default:
		return event
	}

	switch r := event.Rune(); {
	case r == 'q':
		u.app.Stop()
	case r == 's':
		u.ToggleSort()
	case r == 'n':
		u.NewGame()
	case r >= '1' && r <= '9':
		u.Click(int(r - '1'))
	default:
		return event
	}
	return nil
}

func (u *UI) refresh() {
	view := u.ctrl.View()

	for _, sq := range view.Squares {
		cell := tview.NewTableCell(fmt.Sprintf(" %1s ", sq.Symbol)).
			SetAlign(tview.AlignCenter).
			SetExpansion(1)
		if sq.Highlight {
			cell.SetBackgroundColor(highlightColor)
		}
		u.board.SetCell(sq.Index/3, sq.Index%3, cell)
	}

	u.status.SetText(view.Status + "\n\n" + hint)
	u.sort.SetLabel(view.SortLabel)

	u.moves.Clear()
	for i, entry := range view.Moves {
		label := entry.Label
		if entry.Current {
			u.moves.AddItem("▶ "+label, "", 0, nil)
			u.moves.SetCurrentItem(i)
			continue
		}
		step := entry.Move
		u.moves.AddItem("  "+label, "", 0, func() {
			u.Jump(step)
		})
	}
}
