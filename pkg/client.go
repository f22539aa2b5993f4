package pkg

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/checkerterm/pkg/checkers"
	"github.com/qnkhuat/checkerterm/pkg/gui"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

type Client struct {
	App    *tview.Application
	Board  *tview.Table
	Panel  *tview.Box
	Layout *tview.Grid
	// In carries snapshots from the match, Out carries clicks to it.
	In    chan MessageInterface
	Out   chan MessageInterface
	Color checkers.Color
	Theme gui.Theme

	state MessageGame
}

func NewClient(color checkers.Color, theme gui.Theme) *Client {
	app := tview.NewApplication()
	cl := &Client{
		App:   app,
		Board: tview.NewTable(),
		Panel: tview.NewBox(),
		In:    make(chan MessageInterface, ConnQueueSize),
		Out:   make(chan MessageInterface, ConnQueueSize),
		Color: color,
		Theme: theme,
	}

	newGameBtn := tview.NewButton(ActionNewGame.String()).SetSelectedFunc(func() {
		cl.send(MessageReset{})
		app.SetFocus(cl.Board)
	})
	exitBtn := tview.NewButton(ActionExit.String()).SetSelectedFunc(func() {
		app.Stop()
	})

	cl.Panel.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		gui.DrawPanel(screen, x, y, cl.panel(), cl.Theme)
		return x, y, width, height
	})

	gameOptions := tview.NewGrid().
		SetColumns(10, 1, 10).
		SetRows(1, 1, -1).
		AddItem(newGameBtn, 0, 0, 1, 1, 0, 0, false).
		AddItem(exitBtn, 0, 2, 1, 1, 0, 0, false).
		AddItem(cl.Panel, 2, 0, 1, 3, 0, 0, false)

	cl.Layout = tview.NewGrid().
		SetRows(-1, 22, -1).
		SetColumns(-1, 30, 28, -1).
		AddItem(tview.NewBox(), 0, 0, 1, 4, 0, 0, false).
		AddItem(tview.NewBox(), 2, 0, 1, 4, 0, 0, false).
		AddItem(cl.Board, 1, 1, 1, 1, 0, 0, true).
		AddItem(gameOptions, 1, 2, 1, 1, 0, 0, false)

	cl.initTable()
	return cl
}

func (cl *Client) initTable() {
	cl.Board.SetSelectable(true, true)
	cl.Board.Select(0, 1).SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			cl.App.Stop()
		}
	}).SetSelectedFunc(func(row, col int) {
		c, ok := cl.posToCell(row, col)
		if !ok {
			return
		}
		cl.send(MessageSelect{Cell: c})
	})
}

// send never blocks the UI; clicks made while the match is busy are dropped.
func (cl *Client) send(m MessageInterface) {
	select {
	case cl.Out <- m:
	default:
		log.Warn().Str("type", m.Type().String()).Msg("match busy, dropping input")
	}
}

// HandleRead installs every snapshot from the match until In is closed.
func (cl *Client) HandleRead() {
	for m := range cl.In {
		g, ok := m.(MessageGame)
		if !ok {
			log.Warn().Str("type", m.Type().String()).Msg("unexpected message")
			continue
		}
		cl.App.QueueUpdateDraw(func() {
			cl.state = g
			cl.RenderTable()
		})
	}
}

func (cl *Client) flipped() bool {
	return cl.Color == checkers.Blue
}

// posToCell maps a table position to a board cell. Column 0 holds the rank
// labels and the last row the file labels. Blue sees the board upside down
// so the human's pieces are always at the bottom.
func (cl *Client) posToCell(row, col int) (checkers.Cell, bool) {
	size := cl.state.Size()
	if row < 0 || row >= size || col < 1 || col > size {
		return checkers.Cell{}, false
	}
	c := checkers.Cell{Row: row, Col: col - 1}
	if cl.flipped() {
		c = checkers.Cell{Row: size - 1 - c.Row, Col: size - 1 - c.Col}
	}
	return c, true
}

func (cl *Client) highlights() map[checkers.Cell]gui.Highlight {
	hl := make(map[checkers.Cell]gui.Highlight)
	if last := cl.state.LastMove; last != nil {
		hl[last.From] = gui.HighlightLast
		hl[last.To] = gui.HighlightLast
	}
	for _, c := range cl.state.Targets {
		hl[c] = gui.HighlightTarget
	}
	if sel := cl.state.Selected; sel != nil {
		hl[*sel] = gui.HighlightSelected
	}
	return hl
}

// RenderTable redraws the board from the last snapshot. It must run on the
// application goroutine.
func (cl *Client) RenderTable() {
	size := cl.state.Size()
	hl := cl.highlights()
	cl.Board.Clear()

	labelStyle := func(text string, fg tcell.Color) *tview.TableCell {
		return tview.NewTableCell(text).
			SetAlign(tview.AlignCenter).
			SetTextColor(fg).
			SetSelectable(false)
	}

	for row := 0; row < size; row++ {
		c, _ := cl.posToCell(row, 1)
		cl.Board.SetCell(row, 0, labelStyle(fmt.Sprintf("%d ", size-c.Row), cl.Theme.Rank))

		for col := 1; col <= size; col++ {
			c, _ := cl.posToCell(row, col)
			r := cl.state.PieceAt(c)
			bg := gui.SquareBg(c, hl[c], cl.Theme)
			cell := tview.NewTableCell(fmt.Sprintf(" %c ", gui.PieceGlyph(r))).
				SetAlign(tview.AlignCenter).
				SetTextColor(gui.PieceColor(r, cl.Theme)).
				SetBackgroundColor(bg)
			cl.Board.SetCell(row, col, cell)
		}
	}

	for col := 1; col <= size; col++ {
		c, _ := cl.posToCell(size-1, col)
		cl.Board.SetCell(size, col, labelStyle(string(rune('a'+c.Col)), cl.Theme.File))
	}
	cl.Board.SetCell(size, 0, labelStyle("", cl.Theme.File))
}

func (cl *Client) panel() gui.Panel {
	p := gui.Panel{
		Turn:     cl.state.Turn,
		Winner:   cl.state.Winner,
		Human:    cl.Color,
		Thinking: cl.state.Thinking,
		Score:    cl.state.Score,
		Moves:    cl.state.Moves,
		Msg:      cl.state.Msg,
	}
	for _, pl := range cl.state.Players {
		p.Players = append(p.Players, gui.PlayerLine{
			Name:     pl.Name,
			Color:    pl.Color,
			Computer: pl.Computer,
			Clock:    pl.Clock,
		})
	}
	switch {
	case p.Msg != "":
	case p.Winner == cl.Color:
		p.Msg = ActionWin.String()
	case p.Winner != checkers.NoColor:
		p.Msg = ActionLose.String()
	case p.Thinking:
		p.Msg = ActionThinking.String()
	}
	return p
}
