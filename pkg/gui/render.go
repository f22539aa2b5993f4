package gui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/checkerterm/pkg/checkers"
)

const (
	meterHeight = 8
	// meterSpan is the material lead that fills the meter.
	meterSpan  = 6.0
	movesShown = 5
	panelWidth = 24
)

type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightLast
	HighlightTarget
	HighlightSelected
)

// drawText places text at the specified coordinates with the provided style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawRune places a rune at the specified coordinates with the provided style
func drawRune(s tcell.Screen, x, y int, style tcell.Style, r rune) {
	s.SetContent(x, y, r, nil, style)
}

// SquareBg picks the background of a board cell.
func SquareBg(c checkers.Cell, h Highlight, t Theme) tcell.Color {
	switch h {
	case HighlightSelected:
		return t.SquareSelect
	case HighlightTarget:
		return t.SquareHint
	case HighlightLast:
		return t.SquareHigh
	}
	if c.Dark() {
		return t.SquareDark
	}
	return t.SquareLight
}

// PieceGlyph turns a diagram letter into what the board shows.
func PieceGlyph(r rune) rune {
	switch r {
	case 'r', 'b':
		return '●'
	case 'R', 'B':
		return '♛'
	}
	return ' '
}

// PieceColor is the foreground of a diagram letter.
func PieceColor(r rune, t Theme) tcell.Color {
	switch r {
	case 'r', 'R':
		return t.Red
	case 'b', 'B':
		return t.Blue
	}
	return tcell.ColorDefault
}

func moveLabel(p Panel) string {
	switch {
	case p.Winner != checkers.NoColor:
		return fmt.Sprintf(" %s wins ", p.Winner)
	case p.Thinking:
		return fmt.Sprintf(" %s thinking... ", p.Turn)
	}
	return fmt.Sprintf(" %s to Move ", p.Turn)
}

// drawMoveLabel displays whose turn it is, or the result
func drawMoveLabel(s tcell.Screen, x, y int, p Panel, t Theme) {
	style := tcell.StyleDefault.Background(t.MoveLabelBg).Foreground(t.MoveLabelFg)
	drawText(s, x, y, style, fmt.Sprintf("%-*s", panelWidth, moveLabel(p)))
}

func drawPlayers(s tcell.Screen, x, y int, p Panel, t Theme) {
	for i, pl := range p.Players {
		mark := '○'
		if p.PlayerTurn(pl) {
			mark = '●'
		}
		drawRune(s, x, y+i, tcell.StyleDefault.Foreground(PieceColor(pieceRune(pl.Color), t)), mark)

		name := pl.Name
		if pl.Computer {
			name += " (cpu)"
		}
		drawText(s, x+2, y+i, tcell.StyleDefault.Foreground(t.PlayerNames), fmt.Sprintf("%-16.16s %5s", name, pl.Clock))
	}
}

func pieceRune(c checkers.Color) rune {
	if c == checkers.Blue {
		return 'b'
	}
	return 'r'
}

// advantage is the share of the meter owed to the human side, in [0,1].
func advantage(score float64, human checkers.Color) float64 {
	if human == checkers.Red {
		score = -score
	}
	a := 0.5 + score/(2*meterSpan)
	return math.Max(0, math.Min(1, a))
}

func drawScore(s tcell.Screen, x, y int, p Panel, t Theme) {
	style := tcell.StyleDefault.Foreground(t.Score)
	drawText(s, x, y, style, fmt.Sprintf("material %+.1f", p.Score))
}

// drawScoreMeter draws a vertical bar filled from the bottom by the human's
// material advantage.
func drawScoreMeter(s tcell.Screen, x, y int, p Panel, t Theme) {
	adv := advantage(p.Score, p.Human)
	filled := int(math.Round(adv * meterHeight))

	style := tcell.StyleDefault.Foreground(t.MeterNeutral)
	switch {
	case adv > 0.5:
		style = tcell.StyleDefault.Foreground(t.MeterWin)
	case adv < 0.5:
		style = tcell.StyleDefault.Foreground(t.MeterLose)
	}
	base := tcell.StyleDefault.Foreground(t.MeterBase)

	for i := 0; i < meterHeight; i++ {
		ypos := y + meterHeight - 1 - i
		if i < filled {
			drawRune(s, x, ypos, style, '█')
		} else {
			drawRune(s, x, ypos, base, '█')
		}
	}
	drawRune(s, x+1, y+meterHeight/2, tcell.StyleDefault.Foreground(t.MeterMid), '_')
}

// moveRows pairs the moves two per row and keeps the last rows that fit.
func moveRows(moves []string) []string {
	var rows []string
	for i := 0; i < len(moves); i += 2 {
		second := ""
		if i+1 < len(moves) {
			second = moves[i+1]
		}
		rows = append(rows, fmt.Sprintf("%-3s %-7s %-7s", fmt.Sprintf("%d.", i/2+1), moves[i], second))
	}
	if len(rows) > movesShown {
		rows = rows[len(rows)-movesShown:]
	}
	return rows
}

// drawMoves displays recent moves
func drawMoves(s tcell.Screen, x, y int, p Panel, t Theme) {
	style := tcell.StyleDefault.Foreground(t.MoveBox)
	drawText(s, x, y, style, "┏━━━━━━━━━━━━━━━━━━━━━┓")
	rows := moveRows(p.Moves)
	for i := 0; i < movesShown; i++ {
		row := ""
		if i < len(rows) {
			row = rows[i]
		}
		drawText(s, x, y+i+1, style, fmt.Sprintf("┃ %-19.19s ┃", row))
	}
	drawText(s, x, y+movesShown+1, style, "┗━━━━━━━━━━━━━━━━━━━━━┛")
}

// DrawMsgLabel displays a message from the match
func DrawMsgLabel(s tcell.Screen, x, y int, msg string, t Theme) {
	drawText(s, x, y, tcell.StyleDefault.Foreground(t.Msg), fmt.Sprintf("%-*s", panelWidth, msg))
}

// DrawPanel draws the side panel with its top left corner at x, y.
func DrawPanel(s tcell.Screen, x, y int, p Panel, t Theme) {
	drawMoveLabel(s, x, y, p, t)
	drawPlayers(s, x, y+2, p, t)
	drawScore(s, x, y+5, p, t)
	drawScoreMeter(s, x+panelWidth+1, y+2, p, t)
	drawMoves(s, x, y+7, p, t)
	DrawMsgLabel(s, x, y+7+movesShown+3, p.Msg, t)
}
