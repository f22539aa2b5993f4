package pkg

import (
	"context"
	"testing"

	"github.com/qnkhuat/checkerterm/pkg/checkers"
	"github.com/qnkhuat/checkerterm/pkg/minimax"
	"github.com/stretchr/testify/require"
)

func cell(row, col int) checkers.Cell {
	return checkers.Cell{Row: row, Col: col}
}

func newTestGame(t *testing.T, turn checkers.Color, rows ...string) *Game {
	t.Helper()

	b, err := checkers.ParseBoard(rows...)
	require.NoError(t, err)
	return NewGameFromBoard(b, turn)
}

// A red man on (4,1) with one blue man to take.
var lastCaptureRows = []string{
	"........",
	"........",
	"........",
	"..b.....",
	".r......",
	"........",
	"........",
	"........",
}

// Red to move on (1,0) is boxed in by the blue man on (0,1).
var blockedRows = []string{
	".b......",
	"r.......",
	"........",
	"........",
	"...b....",
	"........",
	"........",
	"........",
}

func TestGameSelect(t *testing.T) {
	g, err := NewGame(checkers.DefaultSize)
	require.NoError(t, err)
	require.Equal(t, checkers.Red, g.Turn)

	require.False(t, g.Select(cell(4, 1)), "empty cell")
	require.False(t, g.Select(cell(1, 0)), "blue piece on red's turn")
	_, ok := g.Selected()
	require.False(t, ok)

	require.True(t, g.Select(cell(6, 1)))
	sel, ok := g.Selected()
	require.True(t, ok)
	require.Equal(t, cell(6, 1), sel)
	require.Equal(t, []checkers.Cell{cell(5, 0), cell(5, 2)}, g.Targets())

	// An own piece that is not a destination takes over the selection.
	require.True(t, g.Select(cell(7, 0)))
	sel, _ = g.Selected()
	require.Equal(t, cell(7, 0), sel)
	require.Empty(t, g.Targets())

	require.True(t, g.Select(cell(6, 3)))
	require.Equal(t, []checkers.Cell{cell(5, 2), cell(5, 4)}, g.Targets())

	require.True(t, g.Select(cell(5, 4)))
	require.Equal(t, checkers.Blue, g.Turn)
	_, ok = g.Selected()
	require.False(t, ok)
	require.Empty(t, g.Targets())
	require.Equal(t, []checkers.Move{{From: cell(6, 3), To: cell(5, 4)}}, g.History())
	require.Nil(t, g.Board.PieceAt(cell(6, 3)))
	require.Equal(t, checkers.Red, g.Board.PieceAt(cell(5, 4)).Color)
}

func TestGameSelectDropsSelectionOnMiss(t *testing.T) {
	g, err := NewGame(checkers.DefaultSize)
	require.NoError(t, err)

	require.True(t, g.Select(cell(6, 1)))
	require.False(t, g.Select(cell(3, 0)))
	_, ok := g.Selected()
	require.False(t, ok)
	require.Equal(t, checkers.Red, g.Turn)
}

func TestGameSelectCapture(t *testing.T) {
	g := newTestGame(t, checkers.Red, lastCaptureRows...)

	require.True(t, g.Select(cell(4, 1)))
	require.Equal(t, []checkers.Cell{cell(2, 3), cell(3, 0)}, g.Targets())
	require.True(t, g.Select(cell(2, 3)))

	require.Equal(t, 0, g.Board.Left(checkers.Blue))
	require.Equal(t, checkers.Red, g.Winner())
	last, ok := g.LastMove()
	require.True(t, ok)
	require.Equal(t, []checkers.Cell{cell(3, 2)}, last.Captured)

	require.False(t, g.Select(cell(2, 3)), "no selection after the game is decided")
}

func TestGameMoveRequest(t *testing.T) {
	g, err := NewGame(checkers.DefaultSize)
	require.NoError(t, err)

	err = g.MoveRequest(cell(4, 1), cell(3, 0))
	require.ErrorIs(t, err, ErrNoPiece)

	err = g.MoveRequest(cell(1, 0), cell(2, 1))
	require.ErrorIs(t, err, ErrNotYourTurn)

	err = g.MoveRequest(cell(6, 1), cell(4, 1))
	require.ErrorIs(t, err, ErrIllegalMove)
	err = g.MoveRequest(cell(7, 0), cell(6, 1))
	require.ErrorIs(t, err, ErrIllegalMove)
	require.Equal(t, checkers.Red, g.Turn)
	require.Empty(t, g.History())

	require.NoError(t, g.MoveRequest(cell(6, 1), cell(5, 2)))
	require.Equal(t, checkers.Blue, g.Turn)
	require.NoError(t, g.MoveRequest(cell(1, 2), cell(2, 3)))
	require.Equal(t, checkers.Red, g.Turn)
	require.Len(t, g.History(), 2)
}

func TestGameMoveRequestAfterGameOver(t *testing.T) {
	g := newTestGame(t, checkers.Red, lastCaptureRows...)
	require.NoError(t, g.MoveRequest(cell(4, 1), cell(2, 3)))

	err := g.MoveRequest(cell(2, 3), cell(1, 2))
	require.ErrorIs(t, err, ErrGameOver)
}

func TestGameWinnerBlockedSide(t *testing.T) {
	g := newTestGame(t, checkers.Red, blockedRows...)
	require.Equal(t, checkers.Blue, g.Winner())
	require.False(t, g.Select(cell(1, 0)))

	g.Turn = checkers.Blue
	require.Equal(t, checkers.NoColor, g.Winner())
}

func TestGameInstall(t *testing.T) {
	g, err := NewGame(checkers.DefaultSize)
	require.NoError(t, err)
	require.NoError(t, g.MoveRequest(cell(6, 1), cell(5, 0)))

	res, err := minimax.Search(context.Background(), g.Board, 2, g.Turn)
	require.NoError(t, err)
	require.NoError(t, g.Install(res))

	require.Same(t, res.Board, g.Board)
	require.Equal(t, checkers.Red, g.Turn)
	last, ok := g.LastMove()
	require.True(t, ok)
	require.Equal(t, res.Move, last)

	require.ErrorIs(t, g.Install(minimax.Result{}), ErrIllegalMove)
}

func TestGameReset(t *testing.T) {
	g, err := NewGame(6)
	require.NoError(t, err)
	fresh := g.Board.String()

	require.NoError(t, g.MoveRequest(cell(4, 1), cell(3, 0)))
	require.True(t, g.Select(cell(1, 0)))

	require.NoError(t, g.Reset())
	require.Equal(t, fresh, g.Board.String())
	require.Equal(t, checkers.Red, g.Turn)
	require.Empty(t, g.History())
	_, ok := g.Selected()
	require.False(t, ok)
}
