package pkg

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/qnkhuat/checkerterm/pkg/checkers"
	"github.com/qnkhuat/checkerterm/pkg/minimax"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoPiece     = errors.New("no piece on that cell")
	ErrNotYourTurn = errors.New("not your turn")
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
)

// Game is one board with the side to move and the current selection. It is
// not safe for concurrent use; the match loop owns it.
type Game struct {
	ID    string
	Board *checkers.Board
	Turn  checkers.Color

	selected   *checkers.Piece
	validMoves checkers.Moves
	history    []checkers.Move
}

// NewGame starts a game on a fresh board with Red to move.
func NewGame(size int) (*Game, error) {
	b, err := checkers.NewBoard(size)
	if err != nil {
		return nil, err
	}
	return NewGameFromBoard(b, checkers.Red), nil
}

func NewGameFromBoard(b *checkers.Board, turn checkers.Color) *Game {
	return &Game{
		ID:         uuid.NewString(),
		Board:      b,
		Turn:       turn,
		validMoves: checkers.Moves{},
	}
}

func (g *Game) Reset() error {
	b, err := checkers.NewBoard(g.Board.Size())
	if err != nil {
		return err
	}
	g.Board = b
	g.Turn = checkers.Red
	g.history = nil
	g.clearSelection()
	return nil
}

// Select acts on a click. With a piece selected the click is tried as its
// destination; if that fails the selection is dropped and the click selects
// again. Clicking an own piece selects it. Returns whether anything was
// selected or moved.
func (g *Game) Select(c checkers.Cell) bool {
	if g.Winner() != checkers.NoColor {
		return false
	}

	if g.selected != nil {
		if captured, ok := g.validMoves[c]; ok {
			g.apply(g.selected, c, captured)
			return true
		}
		g.clearSelection()
		return g.Select(c)
	}

	p := g.Board.PieceAt(c)
	if p == nil || p.Color != g.Turn {
		return false
	}
	g.selected = p
	g.validMoves = g.Board.ValidMoves(p)
	return true
}

// MoveRequest plays from -> to for the side to move if the generator allows it.
func (g *Game) MoveRequest(from, to checkers.Cell) error {
	if w := g.Winner(); w != checkers.NoColor {
		return fmt.Errorf("%w: %s won", ErrGameOver, w)
	}

	p := g.Board.PieceAt(from)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrNoPiece, from)
	}
	if p.Color != g.Turn {
		return fmt.Errorf("%w: %s to move", ErrNotYourTurn, g.Turn)
	}

	moves := g.Board.ValidMoves(p)
	captured, ok := moves[to]
	if !ok {
		return fmt.Errorf("%w: %s to %s", ErrIllegalMove, from, to)
	}

	g.apply(p, to, captured)
	return nil
}

// Install replaces the board with the one the search picked for the side to
// move.
func (g *Game) Install(res minimax.Result) error {
	if res.Board == nil {
		return fmt.Errorf("%w: empty search result", ErrIllegalMove)
	}
	if res.Board.Size() != g.Board.Size() {
		return fmt.Errorf("%w: board size %d, want %d", ErrIllegalMove, res.Board.Size(), g.Board.Size())
	}

	g.Board = res.Board
	g.history = append(g.history, res.Move)
	g.changeTurn()
	return nil
}

func (g *Game) apply(p *checkers.Piece, to checkers.Cell, captured []*checkers.Piece) {
	move := checkers.NewMove(p, to, captured)
	g.Board.Move(p, to)
	g.Board.Remove(captured...)
	g.history = append(g.history, move)

	log.Debug().Str("game", g.ID).Str("turn", g.Turn.String()).Str("move", move.String()).Msg("move")
	g.changeTurn()
}

func (g *Game) changeTurn() {
	g.clearSelection()
	g.Turn = g.Turn.Opponent()
}

func (g *Game) clearSelection() {
	g.selected = nil
	g.validMoves = checkers.Moves{}
}

// Winner is the decided side, counting a side to move with no legal move as
// beaten.
func (g *Game) Winner() checkers.Color {
	return g.Board.Outcome(g.Turn)
}

func (g *Game) Selected() (checkers.Cell, bool) {
	if g.selected == nil {
		return checkers.Cell{}, false
	}
	return g.selected.Cell(), true
}

// Targets lists the destinations of the selected piece.
func (g *Game) Targets() []checkers.Cell {
	return g.validMoves.Destinations()
}

func (g *Game) History() []checkers.Move {
	out := make([]checkers.Move, len(g.history))
	copy(out, g.history)
	return out
}

func (g *Game) LastMove() (checkers.Move, bool) {
	if len(g.history) == 0 {
		return checkers.Move{}, false
	}
	return g.history[len(g.history)-1], true
}
