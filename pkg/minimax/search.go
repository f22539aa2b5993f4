package minimax

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/qnkhuat/checkerterm/pkg/checkers"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// WinScore is added to the loss of a side that is left without a move. It
// outweighs any material difference.
const WinScore = 1000.0

const DefaultDepth = 4

var (
	ErrNoMoves  = errors.New("no legal moves")
	ErrGameOver = errors.New("game is already over")
)

// Successor is a position reachable in one move.
type Successor struct {
	Move  checkers.Move
	Board *checkers.Board
}

// Successors plays every legal move of c on its own copy of b. Pieces are
// visited in row-major order and so are their destinations.
func Successors(b *checkers.Board, c checkers.Color) []Successor {
	var out []Successor
	for _, p := range b.Pieces(c) {
		moves := b.ValidMoves(p)
		for _, to := range moves.Destinations() {
			next := b.Clone()
			next.Move(next.PieceAt(p.Cell()), to)
			next.Remove(moves[to]...)

			out = append(out, Successor{
				Move:  checkers.NewMove(p, to, moves[to]),
				Board: next,
			})
		}
	}
	return out
}

// score reads the evaluation from max's side.
func score(b *checkers.Board, max checkers.Color) float64 {
	if max == checkers.Red {
		return -b.Evaluate()
	}
	return b.Evaluate()
}

// better replaces the best on ties so the last equal candidate wins.
func better(eval, best float64, maximizing bool) bool {
	if maximizing {
		return eval >= best
	}
	return eval <= best
}

type search struct {
	ctx   context.Context
	max   checkers.Color
	nodes *int64
}

func (s *search) minimax(b *checkers.Board, depth int, maximizing bool) (float64, *checkers.Board, error) {
	atomic.AddInt64(s.nodes, 1)
	if err := s.ctx.Err(); err != nil {
		return 0, nil, err
	}

	if depth <= 0 || b.Winner() != checkers.NoColor {
		return score(b, s.max), b, nil
	}

	mover := s.max
	if !maximizing {
		mover = mover.Opponent()
	}

	candidates := Successors(b, mover)
	if len(candidates) == 0 {
		if maximizing {
			return score(b, s.max) - WinScore, nil, nil
		}
		return score(b, s.max) + WinScore, nil, nil
	}

	best := math.Inf(-1)
	if !maximizing {
		best = math.Inf(1)
	}
	var bestBoard *checkers.Board

	for _, next := range candidates {
		eval, _, err := s.minimax(next.Board, depth-1, !maximizing)
		if err != nil {
			return 0, nil, err
		}
		if better(eval, best, maximizing) {
			best, bestBoard = eval, next.Board
		}
	}

	return best, bestBoard, nil
}

// Minimax searches depth plies below b and returns the extremal score from
// max's side with the successor that reaches it. At depth 0 or on a decided
// board it returns b itself. The returned board is nil when the side to move
// has no move.
func Minimax(ctx context.Context, b *checkers.Board, depth int, max checkers.Color, maximizing bool) (float64, *checkers.Board, error) {
	var nodes int64
	s := &search{ctx: ctx, max: max, nodes: &nodes}
	return s.minimax(b, depth, maximizing)
}

type Result struct {
	Score    float64
	Board    *checkers.Board
	Move     checkers.Move
	Depth    int
	Nodes    int64
	Duration time.Duration
}

// Search picks the move for c with a sequential search of depth plies. A
// depth below one searches one ply.
func Search(ctx context.Context, b *checkers.Board, depth int, c checkers.Color) (Result, error) {
	return root(ctx, b, depth, c, 1)
}

func root(ctx context.Context, b *checkers.Board, depth int, c checkers.Color, workers int) (Result, error) {
	if depth < 1 {
		depth = 1
	}
	if w := b.Winner(); w != checkers.NoColor {
		return Result{}, fmt.Errorf("%w: %s won", ErrGameOver, w)
	}

	candidates := Successors(b, c)
	if len(candidates) == 0 {
		return Result{}, fmt.Errorf("%w for %s", ErrNoMoves, c)
	}

	var nodes int64 = 1
	start := time.Now()
	scores := make([]float64, len(candidates))

	if workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := range candidates {
			i := i
			g.Go(func() error {
				s := &search{ctx: gctx, max: c, nodes: &nodes}
				eval, _, err := s.minimax(candidates[i].Board, depth-1, false)
				scores[i] = eval
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return Result{}, err
		}
	} else {
		s := &search{ctx: ctx, max: c, nodes: &nodes}
		for i := range candidates {
			eval, _, err := s.minimax(candidates[i].Board, depth-1, false)
			if err != nil {
				return Result{}, err
			}
			scores[i] = eval
		}
	}

	best := math.Inf(-1)
	bestIdx := -1
	for i, eval := range scores {
		if better(eval, best, true) {
			best, bestIdx = eval, i
		}
	}

	return Result{
		Score:    best,
		Board:    candidates[bestIdx].Board,
		Move:     candidates[bestIdx].Move,
		Depth:    depth,
		Nodes:    atomic.LoadInt64(&nodes),
		Duration: time.Since(start),
	}, nil
}

// Searcher holds the budget of a computer player.
type Searcher struct {
	Depth int
	// Workers evaluates root moves concurrently when above one. The choice
	// is the same as a sequential search.
	Workers int
	// Timeout bounds the thinking time. With a timeout the searcher deepens
	// one ply at a time and keeps the deepest finished result.
	Timeout time.Duration
}

func (s Searcher) Search(ctx context.Context, b *checkers.Board, c checkers.Color) (Result, error) {
	depth := s.Depth
	if depth < 1 {
		depth = DefaultDepth
	}

	if s.Timeout <= 0 {
		res, err := root(ctx, b, depth, c, s.Workers)
		if err == nil {
			logResult(c, res)
		}
		return res, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	start := time.Now()
	var (
		best  Result
		found bool
		nodes int64
	)
	for d := 1; d <= depth; d++ {
		res, err := root(ctx, b, d, c, s.Workers)
		if err != nil {
			if found && ctx.Err() != nil {
				log.Debug().Str("color", c.String()).Int("depth", best.Depth).Msg("search timed out, keeping last full depth")
				break
			}
			return Result{}, err
		}
		nodes += res.Nodes
		best, found = res, true
	}

	best.Nodes = nodes
	best.Duration = time.Since(start)
	logResult(c, best)
	return best, nil
}

func logResult(c checkers.Color, res Result) {
	log.Debug().
		Str("color", c.String()).
		Str("move", res.Move.String()).
		Float64("score", res.Score).
		Int("depth", res.Depth).
		Int64("nodes", res.Nodes).
		Dur("took", res.Duration).
		Msg("search done")
}
