package pkg

import (
	"context"
	"errors"

	"github.com/qnkhuat/checkerterm/pkg/checkers"
	"github.com/qnkhuat/checkerterm/pkg/minimax"
	"github.com/rs/zerolog/log"
)

const ConnQueueSize = 10

// Match puts a game between two players. Run owns the game; everybody else
// sees MessageGame snapshots.
type Match struct {
	ID       string
	Game     *Game
	Players  map[checkers.Color]*Player
	Searcher minimax.Searcher
	Clocks   map[checkers.Color]*Clock

	msg      string
	thinking bool
}

// NewMatch sets human against the computer on a fresh board.
func NewMatch(size int, human *Player, searcher minimax.Searcher) (*Match, error) {
	g, err := NewGame(size)
	if err != nil {
		return nil, err
	}
	computer := NewPlayer("", human.Color.Opponent(), true)
	return NewMatchWithGame(g, searcher, human, computer), nil
}

func NewMatchWithGame(g *Game, searcher minimax.Searcher, players ...*Player) *Match {
	m := &Match{
		ID:       g.ID,
		Game:     g,
		Players:  make(map[checkers.Color]*Player),
		Searcher: searcher,
		Clocks: map[checkers.Color]*Clock{
			checkers.Red:  NewClock(),
			checkers.Blue: NewClock(),
		},
	}
	for _, p := range players {
		m.Players[p.Color] = p
	}
	return m
}

func (m *Match) computerToMove() bool {
	p, ok := m.Players[m.Game.Turn]
	return ok && p.Computer && m.Game.Winner() == checkers.NoColor
}

// Run serves the match until ctx is done or in is closed. A snapshot goes to
// out after every change.
func (m *Match) Run(ctx context.Context, in <-chan MessageInterface, out chan<- MessageInterface) error {
	log.Info().Str("match", m.ID).Msg("match started")
	m.Clocks[m.Game.Turn].Start()

	if err := m.publish(ctx, out); err != nil {
		return err
	}
	if err := m.playComputer(ctx, out); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-in:
			if !ok {
				return nil
			}
			m.Handle(msg)
			if err := m.publish(ctx, out); err != nil {
				return err
			}
			if err := m.playComputer(ctx, out); err != nil {
				return err
			}
		}
	}
}

// Handle applies one message from a frontend.
func (m *Match) Handle(msg MessageInterface) {
	log.Debug().Str("match", m.ID).Str("type", msg.Type().String()).RawJSON("msg", msg.Encode()).Msg("recv")

	m.msg = ""
	turn := m.Game.Turn
	switch msg := msg.(type) {
	case MessageSelect:
		if m.computerToMove() {
			m.msg = "wait for your turn"
			return
		}
		m.Game.Select(msg.Cell)

	case MessageMove:
		if m.computerToMove() {
			m.msg = ErrNotYourTurn.Error()
			return
		}
		if err := m.Game.MoveRequest(msg.From, msg.To); err != nil {
			m.msg = err.Error()
			return
		}

	case MessageReset:
		if err := m.Game.Reset(); err != nil {
			m.msg = err.Error()
			return
		}
		for _, cl := range m.Clocks {
			cl.Reset()
		}
		m.Clocks[m.Game.Turn].Start()
		log.Info().Str("match", m.ID).Msg("new game")
		return

	default:
		log.Warn().Str("type", msg.Type().String()).Msg("unexpected message")
		return
	}

	if m.Game.Turn != turn {
		m.switchClocks(turn)
	}
}

func (m *Match) switchClocks(prev checkers.Color) {
	m.Clocks[prev].Pause()
	if w := m.Game.Winner(); w != checkers.NoColor {
		log.Info().Str("match", m.ID).Str("winner", w.String()).Msg("game over")
		return
	}
	m.Clocks[m.Game.Turn].Start()
}

// playComputer moves for every computer player whose turn it is.
func (m *Match) playComputer(ctx context.Context, out chan<- MessageInterface) error {
	for m.computerToMove() {
		turn := m.Game.Turn
		m.thinking = true
		if err := m.publish(ctx, out); err != nil {
			return err
		}

		res, err := m.Searcher.Search(ctx, m.Game.Board, turn)
		m.thinking = false
		if errors.Is(err, minimax.ErrNoMoves) {
			// Outcome already counts this side as beaten.
			break
		}
		if err != nil {
			return err
		}

		if err := m.Game.Install(res); err != nil {
			return err
		}
		log.Info().
			Str("match", m.ID).
			Str("turn", turn.String()).
			Str("move", MoveName(res.Move, m.Game.Board.Size())).
			Int("depth", res.Depth).
			Int64("nodes", res.Nodes).
			Msg("computer move")
		m.switchClocks(turn)

		if err := m.publish(ctx, out); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot captures what a frontend needs to draw the match.
func (m *Match) Snapshot() MessageGame {
	g := m.Game
	size := g.Board.Size()
	snap := MessageGame{
		ID:       m.ID,
		Rows:     g.Board.Rows(),
		Turn:     g.Turn,
		Winner:   g.Winner(),
		Targets:  g.Targets(),
		Score:    g.Board.Evaluate(),
		Thinking: m.thinking,
		Msg:      m.msg,
	}
	if c, ok := g.Selected(); ok {
		snap.Selected = &c
	}
	if last, ok := g.LastMove(); ok {
		snap.LastMove = &last
	}
	for _, mv := range g.History() {
		snap.Moves = append(snap.Moves, MoveName(mv, size))
	}
	for _, c := range []checkers.Color{checkers.Red, checkers.Blue} {
		p, ok := m.Players[c]
		if !ok {
			continue
		}
		snap.Players = append(snap.Players, PlayerInfo{
			Name:     p.Name,
			Color:    p.Color,
			Computer: p.Computer,
			Clock:    m.Clocks[c].String(),
		})
	}
	return snap
}

func (m *Match) publish(ctx context.Context, out chan<- MessageInterface) error {
	select {
	case out <- m.Snapshot():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
