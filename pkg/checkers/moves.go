package checkers

import "sort"

// Moves maps every reachable destination to the pieces captured on the
// way there. A simple step captures nothing.
type Moves map[Cell][]*Piece

// Destinations returns the keys of m in row-major order.
func (m Moves) Destinations() []Cell {
	cells := make([]Cell, 0, len(m))
	for c := range m {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return cells
}

type direction struct {
	dRow, dCol int
}

var diagonals = [...]direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// ValidMoves returns every legal destination of p. Every landing of a
// capture chain counts, so a player may stop after any jump. A piece that
// is not on b has no moves.
func (b *Board) ValidMoves(p *Piece) Moves {
	moves := make(Moves)
	if p == nil || b.PieceAt(p.Cell()) != p {
		return moves
	}

	t := &traversal{board: b, piece: p, moves: moves}
	for _, d := range t.directions() {
		t.walk(p.Cell(), d, nil)
	}
	return moves
}

type traversal struct {
	board *Board
	piece *Piece
	moves Moves
}

// directions filters the diagonals: men only head toward the far side.
func (t *traversal) directions() []direction {
	if t.piece.King {
		return diagonals[:]
	}

	dirs := make([]direction, 0, 2)
	for _, d := range diagonals {
		if d.dRow == t.piece.Color.Forward() {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// occupant treats the moving piece's own cell as empty.
func (t *traversal) occupant(c Cell) *Piece {
	if c == t.piece.Cell() {
		return nil
	}
	return t.board.PieceAt(c)
}

// walk probes one leg from 'from' along d. captured holds the pieces jumped
// so far on this path; it is nil on the first leg and is never modified.
func (t *traversal) walk(from Cell, d direction, captured []*Piece) {
	next := from.Add(d.dRow, d.dCol)
	if !t.board.InBounds(next) {
		return
	}

	victim := t.occupant(next)
	if victim == nil {
		if len(captured) == 0 {
			t.record(next, nil)
		}
		return
	}
	if victim.Color == t.piece.Color || jumped(captured, victim) {
		return
	}

	landing := next.Add(d.dRow, d.dCol)
	if !t.board.InBounds(landing) || t.occupant(landing) != nil {
		return
	}

	path := make([]*Piece, len(captured), len(captured)+1)
	copy(path, captured)
	path = append(path, victim)
	t.record(landing, path)

	for _, nd := range t.directions() {
		t.walk(landing, nd, path)
	}
}

// record keeps the longest capture path per destination, first found on ties.
func (t *traversal) record(c Cell, captured []*Piece) {
	if prev, ok := t.moves[c]; ok && len(prev) >= len(captured) {
		return
	}
	t.moves[c] = captured
}

func jumped(captured []*Piece, p *Piece) bool {
	for _, c := range captured {
		if c == p {
			return true
		}
	}
	return false
}

// Move is a played move: the cells a piece left and reached and the cells
// of the pieces it jumped.
type Move struct {
	From     Cell   `json:"from"`
	To       Cell   `json:"to"`
	Captured []Cell `json:"captured,omitempty"`
}

func NewMove(p *Piece, to Cell, captured []*Piece) Move {
	m := Move{From: p.Cell(), To: to}
	for _, c := range captured {
		m.Captured = append(m.Captured, c.Cell())
	}
	return m
}

func (m Move) String() string {
	sep := "-"
	if len(m.Captured) > 0 {
		sep = "x"
	}
	return m.From.String() + sep + m.To.String()
}
