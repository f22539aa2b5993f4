package checkers

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultSize = 8
	MinSize     = 4

	// Rows of men each side starts with.
	startRows = 2
)

var (
	ErrBoardSize   = errors.New("invalid board size")
	ErrBoardLayout = errors.New("invalid board layout")
)

type Board struct {
	size  int
	cells []*Piece

	left  [3]int
	kings [3]int
}

func index(row, col, size int) int {
	return row*size + col
}

func newEmptyBoard(size int) *Board {
	return &Board{size: size, cells: make([]*Piece, size*size)}
}

// NewBoard returns a board of the given size with both sides in their
// starting rows. Blue fills the top rows, Red the bottom rows.
func NewBoard(size int) (*Board, error) {
	if size < MinSize {
		return nil, fmt.Errorf("%w: %d", ErrBoardSize, size)
	}

	b := newEmptyBoard(size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			cell := Cell{row, col}
			if !cell.Dark() {
				continue
			}

			switch {
			case row < startRows:
				b.put(&Piece{Row: row, Col: col, Color: Blue})
			case row >= size-startRows:
				b.put(&Piece{Row: row, Col: col, Color: Red})
			}
		}
	}

	return b, nil
}

// ParseBoard builds a board from a diagram, one string per row from the
// top: '.' is empty, r/b are men and R/B kings.
func ParseBoard(rows ...string) (*Board, error) {
	size := len(rows)
	if size < MinSize {
		return nil, fmt.Errorf("%w: %d", ErrBoardSize, size)
	}

	b := newEmptyBoard(size)
	for row, line := range rows {
		line = strings.TrimSpace(line)
		if len(line) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBoardLayout, row, len(line), size)
		}

		for col, r := range line {
			if r == '.' {
				continue
			}

			p := &Piece{Row: row, Col: col}
			switch r {
			case 'r', 'R':
				p.Color = Red
			case 'b', 'B':
				p.Color = Blue
			default:
				return nil, fmt.Errorf("%w: unknown piece %q at %s", ErrBoardLayout, r, p.Cell())
			}
			p.King = r == 'R' || r == 'B'

			if !p.Cell().Dark() {
				return nil, fmt.Errorf("%w: piece on light cell %s", ErrBoardLayout, p.Cell())
			}
			b.put(p)
		}
	}

	return b, nil
}

func (b *Board) put(p *Piece) {
	b.cells[index(p.Row, p.Col, b.size)] = p
	b.left[p.Color]++
	if p.King {
		b.kings[p.Color]++
	}
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < b.size && c.Col >= 0 && c.Col < b.size
}

// PieceAt returns the piece on c, nil when the cell is empty or off the board.
func (b *Board) PieceAt(c Cell) *Piece {
	if !b.InBounds(c) {
		return nil
	}
	return b.cells[index(c.Row, c.Col, b.size)]
}

// Pieces lists the pieces of one color in row-major order.
func (b *Board) Pieces(c Color) []*Piece {
	pieces := make([]*Piece, 0, b.left[c])
	for _, p := range b.cells {
		if p != nil && p.Color == c {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

func (b *Board) Left(c Color) int {
	return b.left[c]
}

func (b *Board) Kings(c Color) int {
	return b.kings[c]
}

// Move puts p on to and crowns it when to is on its king row. Captured
// pieces stay on the board until Remove is called.
func (b *Board) Move(p *Piece, to Cell) {
	from := index(p.Row, p.Col, b.size)
	dest := index(to.Row, to.Col, b.size)
	b.cells[from], b.cells[dest] = b.cells[dest], b.cells[from]
	p.Row, p.Col = to.Row, to.Col

	if to.Row == p.Color.KingRow(b.size) && !p.King {
		p.King = true
		b.kings[p.Color]++
	}
}

// Remove takes pieces off the board by their coordinates. Cells that no
// longer hold a piece of the same color are left alone.
func (b *Board) Remove(pieces ...*Piece) {
	for _, p := range pieces {
		if p == nil {
			continue
		}

		cur := b.PieceAt(p.Cell())
		if cur == nil || cur.Color != p.Color {
			continue
		}

		b.cells[index(p.Row, p.Col, b.size)] = nil
		b.left[cur.Color]--
		if cur.King {
			b.kings[cur.Color]--
		}
	}
}

// Evaluate scores material from Blue's side: positive favors Blue.
func (b *Board) Evaluate() float64 {
	return float64(b.left[Blue]-b.left[Red]) + 0.5*float64(b.kings[Blue]-b.kings[Red])
}

// Winner returns the only side with pieces left, or NoColor.
func (b *Board) Winner() Color {
	switch {
	case b.left[Red] <= 0:
		return Blue
	case b.left[Blue] <= 0:
		return Red
	}
	return NoColor
}

func (b *Board) HasMoves(c Color) bool {
	for _, p := range b.Pieces(c) {
		if len(b.ValidMoves(p)) > 0 {
			return true
		}
	}
	return false
}

// Outcome is Winner extended with the blocked-side rule: a side to move
// without a legal move loses.
func (b *Board) Outcome(toMove Color) Color {
	if w := b.Winner(); w != NoColor {
		return w
	}
	if toMove != NoColor && !b.HasMoves(toMove) {
		return toMove.Opponent()
	}
	return NoColor
}

func (b *Board) Clone() *Board {
	c := &Board{
		size:  b.size,
		cells: make([]*Piece, len(b.cells)),
		left:  b.left,
		kings: b.kings,
	}
	for i, p := range b.cells {
		if p != nil {
			cp := *p
			c.cells[i] = &cp
		}
	}
	return c
}

// Rows renders the board as a diagram in ParseBoard format.
func (b *Board) Rows() []string {
	rows := make([]string, b.size)
	var sb strings.Builder
	for row := 0; row < b.size; row++ {
		sb.Reset()
		for col := 0; col < b.size; col++ {
			if p := b.cells[index(row, col, b.size)]; p != nil {
				sb.WriteRune(p.Rune())
			} else {
				sb.WriteByte('.')
			}
		}
		rows[row] = sb.String()
	}
	return rows
}

func (b *Board) String() string {
	return strings.Join(b.Rows(), "\n")
}
