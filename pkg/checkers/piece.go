package checkers

import "fmt"

type Color int

const (
	NoColor Color = iota
	Red
	Blue
)

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	default:
		return "None"
	}
}

// Opponent returns the other side. NoColor has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Red:
		return Blue
	case Blue:
		return Red
	default:
		return NoColor
	}
}

// Forward is the row delta of a man of this color.
func (c Color) Forward() int {
	if c == Red {
		return -1
	}
	return 1
}

// KingRow is the row where a man of this color gets crowned.
func (c Color) KingRow(size int) int {
	if c == Red {
		return 0
	}
	return size - 1
}

type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Dark reports whether pieces may stand on the cell.
func (c Cell) Dark() bool {
	return (c.Row+c.Col)%2 == 1
}

func (c Cell) Add(dRow, dCol int) Cell {
	return Cell{c.Row + dRow, c.Col + dCol}
}

type Piece struct {
	Row   int
	Col   int
	Color Color
	King  bool
}

func (p *Piece) Cell() Cell {
	return Cell{p.Row, p.Col}
}

func (p *Piece) String() string {
	return fmt.Sprintf("%c%s", p.Rune(), p.Cell())
}

// Rune is the diagram letter of the piece: r/b for men, R/B for kings.
func (p *Piece) Rune() rune {
	r := 'r'
	if p.Color == Blue {
		r = 'b'
	}
	if p.King {
		r -= 'a' - 'A'
	}
	return r
}
