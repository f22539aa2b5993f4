package pkg

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/notnil/chess"
	"github.com/qnkhuat/checkerterm/pkg/checkers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrNotation = errors.New("invalid cell notation")

// maxNotationSize is the largest board that algebraic names cover.
const maxNotationSize = 8

// InitLog sends the global logger to dest. The terminal belongs to the UI so
// logs never go to stdout.
func InitLog(dest, prefix string, debug bool) error {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(f).With().Timestamp().Str("component", prefix).Logger()
	return nil
}

func cellToSquare(c checkers.Cell, size int) chess.Square {
	rank := size - 1 - c.Row
	return chess.Square(rank*8 + c.Col)
}

// CellName writes c in algebraic notation, a1 being the bottom-left cell.
// Boards bigger than 8x8 fall back to (row,col).
func CellName(c checkers.Cell, size int) string {
	if size > maxNotationSize || c.Row < 0 || c.Row >= size || c.Col < 0 || c.Col >= size {
		return c.String()
	}
	return cellToSquare(c, size).String()
}

// ParseCell reads a cell written by CellName.
func ParseCell(s string, size int) (checkers.Cell, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if size > maxNotationSize {
		return checkers.Cell{}, fmt.Errorf("%w: no names for a %dx%d board", ErrNotation, size, size)
	}

	for sq := chess.A1; sq <= chess.H8; sq++ {
		if sq.String() != name {
			continue
		}
		c := checkers.Cell{Row: size - 1 - int(sq.Rank()), Col: int(sq.File())}
		if c.Row < 0 || c.Col >= size {
			break
		}
		return c, nil
	}
	return checkers.Cell{}, fmt.Errorf("%w: %q", ErrNotation, s)
}

// MoveName writes a move as from-to, or fromxto for a capture.
func MoveName(m checkers.Move, size int) string {
	sep := "-"
	if len(m.Captured) > 0 {
		sep = "x"
	}
	return CellName(m.From, size) + sep + CellName(m.To, size)
}

// ParseColor reads a side name, case insensitive.
func ParseColor(s string) (checkers.Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return checkers.Red, nil
	case "blue", "b":
		return checkers.Blue, nil
	}
	return checkers.NoColor, fmt.Errorf("unknown color %q, want red or blue", s)
}
