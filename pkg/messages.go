package pkg

import (
	"encoding/json"

	"github.com/qnkhuat/checkerterm/pkg/checkers"
	"github.com/rs/zerolog/log"
)

type MessageType int

const (
	TypeMessageGame MessageType = iota
	TypeMessageMove
	TypeMessageSelect
	TypeMessageReset
)

func (m MessageType) String() string {
	switch m {
	case TypeMessageGame:
		return "TypeMessageGame"
	case TypeMessageMove:
		return "TypeMessageMove"
	case TypeMessageSelect:
		return "TypeMessageSelect"
	case TypeMessageReset:
		return "TypeMessageReset"
	default:
		return "Unknown MessageType"
	}
}

// MessageInterface is what frontends and the match loop exchange.
type MessageInterface interface {
	Type() MessageType
	Encode() json.RawMessage
}

func encode(m interface{}) json.RawMessage {
	data, err := json.Marshal(m)
	if err != nil {
		log.Error().Err(err).Msg("encode message")
		return json.RawMessage("null")
	}
	return data
}

// MessageSelect is a click on a cell.
type MessageSelect struct {
	Cell checkers.Cell `json:"cell"`
}

func (m MessageSelect) Type() MessageType       { return TypeMessageSelect }
func (m MessageSelect) Encode() json.RawMessage { return encode(m) }

// MessageMove asks for a whole move at once.
type MessageMove struct {
	From checkers.Cell `json:"from"`
	To   checkers.Cell `json:"to"`
}

func (m MessageMove) Type() MessageType       { return TypeMessageMove }
func (m MessageMove) Encode() json.RawMessage { return encode(m) }

type MessageReset struct{}

func (m MessageReset) Type() MessageType       { return TypeMessageReset }
func (m MessageReset) Encode() json.RawMessage { return encode(m) }

type PlayerInfo struct {
	Name     string         `json:"name"`
	Color    checkers.Color `json:"color"`
	Computer bool           `json:"computer"`
	Clock    string         `json:"clock"`
}

// MessageGame is a snapshot of the match sent after every change.
type MessageGame struct {
	ID       string          `json:"id"`
	Rows     []string        `json:"rows"`
	Turn     checkers.Color  `json:"turn"`
	Winner   checkers.Color  `json:"winner"`
	Selected *checkers.Cell  `json:"selected,omitempty"`
	Targets  []checkers.Cell `json:"targets,omitempty"`
	LastMove *checkers.Move  `json:"lastMove,omitempty"`
	Moves    []string        `json:"moves,omitempty"`
	Score    float64         `json:"score"`
	Players  []PlayerInfo    `json:"players"`
	Thinking bool            `json:"thinking"`
	Msg      string          `json:"msg,omitempty"`
}

func (m MessageGame) Type() MessageType       { return TypeMessageGame }
func (m MessageGame) Encode() json.RawMessage { return encode(m) }

func (m MessageGame) Size() int {
	return len(m.Rows)
}

// PieceAt reads the diagram letter of a cell, '.' when empty.
func (m MessageGame) PieceAt(c checkers.Cell) rune {
	if c.Row < 0 || c.Row >= len(m.Rows) || c.Col < 0 || c.Col >= len(m.Rows[c.Row]) {
		return '.'
	}
	return rune(m.Rows[c.Row][c.Col])
}

func (m MessageGame) Player(c checkers.Color) (PlayerInfo, bool) {
	for _, p := range m.Players {
		if p.Color == c {
			return p, true
		}
	}
	return PlayerInfo{}, false
}
