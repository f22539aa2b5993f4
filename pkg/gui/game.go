package gui

import "github.com/qnkhuat/checkerterm/pkg/checkers"

// PlayerLine is one player row of the panel.
type PlayerLine struct {
	Name     string
	Color    checkers.Color
	Computer bool
	Clock    string
}

// Panel is everything the side panel shows.
type Panel struct {
	Turn     checkers.Color
	Winner   checkers.Color
	Human    checkers.Color
	Thinking bool
	// Score is the material balance, positive for Blue.
	Score   float64
	Players []PlayerLine
	Moves   []string
	Msg     string
}

// PlayerTurn reports whether the line belongs to the side to move of an
// undecided game.
func (p Panel) PlayerTurn(pl PlayerLine) bool {
	return pl.Color == p.Turn && p.Winner == checkers.NoColor
}
