package checkers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// summary flattens Moves into destination -> captured cells.
func summary(m Moves) map[Cell][]Cell {
	out := make(map[Cell][]Cell, len(m))
	for to, captured := range m {
		cells := []Cell{}
		for _, p := range captured {
			cells = append(cells, p.Cell())
		}
		out[to] = cells
	}
	return out
}

func TestValidMoves(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		piece Cell
		want  map[Cell][]Cell
	}{
		{
			name: "opening man",
			rows: []string{
				".b.b.b.b",
				"b.b.b.b.",
				"........",
				"........",
				"........",
				"........",
				".r.r.r.r",
				"r.r.r.r.",
			},
			piece: Cell{6, 3},
			want: map[Cell][]Cell{
				{5, 2}: {},
				{5, 4}: {},
			},
		},
		{
			name: "back row is blocked by own men",
			rows: []string{
				".b.b.b.b",
				"b.b.b.b.",
				"........",
				"........",
				"........",
				"........",
				".r.r.r.r",
				"r.r.r.r.",
			},
			piece: Cell{7, 2},
			want:  map[Cell][]Cell{},
		},
		{
			name: "single capture",
			rows: []string{
				"........",
				"........",
				".b......",
				"..r.....",
				"........",
				"........",
				"........",
				"........",
			},
			piece: Cell{2, 1},
			want: map[Cell][]Cell{
				{3, 0}: {},
				{4, 3}: {{3, 2}},
			},
		},
		{
			name: "own piece cannot be jumped",
			rows: []string{
				"........",
				"........",
				".b......",
				"..b.....",
				"........",
				"........",
				"........",
				"........",
			},
			piece: Cell{2, 1},
			want: map[Cell][]Cell{
				{3, 0}: {},
			},
		},
		{
			name: "blocked landing",
			rows: []string{
				"........",
				"........",
				".b......",
				"..r.....",
				"...r....",
				"........",
				"........",
				"........",
			},
			piece: Cell{2, 1},
			want: map[Cell][]Cell{
				{3, 0}: {},
			},
		},
		{
			name: "straight chain keeps every landing",
			rows: []string{
				".b......",
				"..r.....",
				"........",
				"....r...",
				"........",
				"........",
				"........",
				"........",
			},
			piece: Cell{0, 1},
			want: map[Cell][]Cell{
				{1, 0}: {},
				{2, 3}: {{1, 2}},
				{4, 5}: {{1, 2}, {3, 4}},
			},
		},
		{
			name: "zigzag chain",
			rows: []string{
				".b......",
				"..r.....",
				"........",
				"..r.....",
				"........",
				"........",
				"........",
				"........",
			},
			piece: Cell{0, 1},
			want: map[Cell][]Cell{
				{1, 0}: {},
				{2, 3}: {{1, 2}},
				{4, 1}: {{1, 2}, {3, 2}},
			},
		},
		{
			name: "men never capture backwards",
			rows: []string{
				"........",
				"........",
				"........",
				"........",
				"...r....",
				"..b.....",
				"........",
				"........",
			},
			piece: Cell{4, 3},
			want: map[Cell][]Cell{
				{3, 2}: {},
				{3, 4}: {},
			},
		},
		{
			name: "king steps in four directions",
			rows: []string{
				"........",
				"........",
				"........",
				"........",
				"...R....",
				"........",
				"........",
				"........",
			},
			piece: Cell{4, 3},
			want: map[Cell][]Cell{
				{3, 2}: {},
				{3, 4}: {},
				{5, 2}: {},
				{5, 4}: {},
			},
		},
		{
			name: "king chain reverses direction",
			rows: []string{
				"........",
				"........",
				"........",
				"........",
				"........",
				"..b.b...",
				".R......",
				"........",
			},
			piece: Cell{6, 1},
			want: map[Cell][]Cell{
				{5, 0}: {},
				{7, 0}: {},
				{7, 2}: {},
				{4, 3}: {{5, 2}},
				{6, 5}: {{5, 2}, {5, 4}},
			},
		},
		{
			name: "man in the same spot cannot reverse",
			rows: []string{
				"........",
				"........",
				"........",
				"........",
				"........",
				"..b.b...",
				".r......",
				"........",
			},
			piece: Cell{6, 1},
			want: map[Cell][]Cell{
				{5, 0}: {},
				{4, 3}: {{5, 2}},
			},
		},
		{
			name: "capture off the edge",
			rows: []string{
				"........",
				"........",
				"........",
				"........",
				"........",
				"......b.",
				".......r",
				"........",
			},
			piece: Cell{5, 6},
			want: map[Cell][]Cell{
				{6, 5}: {},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.rows...)
			p := b.PieceAt(tt.piece)
			require.NotNil(t, p, "no piece at %s", tt.piece)

			require.Equal(t, tt.want, summary(b.ValidMoves(p)))
		})
	}
}

func TestValidMovesCapturesLiveOnBoard(t *testing.T) {
	b := mustParse(t,
		"........",
		"........",
		".b......",
		"..r.....",
		"........",
		"........",
		"........",
		"........",
	)
	moves := b.ValidMoves(b.PieceAt(Cell{2, 1}))
	require.Len(t, moves[Cell{4, 3}], 1)
	require.Same(t, b.PieceAt(Cell{3, 2}), moves[Cell{4, 3}][0])
}

func TestValidMovesUnknownPiece(t *testing.T) {
	b, err := NewBoard(DefaultSize)
	require.NoError(t, err)

	require.Empty(t, b.ValidMoves(nil))
	require.Empty(t, b.ValidMoves(&Piece{Row: 5, Col: 0, Color: Red}))

	// Same coordinates as a real piece, different identity.
	stale := *b.PieceAt(Cell{6, 1})
	require.Empty(t, b.ValidMoves(&stale))
}

func TestValidMovesStayOnBoard(t *testing.T) {
	b := mustParse(t,
		".B.b...b",
		"r.......",
		".......B",
		"R.....r.",
		".b......",
		"......R.",
		".b.....r",
		"R.r.b...",
	)
	for _, c := range []Color{Red, Blue} {
		for _, p := range b.Pieces(c) {
			for to := range b.ValidMoves(p) {
				require.True(t, b.InBounds(to), "%s generated %s", p, to)
				require.True(t, to.Dark(), "%s generated light cell %s", p, to)
			}
		}
	}
}

func TestDestinationsOrder(t *testing.T) {
	m := Moves{
		{5, 4}: nil,
		{3, 2}: nil,
		{5, 2}: nil,
		{3, 4}: nil,
	}
	require.Equal(t, []Cell{{3, 2}, {3, 4}, {5, 2}, {5, 4}}, m.Destinations())
}
