package pkg

import (
	"encoding/json"
	"testing"

	"github.com/qnkhuat/checkerterm/pkg/checkers"
	"github.com/stretchr/testify/require"
)

func TestMessageGamePieceAt(t *testing.T) {
	m := MessageGame{Rows: []string{".b..", "....", "....", "R..."}}
	require.Equal(t, 4, m.Size())
	require.Equal(t, 'b', m.PieceAt(cell(0, 1)))
	require.Equal(t, 'R', m.PieceAt(cell(3, 0)))
	require.Equal(t, '.', m.PieceAt(cell(1, 1)))
	require.Equal(t, '.', m.PieceAt(cell(4, 0)))
	require.Equal(t, '.', m.PieceAt(cell(0, -1)))
}

func TestMessageEncode(t *testing.T) {
	var got map[string]checkers.Cell
	require.NoError(t, json.Unmarshal(MessageMove{From: cell(5, 0), To: cell(4, 1)}.Encode(), &got))
	require.Equal(t, map[string]checkers.Cell{"from": cell(5, 0), "to": cell(4, 1)}, got)

	require.JSONEq(t, `{}`, string(MessageReset{}.Encode()))
	require.Equal(t, "TypeMessageSelect", MessageSelect{}.Type().String())
}
