package pkg

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/qnkhuat/checkerterm/pkg/checkers"
	"github.com/qnkhuat/checkerterm/pkg/minimax"
	"github.com/stretchr/testify/require"
)

func runPlain(t *testing.T, m *Match, human checkers.Color, input string) string {
	t.Helper()

	var out bytes.Buffer
	p := &Plain{Match: m, Human: human, In: strings.NewReader(input), Out: &out}
	require.NoError(t, p.Run(context.Background()))
	return out.String()
}

func TestPlainScriptedWin(t *testing.T) {
	g := newTestGame(t, checkers.Red,
		"........",
		"........",
		"........",
		"........",
		".b......",
		"r.......",
		"........",
		"........",
	)
	m := NewMatchWithGame(g, minimax.Searcher{Depth: 1},
		NewPlayer("alice", checkers.Red, false),
		NewPlayer("bot", checkers.Blue, true),
	)

	out := runPlain(t, m, checkers.Red, "zz 99\na3 b4\na3 c5\n")

	require.Contains(t, out, ErrNotation.Error())
	require.Contains(t, out, ErrIllegalMove.Error())
	require.Contains(t, out, "last: a3xc5")
	require.Contains(t, out, "Red wins")
	require.Equal(t, 0, g.Board.Left(checkers.Blue))
}

func TestPlainComputerReplies(t *testing.T) {
	m := newTestMatch(t, checkers.Red)

	out := runPlain(t, m, checkers.Red, "b2 c3\nquit\n")

	require.Contains(t, out, "Blue is thinking...")
	require.Contains(t, out, "last: b2-c3")
	require.Equal(t, 2, strings.Count(out, "Red> "))
	require.True(t, strings.HasSuffix(out, "bye\n"))
	require.Len(t, m.Game.History(), 2)
}

func TestPlainEndOfInput(t *testing.T) {
	m := newTestMatch(t, checkers.Red)

	out := runPlain(t, m, checkers.Red, "")
	require.Contains(t, out, "Red> ")
	require.Empty(t, m.Game.History())
}

func TestParseCommand(t *testing.T) {
	cmd, err := parseCommand("  C3 d4 ", 8)
	require.NoError(t, err)
	require.Equal(t, MessageMove{From: cell(5, 2), To: cell(4, 3)}, cmd)

	cmd, err = parseCommand("new", 8)
	require.NoError(t, err)
	require.Equal(t, MessageReset{}, cmd)

	cmd, err = parseCommand("quit", 8)
	require.NoError(t, err)
	require.Nil(t, cmd)

	_, err = parseCommand("c3", 8)
	require.Error(t, err)
	_, err = parseCommand("", 8)
	require.Error(t, err)
	_, err = parseCommand("c3 h9", 8)
	require.ErrorIs(t, err, ErrNotation)
}
