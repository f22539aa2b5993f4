package pkg

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/qnkhuat/checkerterm/pkg/checkers"
	"github.com/rs/zerolog/log"
)

var (
	redPiece  = color.New(color.FgRed, color.Bold)
	bluePiece = color.New(color.FgBlue, color.Bold)
	hintCell  = color.New(color.FgYellow)
	faint     = color.New(color.Faint)
	msgText   = color.New(color.FgMagenta)
)

// Plain plays a match on a line based terminal. Moves are typed as two
// cells, e.g. "c3 d4".
type Plain struct {
	Match *Match
	Human checkers.Color
	In    io.Reader
	Out   io.Writer
}

func (p *Plain) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	in := make(chan MessageInterface, ConnQueueSize)
	out := make(chan MessageInterface, ConnQueueSize)
	errc := make(chan error, 1)
	go func() {
		errc <- p.Match.Run(ctx, in, out)
	}()

	lines := bufio.NewScanner(p.In)
	for {
		var snap MessageGame
		select {
		case err := <-errc:
			return err
		case msg := <-out:
			g, ok := msg.(MessageGame)
			if !ok {
				continue
			}
			snap = g
		}

		if snap.Thinking {
			fmt.Fprintf(p.Out, "%s is thinking...\n", snap.Turn)
			continue
		}

		p.print(snap)
		if snap.Winner != checkers.NoColor {
			fmt.Fprintf(p.Out, "%s wins\n", snap.Winner)
			return nil
		}
		if snap.Turn != p.Human {
			continue
		}

		cmd, err := p.prompt(lines, snap)
		if err != nil {
			return err
		}
		if cmd == nil {
			fmt.Fprintln(p.Out, "bye")
			return nil
		}
		in <- cmd
	}
}

// prompt reads lines until one is a valid command. A nil command means quit.
func (p *Plain) prompt(lines *bufio.Scanner, snap MessageGame) (MessageInterface, error) {
	for {
		fmt.Fprintf(p.Out, "%s> ", snap.Turn)
		if !lines.Scan() {
			return nil, lines.Err()
		}

		cmd, err := parseCommand(lines.Text(), snap.Size())
		if err != nil {
			msgText.Fprintln(p.Out, err)
			continue
		}
		return cmd, nil
	}
}

func parseCommand(line string, size int) (MessageInterface, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil, fmt.Errorf("type a move like c3 d4, new or quit")
	}

	switch fields[0] {
	case "quit", "exit", "q":
		return nil, nil
	case "new":
		return MessageReset{}, nil
	}

	if len(fields) != 2 {
		return nil, fmt.Errorf("type a move like c3 d4, new or quit")
	}
	from, err := ParseCell(fields[0], size)
	if err != nil {
		return nil, err
	}
	to, err := ParseCell(fields[1], size)
	if err != nil {
		return nil, err
	}
	return MessageMove{From: from, To: to}, nil
}

func (p *Plain) print(snap MessageGame) {
	size := snap.Size()
	targets := make(map[checkers.Cell]bool, len(snap.Targets))
	for _, c := range snap.Targets {
		targets[c] = true
	}

	var sb strings.Builder
	for row := 0; row < size; row++ {
		fmt.Fprintf(&sb, "%2d ", size-row)
		for col := 0; col < size; col++ {
			c := checkers.Cell{Row: row, Col: col}
			switch r := snap.PieceAt(c); r {
			case 'r', 'R':
				sb.WriteString(redPiece.Sprint(string(r)))
			case 'b', 'B':
				sb.WriteString(bluePiece.Sprint(string(r)))
			default:
				switch {
				case targets[c]:
					sb.WriteString(hintCell.Sprint("*"))
				case c.Dark():
					sb.WriteString(faint.Sprint("."))
				default:
					sb.WriteString(" ")
				}
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(&sb, "%c ", 'a'+col)
	}
	sb.WriteByte('\n')

	if n := len(snap.Moves); n > 0 {
		fmt.Fprintf(&sb, "last: %s\n", snap.Moves[n-1])
	}
	for _, pl := range snap.Players {
		fmt.Fprintf(&sb, "%s %s %s\n", pl.Color, pl.Name, pl.Clock)
	}

	if _, err := io.WriteString(p.Out, sb.String()); err != nil {
		log.Error().Err(err).Msg("write board")
	}
	if snap.Msg != "" {
		msgText.Fprintln(p.Out, snap.Msg)
	}
}
