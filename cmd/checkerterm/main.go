package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/qnkhuat/checkerterm/pkg"
	"github.com/qnkhuat/checkerterm/pkg/checkers"
	"github.com/qnkhuat/checkerterm/pkg/gui"
	"github.com/qnkhuat/checkerterm/pkg/minimax"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "checkerterm",
		Usage: "play checkers against the computer in your terminal",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "depth",
				Aliases: []string{"d"},
				Usage:   "plies the computer looks ahead",
				Value:   minimax.DefaultDepth,
				EnvVars: []string{"CHECKERTERM_DEPTH"},
			},
			&cli.IntFlag{
				Name:    "size",
				Usage:   "board size",
				Value:   checkers.DefaultSize,
				EnvVars: []string{"CHECKERTERM_SIZE"},
			},
			&cli.IntFlag{
				Name:    "workers",
				Usage:   "root moves searched in parallel",
				Value:   1,
				EnvVars: []string{"CHECKERTERM_WORKERS"},
			},
			&cli.DurationFlag{
				Name:    "think",
				Usage:   "time budget per computer move, 0 for none",
				EnvVars: []string{"CHECKERTERM_THINK"},
			},
			&cli.StringFlag{
				Name:    "name",
				Usage:   "your name, random when empty",
				EnvVars: []string{"CHECKERTERM_NAME"},
			},
			&cli.StringFlag{
				Name:    "color",
				Usage:   "your side: red moves first, blue second",
				Value:   "red",
				EnvVars: []string{"CHECKERTERM_COLOR"},
			},
			&cli.StringFlag{
				Name:    "theme",
				Value:   gui.ThemeBasic.Name,
				EnvVars: []string{"CHECKERTERM_THEME"},
			},
			&cli.StringFlag{
				Name:    "themes",
				Usage:   "JSON file with extra themes",
				EnvVars: []string{"CHECKERTERM_THEMES"},
			},
			&cli.StringFlag{
				Name:    "log",
				Usage:   "path to log file",
				Value:   "./checkerterm.log",
				EnvVars: []string{"CHECKERTERM_LOG"},
			},
			&cli.BoolFlag{
				Name:    "debug",
				EnvVars: []string{"CHECKERTERM_DEBUG"},
			},
			&cli.BoolFlag{
				Name:    "plain",
				Usage:   "line based mode without the board UI",
				EnvVars: []string{"CHECKERTERM_PLAIN"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cCtx *cli.Context) error {
	if err := pkg.InitLog(cCtx.String("log"), "CLIENT", cCtx.Bool("debug")); err != nil {
		return err
	}

	color, err := pkg.ParseColor(cCtx.String("color"))
	if err != nil {
		return err
	}

	searcher := minimax.Searcher{
		Depth:   cCtx.Int("depth"),
		Workers: cCtx.Int("workers"),
		Timeout: cCtx.Duration("think"),
	}
	human := pkg.NewPlayer(cCtx.String("name"), color, false)
	match, err := pkg.NewMatch(cCtx.Int("size"), human, searcher)
	if err != nil {
		return err
	}
	log.Info().Str("match", match.ID).Str("player", human.String()).Int("depth", searcher.Depth).Msg("new client")

	ctx, stop := signal.NotifyContext(cCtx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cCtx.Bool("plain") || !term.IsTerminal(int(os.Stdout.Fd())) {
		plain := &pkg.Plain{Match: match, Human: color, In: os.Stdin, Out: os.Stdout}
		return plain.Run(ctx)
	}

	theme, err := loadTheme(cCtx.String("theme"), cCtx.String("themes"))
	if err != nil {
		return err
	}
	return runTUI(ctx, match, color, theme)
}

func loadTheme(name, path string) (gui.Theme, error) {
	var custom []gui.ThemeHex
	if path != "" {
		themes, err := gui.LoadThemes(path)
		if err != nil {
			return gui.Theme{}, err
		}
		custom = themes
	}
	return gui.FindTheme(name, custom)
}

func runTUI(ctx context.Context, match *pkg.Match, color checkers.Color, theme gui.Theme) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cl := pkg.NewClient(color, theme)
	go cl.HandleRead()

	errc := make(chan error, 1)
	go func() {
		errc <- match.Run(ctx, cl.Out, cl.In)
	}()

	go func() {
		select {
		case <-ctx.Done():
		case err := <-errc:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("match stopped")
			}
		}
		cl.App.Stop()
	}()

	start := time.Now()
	err := cl.App.SetRoot(cl.Layout, true).EnableMouse(true).Run()
	log.Info().Dur("played", time.Since(start)).Msg("client closed")
	return err
}
