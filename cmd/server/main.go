//go:build !windows
// +build !windows

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/joho/godotenv"
	"github.com/qnkhuat/checkerterm/pkg"
	"github.com/qnkhuat/checkerterm/pkg/minimax"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "server",
		Usage: "serve checkerterm over ssh",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen-ssh",
				Value:   pkg.SshPort,
				EnvVars: []string{"CHECKERTERM_LISTEN_SSH"},
			},
			&cli.StringFlag{
				Name:    "client",
				Usage:   "path to the checkerterm binary",
				Value:   "checkerterm",
				EnvVars: []string{"CHECKERTERM_CLIENT"},
			},
			&cli.StringFlag{
				Name:    "host-key",
				Usage:   "host key file, generated at start when empty",
				EnvVars: []string{"CHECKERTERM_HOST_KEY"},
			},
			&cli.DurationFlag{
				Name:    "idle",
				Value:   pkg.ServerIdleTimeout,
				EnvVars: []string{"CHECKERTERM_IDLE"},
			},
			&cli.IntFlag{
				Name:    "depth",
				Value:   minimax.DefaultDepth,
				EnvVars: []string{"CHECKERTERM_DEPTH"},
			},
			&cli.StringFlag{
				Name:    "client-log",
				Usage:   "log file of the hosted clients",
				Value:   os.DevNull,
				EnvVars: []string{"CHECKERTERM_CLIENT_LOG"},
			},
			&cli.StringFlag{
				Name:    "log",
				Value:   "./server.log",
				EnvVars: []string{"CHECKERTERM_SERVER_LOG"},
			},
			&cli.BoolFlag{
				Name:    "debug",
				EnvVars: []string{"CHECKERTERM_DEBUG"},
			},
		},
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(cCtx *cli.Context) error {
	if err := pkg.InitLog(cCtx.String("log"), "SERVER", cCtx.Bool("debug")); err != nil {
		return err
	}

	s, err := pkg.NewServer(
		cCtx.String("listen-ssh"),
		cCtx.String("host-key"),
		cCtx.String("client"),
		cCtx.Duration("idle"),
		"--depth", strconv.Itoa(cCtx.Int("depth")),
		"--log", cCtx.String("client-log"),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cCtx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.Addr).Msg("server started")
		errc <- s.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info().Msg("shutting down")
	return s.Shutdown(shutdown)
}
