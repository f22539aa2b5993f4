//go:build !windows
// +build !windows

package pkg

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	"github.com/rs/zerolog/log"
	gossh "golang.org/x/crypto/ssh"
)

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"
)

// Server hosts one client process per ssh session. Every session plays its
// own game against the computer.
type Server struct {
	*ssh.Server
	ClientBinary string
	ClientArgs   []string
}

// NewServer configures the ssh server. Without a host key file a key is
// generated at start.
func NewServer(addr, hostKey, clientBinary string, idle time.Duration, clientArgs ...string) (*Server, error) {
	if idle <= 0 {
		idle = ServerIdleTimeout
	}

	s := &Server{
		ClientBinary: clientBinary,
		ClientArgs:   clientArgs,
	}
	s.Server = &ssh.Server{
		Addr:        addr,
		IdleTimeout: idle,
		Handler:     s.handle,
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return true
		},
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}

	if hostKey != "" {
		if err := s.SetOption(ssh.HostKeyFile(hostKey)); err != nil {
			return nil, fmt.Errorf("load host key %s: %w", hostKey, err)
		}
	}
	return s, nil
}

// Command builds the client process for a session of user.
func (s *Server) Command(ctx context.Context, user string) *exec.Cmd {
	args := append([]string{}, s.ClientArgs...)
	args = append(args, "--name", Nickname(user))
	return exec.CommandContext(ctx, s.ClientBinary, args...)
}

func (s *Server) handle(sess ssh.Session) {
	logger := log.With().Str("user", sess.User()).Str("remote", sess.RemoteAddr().String()).Logger()

	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "non-interactive terminals are not supported\n")
		sess.Exit(1)
		return
	}

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := s.Command(cmdCtx, sess.User())
	cmd.Env = append(sess.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(ptyReq.Window.Height),
		Cols: uint16(ptyReq.Window.Width),
	})
	if err != nil {
		logger.Error().Err(err).Msg("start client")
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()
	logger.Info().Msg("session started")

	go func() {
		for win := range winCh {
			if err := pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)}); err != nil {
				logger.Warn().Err(err).Msg("resize")
			}
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	f.Close()
	if err := cmd.Wait(); err != nil {
		logger.Debug().Err(err).Msg("client exited")
	}
	logger.Info().Msg("session ended")
}
