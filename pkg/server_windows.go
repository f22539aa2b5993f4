//go:build windows
// +build windows

package pkg

import (
	"errors"
	"time"
)

// SSH server is unsupported on Windows

var errNoServer = errors.New("ssh server is not supported on windows")

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"
)

type Server struct {
	Addr string
}

func NewServer(addr, hostKey, clientBinary string, idle time.Duration, clientArgs ...string) (*Server, error) {
	return nil, errNoServer
}
