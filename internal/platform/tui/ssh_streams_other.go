//go:build !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd && !solaris

package tui

import (
	"io"

	"github.com/charmbracelet/ssh"
)

func sessionStreams(sess ssh.Session, _ ssh.Pty) (io.Reader, *Output) {
	return sess, NewOutput(sess)
}
