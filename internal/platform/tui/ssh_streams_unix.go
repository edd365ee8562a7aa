//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package tui

import (
	"io"

	"github.com/charmbracelet/ssh"
)

// sessionStreams picks the same terminal streams wish would: the allocated
// PTY when there is one, the session itself when the PTY is emulated.
func sessionStreams(sess ssh.Session, pty ssh.Pty) (io.Reader, *Output) {
	if !sess.EmulatedPty() && pty.Slave != nil {
		return pty.Slave, NewOutput(pty.Slave)
	}
	return sess, NewOutput(sess)
}
