// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
)

const (
	exitOK = 0
	// exitFailure is reported for executor errors without their own status.
	exitFailure = 1
	// exitUsage is reported when the command words do not resolve.
	exitUsage = 2
)

// exitCoder is implemented by executor errors that carry a process status.
type exitCoder interface {
	ExitCode() int
}

// sessionMiddleware resolves the session's command words and runs them.
func (s *Server) sessionMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			_ = sess.Exit(s.handleSession(sess)) //nolint:errcheck // Terminal operation; error non-critical
		}
	}
}

// handleSession returns the exit status to report to the client.
func (s *Server) handleSession(sess ssh.Session) int {
	label := ""
	if token, ok := sess.Context().Value(tokenContextKey).(*Token); ok {
		label = token.Label
	}

	words := sess.Command()
	if len(words) == 0 {
		top, _ := s.dispatcher.Subcommands("")
		_, _ = fmt.Fprintf(sess, "Available commands: %s\n", strings.Join(top, ", "))
		return exitOK
	}

	inv, err := s.dispatcher.Resolve(words)
	if err != nil {
		s.logger.Debug("session command did not resolve", "label", label, "command", words, "error", err)
		_, _ = fmt.Fprintf(sess.Stderr(), "Error: %v\n", err)
		return exitUsage
	}

	s.logger.Info("running session command", "label", label, "command", inv.Path, "set", inv.Set)

	if err := s.exec.Execute(sess.Context(), inv, sess, sess.Stderr()); err != nil {
		var coded exitCoder
		if errors.As(err, &coded) {
			return coded.ExitCode()
		}
		_, _ = fmt.Fprintf(sess.Stderr(), "Error: %v\n", err)
		return exitFailure
	}
	return exitOK
}
