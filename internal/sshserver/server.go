// SPDX-License-Identifier: EPL-2.0

package sshserver

import (
	"context"
	"net"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"cmdtrie-cli/internal/dispatch"
)

const (
	// StateCreated indicates the server has been created but not started.
	StateCreated ServerState = iota
	// StateStarting indicates the server is in the process of starting.
	StateStarting
	// StateRunning indicates the server is running and accepting connections.
	StateRunning
	// StateStopping indicates the server is shutting down.
	StateStopping
	// StateStopped indicates the server has stopped (terminal state).
	StateStopped
	// StateFailed indicates the server failed to start or encountered a fatal error (terminal state).
	StateFailed
)

// DefaultUser is the user name reported in ConnectionInfo. Any user name is
// accepted; only the token matters.
const DefaultUser = "cmdtrie"

type (
	// ServerState represents the lifecycle state of the server.
	ServerState int32

	// Clock supplies the current time for token expiry.
	Clock interface {
		Now() time.Time
	}

	realClock struct{}

	// Token is a session password issued by the operator.
	Token struct {
		Value     TokenValue
		CreatedAt time.Time
		ExpiresAt time.Time
		// Label names who or what the token was issued for.
		Label string
	}

	// Server serves a command tree over SSH.
	// A Server instance is single-use: once stopped or failed, create a new instance.
	Server struct {
		// Immutable after New
		cfg        Config
		dispatcher *dispatch.Dispatcher
		exec       dispatch.Executor
		clock      Clock
		logger     *log.Logger

		// State management (atomic for lock-free reads)
		state atomic.Int32

		// Initialized during Start() - protected by srvMu
		srvMu    sync.Mutex
		srv      *ssh.Server
		listener net.Listener
		addr     string // Actual bound address (including resolved port)

		// Lifecycle management
		ctx       context.Context
		cancel    context.CancelFunc
		wg        sync.WaitGroup
		startedCh chan struct{} // Closed when server is ready to accept connections
		errCh     chan error    // Receives fatal errors from background goroutines
		errMu     sync.Mutex
		lastErr   error // Stores the last error for State() == StateFailed

		// Token management
		tokens  map[TokenValue]*Token
		tokenMu sync.RWMutex
	}

	// Config holds immutable configuration for the SSH server.
	Config struct {
		// Host is the address to bind to (default: 127.0.0.1)
		Host HostAddress
		// Port is the port to listen on (0 = auto-select)
		Port ListenPort
		// TokenTTL is how long tokens are valid (default: 15m)
		TokenTTL time.Duration
		// ShutdownTimeout is the timeout for graceful shutdown (default: 10s)
		ShutdownTimeout time.Duration
		// StartupTimeout is the max time to wait for server to be ready (default: 5s)
		StartupTimeout time.Duration
		// CleanupInterval is how often expired tokens are dropped (default: 5m)
		CleanupInterval time.Duration
		// Logger overrides the default stderr logger.
		Logger *log.Logger
	}

	// ConnectionInfo contains information needed to connect to the SSH server.
	ConnectionInfo struct {
		Host     HostAddress
		Port     ListenPort
		Token    TokenValue
		User     string
		ExpireAt time.Time
	}
)

func (realClock) Now() time.Time { return time.Now() }

// String returns a human-readable representation of the server state.
func (s ServerState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal returns true if the state is Stopped or Failed.
func (s ServerState) IsTerminal() bool {
	return s == StateStopped || s == StateFailed
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Host:            "127.0.0.1",
		Port:            0,
		TokenTTL:        15 * time.Minute,
		ShutdownTimeout: 10 * time.Second,
		StartupTimeout:  5 * time.Second,
		CleanupInterval: 5 * time.Minute,
	}
}

// New creates a server that resolves session commands with d and runs them
// with exec. The server is not started; call Start() to begin accepting
// connections.
func New(cfg Config, d *dispatch.Dispatcher, exec dispatch.Executor) *Server {
	return NewWithClock(cfg, d, exec, realClock{})
}

// NewWithClock is New with an explicit time source for token expiry.
func NewWithClock(cfg Config, d *dispatch.Dispatcher, exec dispatch.Executor, clock Clock) *Server {
	defaults := DefaultConfig()
	if cfg.Host == "" {
		cfg.Host = defaults.Host
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = defaults.TokenTTL
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if cfg.StartupTimeout == 0 {
		cfg.StartupTimeout = defaults.StartupTimeout
	}
	if cfg.CleanupInterval == 0 {
		cfg.CleanupInterval = defaults.CleanupInterval
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "ssh-server",
		})
	}

	s := &Server{
		cfg:        cfg,
		dispatcher: d,
		exec:       exec,
		clock:      clock,
		logger:     logger,
		tokens:     make(map[TokenValue]*Token),
		startedCh:  make(chan struct{}),
		errCh:      make(chan error, 1), // Buffered so goroutines don't block
	}
	s.state.Store(int32(StateCreated))

	return s
}

// Err returns a channel that receives fatal server errors.
// Use this to monitor for unexpected failures after Start() returns.
// The channel is closed when the server stops.
func (s *Server) Err() <-chan error {
	return s.errCh
}

// State returns the current server state.
func (s *Server) State() ServerState {
	return ServerState(s.state.Load())
}

// IsRunning returns whether the server is currently running and accepting connections.
func (s *Server) IsRunning() bool {
	return s.State() == StateRunning
}

// LastError returns the error that caused the Failed state, or nil.
func (s *Server) LastError() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.lastErr
}

// Address returns the server's bound address (host:port), or "" before a
// successful Start.
func (s *Server) Address() string {
	s.srvMu.Lock()
	defer s.srvMu.Unlock()
	return s.addr
}

// Port returns the server's listening port, or 0 before a successful Start.
func (s *Server) Port() ListenPort {
	_, portStr, err := net.SplitHostPort(s.Address())
	if err != nil {
		return 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0
	}
	return ListenPort(port)
}

// Host returns the server's configured host address.
func (s *Server) Host() HostAddress {
	return s.cfg.Host
}

// Wait blocks until the server stops (either gracefully or due to error).
// Returns the error if the server failed, nil otherwise.
func (s *Server) Wait() error {
	s.wg.Wait()

	if s.State() == StateFailed {
		return s.LastError()
	}
	return nil
}
