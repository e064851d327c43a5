// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// DefaultRequestTimeout bounds a single Send when Config.RequestTimeout is zero.
const DefaultRequestTimeout = 120 * time.Second

// =============================================================================
// STATE
// =============================================================================

// State is the session lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateDisabled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// =============================================================================
// ENDPOINT CAPABILITY
// =============================================================================

// Role of a history turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one exchanged message in the session history.
type Turn struct {
	Role Role
	Text string
}

// SessionRequest carries everything the endpoint needs to start a session.
type SessionRequest struct {
	Credential   string
	Model        string
	SystemPrompt string
	History      []Turn
}

// Endpoint starts conversation sessions with the remote model.
type Endpoint interface {
	StartSession(ctx context.Context, req SessionRequest) (Handle, error)
}

// Handle is an open conversation session owned by the endpoint.
type Handle interface {
	Send(ctx context.Context, text string) (string, error)
}

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Config holds configuration for the session manager. It is built once at
// startup and never read from ambient state.
type Config struct {
	// Credential is the API key. Empty means submission stays disabled.
	Credential string

	// Model is the model identifier passed to the endpoint.
	Model string

	// SystemPrompt is an optional system instruction for the session.
	SystemPrompt string

	// RequestTimeout bounds every Send (default: 120s).
	RequestTimeout time.Duration
}

// Stats counts Send outcomes.
type Stats struct {
	Sent   int
	Failed int
}

// Manager holds at most one active conversation session.
type Manager struct {
	mu sync.Mutex

	cfg      Config
	endpoint Endpoint
	logger   *slog.Logger

	state     State
	handle    Handle
	sessionID string
	history   []Turn
	stats     Stats
	startedAt time.Time

	// inFlight is the single-slot guard that keeps Send calls serialized.
	inFlight atomic.Bool
}

// NewManager creates a session manager. A nil logger discards output.
func NewManager(cfg Config, endpoint Endpoint, logger *slog.Logger) *Manager {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		cfg:      cfg,
		endpoint: endpoint,
		logger:   logger.With("component", "session"),
		state:    StateUninitialized,
	}
}

// Initialize starts the session. It moves the manager to StateReady on
// success and to StateDisabled on any failure. A session is never recreated.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateUninitialized {
		return ErrAlreadyInitialized
	}

	if strings.TrimSpace(m.cfg.Credential) == "" {
		m.state = StateDisabled
		m.logger.Warn("no credential supplied, submission disabled")
		return ErrMissingCredential
	}

	if m.endpoint == nil {
		m.state = StateDisabled
		return &InitError{Cause: errors.New("no endpoint configured")}
	}

	handle, err := m.endpoint.StartSession(ctx, SessionRequest{
		Credential:   m.cfg.Credential,
		Model:        m.cfg.Model,
		SystemPrompt: m.cfg.SystemPrompt,
		History:      append([]Turn(nil), m.history...),
	})
	if err == nil && isNilHandle(handle) {
		err = errors.New("endpoint returned no session")
	}
	if err != nil {
		m.state = StateDisabled
		m.logger.Error("failed to start chat session", "model", m.cfg.Model, "error", err)
		return &InitError{Cause: err}
	}

	m.handle = handle
	m.state = StateReady
	m.sessionID = "sess_" + uuid.NewString()
	m.startedAt = time.Now()
	m.logger.Info("chat session started", "session_id", m.sessionID, "model", m.cfg.Model)
	return nil
}

// isNilHandle also catches a nil pointer boxed in the interface.
func isNilHandle(h Handle) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Send forwards text to the endpoint and returns the reply. Failures are
// returned as *CommunicationError and leave the session Ready.
func (m *Manager) Send(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyMessage
	}

	m.mu.Lock()
	state, handle := m.state, m.handle
	m.mu.Unlock()

	if state != StateReady || handle == nil {
		return "", ErrNotReady
	}

	if !m.inFlight.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer m.inFlight.Store(false)

	ctx, cancel := context.WithTimeout(ctx, m.cfg.RequestTimeout)
	defer cancel()

	start := time.Now()
	reply, err := handle.Send(ctx, text)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.stats.Failed++
		m.logger.Error("send failed", "session_id", m.sessionID, "duration", time.Since(start), "error", err)
		return "", newCommunicationError(err)
	}

	m.stats.Sent++
	m.history = append(m.history,
		Turn{Role: RoleUser, Text: text},
		Turn{Role: RoleModel, Text: reply},
	)
	m.logger.Debug("reply received", "session_id", m.sessionID, "duration", time.Since(start), "chars", len(reply))
	return reply, nil
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// InFlight reports whether a Send is outstanding.
func (m *Manager) InFlight() bool {
	return m.inFlight.Load()
}

// SessionID returns the current session ID, empty before a successful
// Initialize.
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// Model returns the configured model identifier.
func (m *Manager) Model() string {
	return m.cfg.Model
}

// History returns a copy of the successfully exchanged turns.
func (m *Manager) History() []Turn {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Turn, len(m.history))
	copy(out, m.history)
	return out
}

// Stats returns Send counters.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Duration returns how long the session has been Ready.
func (m *Manager) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.startedAt.IsZero() {
		return 0
	}
	return time.Since(m.startedAt)
}
