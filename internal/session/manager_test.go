// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// FAKES
// =============================================================================

type fakeHandle struct {
	calls   atomic.Int32
	reply   func(text string) (string, error)
	release chan struct{}
}

func (h *fakeHandle) Send(ctx context.Context, text string) (string, error) {
	h.calls.Add(1)
	if h.release != nil {
		select {
		case <-h.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if h.reply == nil {
		return "echo: " + text, nil
	}
	return h.reply(text)
}

type fakeEndpoint struct {
	handle *fakeHandle
	err    error

	mu   sync.Mutex
	reqs []SessionRequest
}

func (e *fakeEndpoint) StartSession(ctx context.Context, req SessionRequest) (Handle, error) {
	e.mu.Lock()
	e.reqs = append(e.reqs, req)
	e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	return e.handle, nil
}

type nilEndpoint struct{}

func (nilEndpoint) StartSession(context.Context, SessionRequest) (Handle, error) {
	return nil, nil
}

func newReadyManager(t *testing.T, h *fakeHandle) *Manager {
	t.Helper()
	m := NewManager(Config{Credential: "key", Model: "gemini-test"}, &fakeEndpoint{handle: h}, nil)
	require.NoError(t, m.Initialize(context.Background()))
	require.Equal(t, StateReady, m.State())
	return m
}

// =============================================================================
// INITIALIZE TESTS
// =============================================================================

func TestNewManager_Defaults(t *testing.T) {
	m := NewManager(Config{}, nil, nil)

	assert.Equal(t, StateUninitialized, m.State())
	assert.Equal(t, DefaultRequestTimeout, m.cfg.RequestTimeout)
	assert.Empty(t, m.SessionID())
	assert.Zero(t, m.Duration())
}

func TestInitialize_MissingCredential(t *testing.T) {
	for _, cred := range []string{"", "   ", "\t\n"} {
		ep := &fakeEndpoint{handle: &fakeHandle{}}
		m := NewManager(Config{Credential: cred}, ep, nil)

		err := m.Initialize(context.Background())

		require.ErrorIs(t, err, ErrMissingCredential)
		assert.Equal(t, StateDisabled, m.State())
		assert.Empty(t, ep.reqs, "endpoint must not be contacted without a credential")
	}
}

func TestInitialize_EndpointFailure(t *testing.T) {
	cause := errors.New("invalid model")
	m := NewManager(Config{Credential: "key"}, &fakeEndpoint{err: cause}, nil)

	err := m.Initialize(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEndpointInit)
	assert.ErrorIs(t, err, cause)
	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "invalid model", initErr.Error())
	assert.Equal(t, StateDisabled, m.State())
}

func TestInitialize_NilHandle(t *testing.T) {
	tests := []struct {
		name     string
		endpoint Endpoint
	}{
		{"typed nil pointer", &fakeEndpoint{}},
		{"untyped nil", nilEndpoint{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(Config{Credential: "key"}, tt.endpoint, nil)

			err := m.Initialize(context.Background())

			assert.ErrorIs(t, err, ErrEndpointInit)
			assert.Equal(t, StateDisabled, m.State())

			require.NotPanics(t, func() {
				_, err = m.Send(context.Background(), "hello")
			})
			assert.ErrorIs(t, err, ErrNotReady)
		})
	}
}

func TestInitialize_NoEndpoint(t *testing.T) {
	m := NewManager(Config{Credential: "key"}, nil, nil)

	assert.ErrorIs(t, m.Initialize(context.Background()), ErrEndpointInit)
	assert.Equal(t, StateDisabled, m.State())
}

func TestInitialize_PassesConfig(t *testing.T) {
	ep := &fakeEndpoint{handle: &fakeHandle{}}
	m := NewManager(Config{Credential: "key", Model: "gemini-x", SystemPrompt: "be brief"}, ep, nil)

	require.NoError(t, m.Initialize(context.Background()))

	require.Len(t, ep.reqs, 1)
	assert.Equal(t, "key", ep.reqs[0].Credential)
	assert.Equal(t, "gemini-x", ep.reqs[0].Model)
	assert.Equal(t, "be brief", ep.reqs[0].SystemPrompt)
	assert.Empty(t, ep.reqs[0].History)
	assert.True(t, strings.HasPrefix(m.SessionID(), "sess_"))
	assert.Equal(t, "gemini-x", m.Model())
}

func TestInitialize_NeverRecreated(t *testing.T) {
	ep := &fakeEndpoint{handle: &fakeHandle{}}
	m := NewManager(Config{Credential: "key"}, ep, nil)
	require.NoError(t, m.Initialize(context.Background()))

	assert.ErrorIs(t, m.Initialize(context.Background()), ErrAlreadyInitialized)
	assert.Len(t, ep.reqs, 1)
	assert.Equal(t, StateReady, m.State())

	disabled := NewManager(Config{}, ep, nil)
	_ = disabled.Initialize(context.Background())
	assert.ErrorIs(t, disabled.Initialize(context.Background()), ErrAlreadyInitialized)
	assert.Equal(t, StateDisabled, disabled.State())
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestSend_Success(t *testing.T) {
	h := &fakeHandle{reply: func(text string) (string, error) { return "hi there", nil }}
	m := newReadyManager(t, h)

	reply, err := m.Send(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
	assert.Equal(t, StateReady, m.State())
	assert.Equal(t, []Turn{{RoleUser, "hello"}, {RoleModel, "hi there"}}, m.History())
	assert.Equal(t, Stats{Sent: 1}, m.Stats())
}

func TestSend_FailureKeepsSessionReady(t *testing.T) {
	fail := true
	h := &fakeHandle{reply: func(text string) (string, error) {
		if fail {
			return "", errors.New("timeout")
		}
		return "ok", nil
	}}
	m := newReadyManager(t, h)

	_, err := m.Send(context.Background(), "x")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommunication)
	var commErr *CommunicationError
	require.ErrorAs(t, err, &commErr)
	assert.Equal(t, "timeout", commErr.Detail)
	assert.Equal(t, StateReady, m.State())
	assert.Empty(t, m.History(), "failed turns are not recorded")

	fail = false
	reply, err := m.Send(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.EqualValues(t, 2, h.calls.Load())
	assert.Equal(t, Stats{Sent: 1, Failed: 1}, m.Stats())
}

func TestSend_EmptyMessage(t *testing.T) {
	h := &fakeHandle{}
	m := newReadyManager(t, h)

	for _, text := range []string{"", "  ", "\n\t"} {
		_, err := m.Send(context.Background(), text)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
	assert.Zero(t, h.calls.Load())
}

func TestSend_NotReady(t *testing.T) {
	uninit := NewManager(Config{Credential: "key"}, &fakeEndpoint{handle: &fakeHandle{}}, nil)
	_, err := uninit.Send(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotReady)

	disabled := NewManager(Config{}, &fakeEndpoint{handle: &fakeHandle{}}, nil)
	_ = disabled.Initialize(context.Background())
	_, err = disabled.Send(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestSend_RejectsConcurrentCall(t *testing.T) {
	h := &fakeHandle{release: make(chan struct{})}
	m := newReadyManager(t, h)

	done := make(chan error, 1)
	go func() {
		_, err := m.Send(context.Background(), "first")
		done <- err
	}()

	require.Eventually(t, m.InFlight, time.Second, time.Millisecond)

	_, err := m.Send(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)

	close(h.release)
	require.NoError(t, <-done)
	assert.EqualValues(t, 1, h.calls.Load(), "second call must not reach the endpoint")
	assert.False(t, m.InFlight())
}

func TestSend_RequestTimeout(t *testing.T) {
	h := &fakeHandle{release: make(chan struct{})}
	m := NewManager(Config{Credential: "key", RequestTimeout: 10 * time.Millisecond}, &fakeEndpoint{handle: h}, nil)
	require.NoError(t, m.Initialize(context.Background()))

	_, err := m.Send(context.Background(), "slow")

	assert.ErrorIs(t, err, ErrCommunication)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StateReady, m.State())
}

func TestCommunicationError_EmptyCause(t *testing.T) {
	err := newCommunicationError(errors.New(""))
	assert.Equal(t, "unknown error", err.Detail)
	assert.Equal(t, "unknown error", newCommunicationError(nil).Error())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "disabled", StateDisabled.String())
	assert.Equal(t, "unknown", State(42).String())
}
