// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/SoftwareApkDev/gemini-chat-app/internal/model"
	"github.com/SoftwareApkDev/gemini-chat-app/internal/session"
)

// Transcript texts.
const (
	StartedText      = "Chat session started. How can I help you?"
	NotReadyText     = "Error: Chat session not initialized."
	initFailedPrefix = "Failed to start Gemini chat session: "
	commErrPrefix    = "Error communicating with Gemini: "
)

// Sender sends one message and returns the reply. *session.Manager
// satisfies it.
type Sender interface {
	Send(ctx context.Context, text string) (string, error)
}

// Sink receives transcript entries. *model.Transcript and the transcript
// renderer satisfy it.
type Sink interface {
	Append(sender model.Sender, text string) model.Message
}

// Controller holds the submit rules shared by the TUI and the REPL.
//
// Begin and Complete split one submission around an asynchronous send.
// Submit runs both halves synchronously.
type Controller struct {
	mu sync.Mutex

	sender Sender
	sink   Sink

	inFlight bool
	disabled bool
}

// NewController creates a controller appending to sink and sending through
// sender.
func NewController(sender Sender, sink Sink) *Controller {
	return &Controller{sender: sender, sink: sink}
}

// ReportInit appends the outcome of session initialization. Any error
// disables submission for the rest of the run.
func (c *Controller) ReportInit(err error) {
	switch {
	case err == nil:
		c.sink.Append(model.SenderSystem, StartedText)
	case errors.Is(err, session.ErrMissingCredential):
		c.Disable(session.ErrMissingCredential.Error())
	default:
		c.Disable(InitFailedText(err))
	}
}

// Disable permanently disables submission. A non-empty reason is appended
// as a SystemError entry.
func (c *Controller) Disable(reason string) {
	c.mu.Lock()
	c.disabled = true
	c.mu.Unlock()

	if reason != "" {
		c.sink.Append(model.SenderSystemError, reason)
	}
}

// Begin starts a submission. It returns the trimmed text and true when the
// text was accepted and a User entry appended. Empty input, a disabled
// controller, or a submission already in flight return false and append
// nothing.
func (c *Controller) Begin(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", false
	}

	c.mu.Lock()
	if c.disabled || c.inFlight {
		c.mu.Unlock()
		return "", false
	}
	c.inFlight = true
	c.mu.Unlock()

	c.sink.Append(model.SenderUser, text)
	return text, true
}

// Complete finishes the submission started by Begin, appending an Assistant
// entry on success or a SystemError entry on failure. It is a no-op when no
// submission is in flight.
func (c *Controller) Complete(reply string, err error) model.Message {
	c.mu.Lock()
	if !c.inFlight {
		c.mu.Unlock()
		return model.Message{}
	}
	c.inFlight = false
	c.mu.Unlock()

	if err != nil {
		return c.sink.Append(model.SenderSystemError, FailureText(err))
	}
	return c.sink.Append(model.SenderAssistant, reply)
}

// Submit runs Begin, Send and Complete in order. It reports whether the
// input was accepted.
func (c *Controller) Submit(ctx context.Context, raw string) bool {
	text, ok := c.Begin(raw)
	if !ok {
		return false
	}
	reply, err := c.send(ctx, text)
	c.Complete(reply, err)
	return true
}

func (c *Controller) send(ctx context.Context, text string) (string, error) {
	if c.sender == nil {
		return "", session.ErrNotReady
	}
	return c.sender.Send(ctx, text)
}

// SendFunc returns the send half of a submission, for callers that run it
// off their own goroutine.
func (c *Controller) SendFunc(text string) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		return c.send(ctx, text)
	}
}

// CanSubmit reports whether Begin would accept non-empty input.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.disabled && !c.inFlight
}

// InFlight reports whether a submission is outstanding.
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Disabled reports whether submission has been permanently disabled.
func (c *Controller) Disabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}

// InitFailedText formats an endpoint initialization failure.
func InitFailedText(err error) string {
	return initFailedPrefix + errText(err)
}

// FailureText formats a failed send for the transcript.
func FailureText(err error) string {
	if errors.Is(err, session.ErrNotReady) {
		return NotReadyText
	}
	var commErr *session.CommunicationError
	if errors.As(err, &commErr) {
		return commErrPrefix + commErr.Detail
	}
	return commErrPrefix + errText(err)
}

func errText(err error) string {
	if err == nil || err.Error() == "" {
		return "unknown error"
	}
	return err.Error()
}
