// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "errors"

// =============================================================================
// ERROR TYPES
// =============================================================================

// Sentinel errors for easy checking.
var (
	// ErrMissingCredential means no API credential was supplied. Submission
	// must stay disabled for the run.
	ErrMissingCredential = errors.New("API key not found. Please set GEMINI_API_KEY environment variable or create a .env file")

	// ErrEndpointInit matches any *InitError via errors.Is.
	ErrEndpointInit = errors.New("endpoint initialization failed")

	// ErrCommunication matches any *CommunicationError via errors.Is.
	ErrCommunication = errors.New("communication error")

	ErrAlreadyInitialized = errors.New("session already initialized")
	ErrNotReady           = errors.New("chat session not initialized")
	ErrBusy               = errors.New("a message is already being sent")
	ErrEmptyMessage       = errors.New("message is empty")
)

// InitError reports that the endpoint refused to start a session after a
// credential was supplied.
type InitError struct {
	Cause error
}

func (e *InitError) Error() string {
	if e.Cause == nil {
		return ErrEndpointInit.Error()
	}
	return e.Cause.Error()
}

func (e *InitError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrEndpointInit) match.
func (e *InitError) Is(target error) bool {
	return target == ErrEndpointInit
}

// CommunicationError reports that a single Send failed. The session stays
// usable.
type CommunicationError struct {
	// Detail is the human-readable description shown in the transcript.
	Detail string
	Cause  error
}

func (e *CommunicationError) Error() string {
	return e.Detail
}

func (e *CommunicationError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrCommunication) match.
func (e *CommunicationError) Is(target error) bool {
	return target == ErrCommunication
}

// newCommunicationError wraps an endpoint error, keeping its message verbatim.
func newCommunicationError(err error) *CommunicationError {
	detail := "unknown error"
	if err != nil && err.Error() != "" {
		detail = err.Error()
	}
	return &CommunicationError{Detail: detail, Cause: err}
}
