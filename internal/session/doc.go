// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session manages the single conversation session held with the
// Gemini endpoint.
//
// # State Machine
//
//	Uninitialized -> Ready     (Initialize succeeded)
//	Uninitialized -> Disabled  (ErrMissingCredential or *InitError)
//
// Ready has no further transitions. A failed Send returns a
// *CommunicationError and the session stays Ready.
//
// # Serialization
//
// At most one Send is outstanding at a time; a concurrent call returns
// ErrBusy without reaching the endpoint.
//
// # Usage
//
//	mgr := session.NewManager(session.Config{
//	    Credential: cfg.Gemini.APIKey,
//	    Model:      cfg.Gemini.Model,
//	}, endpoint, logger)
//	if err := mgr.Initialize(ctx); err != nil {
//	    // disable submission
//	}
//	reply, err := mgr.Send(ctx, "hello")
package session
