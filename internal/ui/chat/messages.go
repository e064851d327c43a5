// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SessionStartedMsg carries the result of session initialization.
type SessionStartedMsg struct {
	Err error
}

// ReplyMsg carries the result of one send back to the Update loop.
type ReplyMsg struct {
	Text  string
	Reply string
	Err   error
}
