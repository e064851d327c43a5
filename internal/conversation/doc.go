// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation implements the input rules of the chat: trim the
// input, ignore empty submissions, allow one submission at a time, and
// append the exchange to the transcript.
//
// The package knows nothing about terminals. The Bubble Tea model calls
// Begin on the UI goroutine, runs SendFunc in a tea.Cmd, and calls Complete
// when the reply message arrives. The line-mode REPL calls Submit.
package conversation
