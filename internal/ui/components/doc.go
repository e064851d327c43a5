// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI pieces for the gemini-chat TUI.
//
//   - Header: title bar showing the app name, model, and session status
//   - Alert: blocking notification run as its own tea.Program, used for
//     the "API Key Error" startup failure
package components
