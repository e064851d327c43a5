// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli wires configuration, logging and the Gemini session into the
// two user surfaces and exposes them as commands.
//
// # Commands
//
//	gemini-chat            Full-screen chat interface (needs a terminal)
//	gemini-chat chat       Line-mode chat with editable input and history
//	gemini-chat version    Print version information
//
// # Flags
//
//	--config PATH    Load this TOML file instead of ~/.gemini-chat/config.toml
//	-m, --model NAME Override the configured model
//	--no-markdown    Show replies as plain text
//	--debug          Log at debug level (default file ~/.gemini-chat/debug.log)
//
// # Exit Codes
//
//	0  success
//	1  general error, including a missing GEMINI_API_KEY
//	2  usage error, or no terminal for the full-screen interface
//	3  configuration error
package cli
