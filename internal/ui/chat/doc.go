// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat screen of the gemini-chat TUI.

# Layout

	Gemini Chat App | <model>                              [ready]
	System: Chat session started. How can I help you?
	----------------------------------------
	> Type a message...  Send
	Enter send • PgUp/C-u page up • ...

# Flow

Init starts the session in a tea.Cmd and the result arrives as
SessionStartedMsg. On Enter or C-s the model calls Controller.Begin, blurs
the input, and runs the send in another tea.Cmd. The ReplyMsg it produces
is handed to Controller.Complete, after which the input is cleared and
focused again. While a send is outstanding the Send button renders
disabled and a spinner is shown.

# Key Bindings

  - Enter, C-s: send
  - Up/Down, PgUp/PgDn, C-u/C-d: scroll the transcript
  - C-Home/C-End: jump to top or bottom
  - F1: toggle full help
  - Esc, C-c: quit
*/
package chat
