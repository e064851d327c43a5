// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for transcript messages.
//
// # Key Types
//
//   - Sender: who produced an entry (user, assistant, system, system error)
//   - Message: an immutable transcript entry with sequence position
//   - Transcript: the ordered, append-only list of messages
//
// # Usage
//
//	tr := model.NewTranscript()
//	tr.Append(model.SenderUser, "hello")
//	tr.Append(model.SenderAssistant, "hi there")
//	for _, m := range tr.Messages() {
//	    fmt.Println(m.String())
//	}
package model
