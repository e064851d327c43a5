// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for transcript messages.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a transcript entry.
type Sender int

const (
	SenderUser Sender = iota
	SenderAssistant
	SenderSystem
	SenderSystemError
)

// String returns the lowercase identifier of the sender.
func (s Sender) String() string {
	switch s {
	case SenderUser:
		return "user"
	case SenderAssistant:
		return "assistant"
	case SenderSystem:
		return "system"
	case SenderSystemError:
		return "system_error"
	default:
		return "unknown"
	}
}

// Label returns the label shown in front of the message text.
func (s Sender) Label() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderAssistant:
		return "Gemini"
	case SenderSystem:
		return "System"
	case SenderSystemError:
		return "System Error"
	default:
		return "Unknown"
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single transcript entry. Messages are values; once appended to
// a Transcript they are never modified.
type Message struct {
	ID        string    `json:"id"`
	Seq       int       `json:"seq"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// newMessage creates a message with a fresh ID. Seq is assigned by the
// Transcript on append.
func newMessage(sender Sender, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// String formats the message the way it appears in a plain transcript.
func (m Message) String() string {
	return m.Sender.Label() + ": " + m.Text
}
