// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SoftwareApkDev/gemini-chat-app/internal/session"
)

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts session initialization.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startSession, textinput.Blink)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case SessionStartedMsg:
		return m.handleSessionStarted(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case spinner.TickMsg:
		if m.controller.InFlight() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.MouseMsg:
		return m, m.transcript.Update(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other input internals.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleSessionStarted(msg SessionStartedMsg) (tea.Model, tea.Cmd) {
	if !m.starting {
		return m, nil
	}
	m.starting = false
	m.controller.ReportInit(msg.Err)

	if msg.Err != nil {
		m.logger.Warn("session unavailable", "error", msg.Err)
		m.header.SetStatus("disabled")
		m.input.Blur()
		m.input.Placeholder = "Chat unavailable"
		if errors.Is(msg.Err, session.ErrMissingCredential) {
			m.input.Placeholder = "Set GEMINI_API_KEY to chat"
		}
		return m, nil
	}

	m.header.SetStatus("ready")
	return m, m.input.Focus()
}

func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	if !m.controller.InFlight() {
		return m, nil
	}
	if msg.Err != nil {
		m.logger.Debug("reply failed", "error", msg.Err)
	}
	m.controller.Complete(msg.Reply, msg.Err)
	m.header.SetStatus("ready")

	m.input.Reset()
	return m, m.input.Focus()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Send):
		return m.submit()

	case key.Matches(msg, m.keys.Up):
		m.transcript.ScrollUp(1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.transcript.ScrollDown(1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.transcript.PageUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.transcript.PageDown()
		return m, nil

	case key.Matches(msg, m.keys.Top), key.Matches(msg, m.keys.Bottom):
		return m, m.transcript.Update(msg)
	}

	if !m.input.Focused() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit starts one submission. Empty input is a no-op that keeps focus.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.CanSubmit() {
		return m, nil
	}

	text, ok := m.controller.Begin(m.input.Value())
	if !ok {
		return m, m.input.Focus()
	}

	m.header.SetStatus("sending")
	m.input.Blur()
	return m, tea.Batch(m.sendCmd(text), m.spinner.Tick)
}
