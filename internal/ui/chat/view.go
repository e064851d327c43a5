// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const thinkingText = "Gemini is thinking..."

// View renders the chat view.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.transcript.View(),
		m.renderInput(),
		m.renderHelp(),
	)
}

// layout sizes every region from the window dimensions.
//
// Layout: header (1) + transcript (dynamic) + input area (2) + help (1+)
func (m *Model) layout() {
	const inputAreaHeight = 2

	m.header.SetWidth(m.width)
	m.help.Width = m.width

	helpHeight := lipgloss.Height(m.renderHelp())
	height := m.height - m.header.Height() - inputAreaHeight - helpHeight
	if height < 1 {
		height = 1
	}
	m.transcript.SetSize(m.width, height)

	// Input row: padding (2) + prompt + input + cursor + space + button +
	// space + spinner + space + status, plus one column of slack.
	reserved := 2 + lipgloss.Width(m.input.Prompt) + 1 + 1 + lipgloss.Width(m.theme.SendButton(true)) +
		1 + lipgloss.Width(m.spinner.View()) + 1 + len(thinkingText) + 1
	width := m.width - reserved
	if width < 10 {
		width = 10
	}
	m.input.Width = width
}

func (m Model) renderInput() string {
	parts := []string{m.input.View(), m.theme.SendButton(m.CanSubmit())}
	if m.controller.InFlight() {
		parts = append(parts, m.spinner.View()+" "+m.theme.ThinkingText.Render(thinkingText))
	}
	row := strings.Join(parts, " ")
	return m.theme.InputContainer.Width(m.width).Render(row)
}

func (m Model) renderHelp() string {
	return m.help.View(m.keys)
}
