// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SoftwareApkDev/gemini-chat-app/internal/ui/styles"
)

// =============================================================================
// ALERT MODEL
// =============================================================================

// Alert texts for the missing credential startup failure.
const (
	APIKeyAlertTitle   = "API Key Error"
	APIKeyAlertMessage = "GEMINI_API_KEY environment variable is not set. Please set it before running the app."
)

// Alert is a blocking notification. Any key dismisses it and quits the
// program it runs in. It implements tea.Model so it can be run on its own.
type Alert struct {
	title   string
	message string
	hint    string

	dismissed bool
	width     int
	height    int
	theme     *styles.Theme
}

// NewAlert creates an alert with title and message.
func NewAlert(theme *styles.Theme, title, message string) Alert {
	if theme == nil {
		theme = styles.NewTheme()
	}
	return Alert{
		title:   title,
		message: message,
		hint:    "Press any key to exit",
		theme:   theme,
	}
}

// NewAPIKeyAlert creates the missing credential alert.
func NewAPIKeyAlert(theme *styles.Theme) Alert {
	return NewAlert(theme, APIKeyAlertTitle, APIKeyAlertMessage)
}

// Title returns the alert title.
func (a Alert) Title() string { return a.title }

// Message returns the alert message.
func (a Alert) Message() string { return a.message }

// Dismissed reports whether the user has acknowledged the alert.
func (a Alert) Dismissed() bool { return a.dismissed }

// Init implements tea.Model.
func (a Alert) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (a Alert) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		a.dismissed = true
		return a, tea.Quit
	}
	return a, nil
}

// View implements tea.Model.
func (a Alert) View() string {
	if a.dismissed {
		return ""
	}

	width := a.width
	if width == 0 {
		width = 60
	}
	maxWidth := width - 8
	if maxWidth < 30 {
		maxWidth = 30
	}
	if maxWidth > 72 {
		maxWidth = 72
	}

	parts := []string{
		a.theme.AlertTitle.Render(styles.MarkerError + " " + a.title),
		"",
		a.theme.AlertMessage.Width(maxWidth - 4).Render(a.message),
		"",
		a.theme.AlertHint.Render(a.hint),
	}
	box := a.theme.AlertBox.Render(strings.Join(parts, "\n"))

	if a.width == 0 || a.height == 0 {
		return box
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}
