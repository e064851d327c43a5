// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/SoftwareApkDev/gemini-chat-app/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT - Title bar with app name, model and session status
// =============================================================================

// DefaultTitle is the application title.
const DefaultTitle = "Gemini Chat App"

// Header represents the title bar component
type Header struct {
	Title     string // Main title (default: "Gemini Chat App")
	ModelName string // Current model name
	Status    string // Session status, e.g. "ready" or "disabled"
	Width     int    // Available width
	theme     *styles.Theme
}

// NewHeader creates a new Header component with default values
func NewHeader(theme *styles.Theme) *Header {
	if theme == nil {
		theme = styles.NewTheme()
	}
	return &Header{
		Title: DefaultTitle,
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetModel updates the current model name
func (h *Header) SetModel(model string) {
	h.ModelName = model
}

// SetStatus updates the session status
func (h *Header) SetStatus(status string) {
	h.Status = status
}

// View renders "Title | model" on the left and the status on the right.
// The model name is truncated first when space runs out.
func (h *Header) View() string {
	width := h.Width
	if width <= 0 {
		width = 80
	}
	inner := width - h.theme.Header.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	title := h.Title
	right := ""
	if h.Status != "" {
		right = "[" + h.Status + "]"
	}

	left := title
	if h.ModelName != "" {
		// Room left for the model after title, divider and status.
		room := inner - runewidth.StringWidth(title) - 3 - runewidth.StringWidth(right) - 1
		if room >= 4 {
			left = title + " | " + styles.Truncate(h.ModelName, room)
		}
	}
	left = styles.Truncate(left, inner)

	gap := inner - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		right = ""
		gap = inner - runewidth.StringWidth(left)
	}

	titlePart := h.theme.HeaderTitle.Render(left[:min(len(left), len(title))])
	rest := left[min(len(left), len(title)):]
	line := titlePart + h.theme.HeaderModel.Render(rest) +
		strings.Repeat(" ", max(gap, 0)) + h.theme.HeaderModel.Render(right)

	return h.theme.Header.Width(width).Render(line)
}

// Height returns the rendered header height.
func (h *Header) Height() int {
	return lipgloss.Height(h.View())
}
