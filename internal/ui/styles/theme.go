// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/SoftwareApkDev/gemini-chat-app/internal/model"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderModel lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT STYLES
	// ==========================================================================

	LabelUser        lipgloss.Style
	LabelAssistant   lipgloss.Style
	LabelSystem      lipgloss.Style
	LabelSystemError lipgloss.Style
	MessageText      lipgloss.Style
	Separator        lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style
	Button           lipgloss.Style
	ButtonDisabled   lipgloss.Style
	Spinner          lipgloss.Style
	ThinkingText     lipgloss.Style

	// ==========================================================================
	// ALERT STYLES
	// ==========================================================================

	AlertBox     lipgloss.Style
	AlertTitle   lipgloss.Style
	AlertMessage lipgloss.Style
	AlertHint    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	return newTheme(colorProfile, termenv.HasDarkBackground())
}

func newTheme(profile termenv.Profile, isDark bool) *Theme {
	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue)

	t.HeaderModel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Transcript labels are always bold.
	t.LabelUser = lipgloss.NewStyle().Bold(true).Foreground(Teal)
	t.LabelAssistant = lipgloss.NewStyle().Bold(true).Foreground(Violet)
	t.LabelSystem = lipgloss.NewStyle().Bold(true).Foreground(Amber)
	t.LabelSystemError = lipgloss.NewStyle().Bold(true).Foreground(Rose)

	t.MessageText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Separator = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Blue).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Button = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Blue).
		Padding(0, 2)

	t.ButtonDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(OverlayDim).
		Padding(0, 2)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Amber)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Alerts
	t.AlertBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(1, 2)

	t.AlertTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	t.AlertMessage = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.AlertHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
}

// Label returns the style for a sender's label.
func (t *Theme) Label(s model.Sender) lipgloss.Style {
	switch s {
	case model.SenderUser:
		return t.LabelUser
	case model.SenderAssistant:
		return t.LabelAssistant
	case model.SenderSystemError:
		return t.LabelSystemError
	default:
		return t.LabelSystem
	}
}

// SeparatorLine renders a muted line of width dashes.
func (t *Theme) SeparatorLine(width int) string {
	if width <= 0 {
		return ""
	}
	return t.Separator.Render(strings.Repeat("-", width))
}

// SendButton renders the submit control.
func (t *Theme) SendButton(enabled bool) string {
	if enabled {
		return t.Button.Render("Send")
	}
	return t.ButtonDisabled.Render("Send")
}

// Truncate shortens s to fit width display cells, adding an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
