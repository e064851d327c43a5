// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/SoftwareApkDev/gemini-chat-app/internal/model"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	theme := NewTheme()

	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}
	if got := theme.HeaderTitle.Render("Gemini Chat App"); got != "Gemini Chat App" {
		t.Errorf("HeaderTitle.Render() = %q", got)
	}
}

func TestNewThemeProfile(t *testing.T) {
	theme := newTheme(termenv.TrueColor, true)

	if !theme.HasTrueColor || !theme.IsDark {
		t.Errorf("capabilities not recorded: %+v", theme)
	}
	if newTheme(termenv.ANSI256, false).HasTrueColor {
		t.Error("ANSI256 is not true color")
	}
}

// =============================================================================
// LABEL TESTS
// =============================================================================

func TestLabelStylesAreBold(t *testing.T) {
	theme := NewTheme()

	for _, s := range []model.Sender{model.SenderUser, model.SenderAssistant, model.SenderSystem, model.SenderSystemError} {
		if !theme.Label(s).GetBold() {
			t.Errorf("label for %s should be bold", s)
		}
	}
}

func TestLabelPerSender(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		sender model.Sender
		want   lipgloss.TerminalColor
	}{
		{model.SenderUser, Teal},
		{model.SenderAssistant, Violet},
		{model.SenderSystem, Amber},
		{model.SenderSystemError, Rose},
		{model.Sender(42), Amber},
	}
	for _, tt := range tests {
		if got := theme.Label(tt.sender).GetForeground(); got != tt.want {
			t.Errorf("Label(%v) foreground = %v, want %v", tt.sender, got, tt.want)
		}
	}
}

// =============================================================================
// RENDER HELPER TESTS
// =============================================================================

func TestSeparatorLine(t *testing.T) {
	theme := NewTheme()

	if got := theme.SeparatorLine(40); got != strings.Repeat("-", 40) {
		t.Errorf("SeparatorLine(40) = %q", got)
	}
	if got := theme.SeparatorLine(0); got != "" {
		t.Errorf("SeparatorLine(0) = %q", got)
	}
}

func TestSendButton(t *testing.T) {
	theme := NewTheme()

	if got := strings.TrimSpace(theme.SendButton(true)); got != "Send" {
		t.Errorf("enabled button = %q", got)
	}
	if got := strings.TrimSpace(theme.SendButton(false)); got != "Send" {
		t.Errorf("disabled button = %q", got)
	}
	if !theme.Button.GetBold() || theme.ButtonDisabled.GetBold() {
		t.Error("only the enabled button is bold")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"gemini-2.5-flash", 40, "gemini-2.5-flash"},
		{"gemini-2.5-flash", 9, "gemini..."},
		{"anything", 0, ""},
		{"日本語テキスト", 7, "日本..."},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestRenderMarkers(t *testing.T) {
	if got := RenderError("boom"); got != "[X] boom" {
		t.Errorf("RenderError() = %q", got)
	}
	if got := RenderInfo("note"); got != "[i] note" {
		t.Errorf("RenderInfo() = %q", got)
	}
}
