// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

func TestAPIKeyAlert(t *testing.T) {
	a := NewAPIKeyAlert(nil)

	if a.Title() != "API Key Error" {
		t.Errorf("Title() = %q", a.Title())
	}
	if a.Message() != "GEMINI_API_KEY environment variable is not set. Please set it before running the app." {
		t.Errorf("Message() = %q", a.Message())
	}

	view := a.View()
	if !strings.Contains(view, "API Key Error") {
		t.Errorf("view missing title: %q", view)
	}
	// The message wraps inside the box, so compare word by word.
	for _, word := range strings.Fields("GEMINI_API_KEY environment variable is not set.") {
		if !strings.Contains(view, word) {
			t.Errorf("view missing %q", word)
		}
	}
}

func TestAlert_AnyKeyQuits(t *testing.T) {
	keys := []tea.KeyMsg{
		{Type: tea.KeyEnter},
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune("x")},
		{Type: tea.KeyCtrlC},
	}
	for _, key := range keys {
		a := NewAPIKeyAlert(nil)
		model, cmd := a.Update(key)

		if !model.(Alert).Dismissed() {
			t.Errorf("%s did not dismiss the alert", key)
		}
		if cmd == nil {
			t.Fatalf("%s returned no command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s did not quit", key)
		}
		if model.View() != "" {
			t.Errorf("dismissed alert should render nothing")
		}
	}
}

func TestAlert_WindowSizeCenters(t *testing.T) {
	a := NewAPIKeyAlert(nil)
	model, cmd := a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	if cmd != nil {
		t.Error("resize should not produce a command")
	}
	view := model.View()
	if lipgloss.Height(view) != 30 || lipgloss.Width(view) != 100 {
		t.Errorf("placed view is %dx%d", lipgloss.Width(view), lipgloss.Height(view))
	}
	if model.(Alert).Dismissed() {
		t.Error("resize must not dismiss")
	}
	for _, line := range strings.Split(view, "\n") {
		if runewidth.StringWidth(line) > 100 {
			t.Errorf("line too wide: %q", line)
		}
	}
}
