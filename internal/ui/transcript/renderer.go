// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcript renders the chat transcript into a scrollable,
// read-only viewport.
package transcript

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/SoftwareApkDev/gemini-chat-app/internal/model"
	"github.com/SoftwareApkDev/gemini-chat-app/internal/ui/styles"
)

// DefaultSeparatorWidth is the number of dashes drawn after each entry.
const DefaultSeparatorWidth = 40

const wheelLines = 3

// Options controls rendering.
type Options struct {
	// Markdown renders assistant replies through glamour.
	Markdown bool
	// SeparatorWidth is the separator length; zero means the default.
	SeparatorWidth int
}

// Renderer owns a Transcript and its rendered view.
type Renderer struct {
	theme      *styles.Theme
	opts       Options
	transcript *model.Transcript
	viewport   viewport.Model

	// rendered caches one block per message, invalidated on width change.
	rendered []string
	width    int
	height   int

	md      *glamour.TermRenderer
	mdWidth int
}

// New creates a renderer with an empty transcript.
func New(theme *styles.Theme, opts Options) *Renderer {
	if theme == nil {
		theme = styles.NewTheme()
	}
	if opts.SeparatorWidth <= 0 {
		opts.SeparatorWidth = DefaultSeparatorWidth
	}
	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()
	// The transcript is scrolled through Update only.
	vp.KeyMap = viewport.KeyMap{}

	return &Renderer{
		theme:      theme,
		opts:       opts,
		transcript: model.NewTranscript(),
		viewport:   vp,
		width:      80,
		height:     20,
	}
}

// Append adds one entry, re-renders, and scrolls to the newest entry.
func (r *Renderer) Append(sender model.Sender, text string) model.Message {
	msg := r.transcript.Append(sender, text)
	r.rendered = append(r.rendered, r.renderMessage(msg))
	r.refresh()
	r.viewport.GotoBottom()
	return msg
}

// Transcript returns the underlying transcript.
func (r *Renderer) Transcript() *model.Transcript {
	return r.transcript
}

// SetSize updates the viewport dimensions, re-rendering on width change.
func (r *Renderer) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	atBottom := r.viewport.AtBottom()
	r.height = height
	r.viewport.Width = width
	r.viewport.Height = height

	if width != r.width {
		r.width = width
		r.rerenderAll()
	} else {
		r.refresh()
	}
	if atBottom {
		r.viewport.GotoBottom()
	}
}

// Width returns the current width.
func (r *Renderer) Width() int { return r.width }

// Height returns the current height.
func (r *Renderer) Height() int { return r.height }

// Update handles scrolling. The transcript content is never edited here.
func (r *Renderer) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Type {
		case tea.MouseWheelUp:
			r.ScrollUp(wheelLines)
		case tea.MouseWheelDown:
			r.ScrollDown(wheelLines)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "pgup":
			r.PageUp()
		case "pgdown":
			r.PageDown()
		case "ctrl+home":
			r.viewport.GotoTop()
		case "ctrl+end":
			r.viewport.GotoBottom()
		}
	}
	return nil
}

// ScrollUp scrolls up by n lines.
func (r *Renderer) ScrollUp(n int) { r.viewport.LineUp(n) }

// ScrollDown scrolls down by n lines.
func (r *Renderer) ScrollDown(n int) { r.viewport.LineDown(n) }

// PageUp scrolls up half a page.
func (r *Renderer) PageUp() { r.viewport.HalfViewUp() }

// PageDown scrolls down half a page.
func (r *Renderer) PageDown() { r.viewport.HalfViewDown() }

// AtBottom reports whether the newest entry is visible.
func (r *Renderer) AtBottom() bool { return r.viewport.AtBottom() }

// View renders the visible part of the transcript.
func (r *Renderer) View() string {
	return r.viewport.View()
}

// Content returns the full rendered transcript.
func (r *Renderer) Content() string {
	return strings.Join(r.rendered, "\n")
}

func (r *Renderer) refresh() {
	r.viewport.SetContent(r.Content())
}

func (r *Renderer) rerenderAll() {
	msgs := r.transcript.Messages()
	r.rendered = r.rendered[:0]
	for _, m := range msgs {
		r.rendered = append(r.rendered, r.renderMessage(m))
	}
	r.refresh()
}

// renderMessage renders "Label: text", a newline, and the separator.
func (r *Renderer) renderMessage(m model.Message) string {
	label := r.theme.Label(m.Sender).Render(m.Sender.Label() + ":")
	sep := r.theme.SeparatorLine(r.opts.SeparatorWidth)

	if m.Sender == model.SenderAssistant && r.opts.Markdown {
		if body, ok := r.renderMarkdown(m.Text); ok {
			return label + "\n" + body + "\n" + sep
		}
	}

	line := label + " " + r.theme.MessageText.Render(m.Text)
	return lipgloss.NewStyle().Width(r.width).Render(line) + "\n" + sep
}

// renderMarkdown falls back to plain text on any glamour failure.
func (r *Renderer) renderMarkdown(text string) (string, bool) {
	if r.md == nil || r.mdWidth != r.width {
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.glamourStyle()),
			glamour.WithWordWrap(r.width),
		)
		if err != nil {
			return "", false
		}
		r.md, r.mdWidth = md, r.width
	}
	out, err := r.md.Render(text)
	if err != nil {
		return "", false
	}
	out = strings.Trim(out, "\n")
	if strings.TrimSpace(out) == "" {
		return "", false
	}
	return out, true
}

func (r *Renderer) glamourStyle() string {
	switch {
	case r.theme.ColorProfile == termenv.Ascii:
		return "notty"
	case r.theme.IsDark:
		return "dark"
	default:
		return "light"
	}
}
