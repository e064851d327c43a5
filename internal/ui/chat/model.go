// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SoftwareApkDev/gemini-chat-app/internal/conversation"
	"github.com/SoftwareApkDev/gemini-chat-app/internal/session"
	"github.com/SoftwareApkDev/gemini-chat-app/internal/ui/components"
	"github.com/SoftwareApkDev/gemini-chat-app/internal/ui/styles"
	"github.com/SoftwareApkDev/gemini-chat-app/internal/ui/transcript"
)

// Session is the part of *session.Manager the chat view drives.
type Session interface {
	Initialize(ctx context.Context) error
	Send(ctx context.Context, text string) (string, error)
	State() session.State
}

// Options configures the chat view.
type Options struct {
	// Model is shown in the header.
	Model string
	// Markdown renders Gemini replies through glamour.
	Markdown bool
	// SeparatorWidth is the transcript separator length.
	SeparatorWidth int
	// Logger receives UI events. Nil discards.
	Logger *slog.Logger
}

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	ctx    context.Context
	sess   Session
	logger *slog.Logger

	controller *conversation.Controller
	transcript *transcript.Renderer
	header     *components.Header

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    KeyMap
	theme   *styles.Theme

	// starting is true until SessionStartedMsg arrives.
	starting bool
	quitting bool

	width  int
	height int
}

// New creates a new chat model. ctx bounds every call made to sess.
func New(ctx context.Context, sess Session, theme *styles.Theme, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if theme == nil {
		theme = styles.NewTheme()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	renderer := transcript.New(theme, transcript.Options{
		Markdown:       opts.Markdown,
		SeparatorWidth: opts.SeparatorWidth,
	})

	var sender conversation.Sender
	if sess != nil {
		sender = sess
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 8192
	ti.PromptStyle = theme.InputPrompt
	ti.TextStyle = theme.InputText
	ti.PlaceholderStyle = theme.InputPlaceholder

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(theme.Spinner),
	)

	header := components.NewHeader(theme)
	header.SetModel(opts.Model)
	header.SetStatus("starting")

	m := Model{
		ctx:        ctx,
		sess:       sess,
		logger:     logger.With("component", "chat"),
		controller: conversation.NewController(sender, renderer),
		transcript: renderer,
		header:     header,
		input:      ti,
		spinner:    sp,
		help:       help.New(),
		keys:       DefaultKeyMap(),
		theme:      theme,
		starting:   true,
		width:      80,
		height:     24,
	}
	m.layout()
	return m
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Transcript returns the transcript renderer.
func (m Model) Transcript() *transcript.Renderer { return m.transcript }

// Controller returns the input controller.
func (m Model) Controller() *conversation.Controller { return m.controller }

// Input returns the current input text.
func (m Model) Input() string { return m.input.Value() }

// InputFocused reports whether keystrokes reach the input.
func (m Model) InputFocused() bool { return m.input.Focused() }

// CanSubmit reports whether the Send control is enabled.
func (m Model) CanSubmit() bool {
	return !m.starting && m.controller.CanSubmit()
}

// Starting reports whether session initialization is still running.
func (m Model) Starting() bool { return m.starting }

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool { return m.quitting }

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) startSession() tea.Msg {
	if m.sess == nil {
		return SessionStartedMsg{Err: &session.InitError{Cause: session.ErrNotReady}}
	}
	return SessionStartedMsg{Err: m.sess.Initialize(m.ctx)}
}

// sendCmd runs the send off the UI goroutine.
func (m Model) sendCmd(text string) tea.Cmd {
	send := m.controller.SendFunc(text)
	ctx := m.ctx
	return func() tea.Msg {
		reply, err := send(ctx)
		return ReplyMsg{Text: text, Reply: reply, Err: err}
	}
}
