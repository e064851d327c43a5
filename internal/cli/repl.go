// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/SoftwareApkDev/gemini-chat-app/internal/conversation"
	"github.com/SoftwareApkDev/gemini-chat-app/internal/model"
	"github.com/SoftwareApkDev/gemini-chat-app/internal/ui/components"
	"github.com/SoftwareApkDev/gemini-chat-app/internal/ui/styles"
)

const (
	replPrompt = "> "
	replBanner = "Type a message and press Enter. 'exit' or Ctrl+D quits."
)

// =============================================================================
// LINE INPUT
// =============================================================================

// lineReader reads one line of input. *liner.State satisfies it.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// newLinerReader returns a liner-backed reader. History lives in memory
// only and is gone when the process exits.
func newLinerReader() lineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return line
}

// =============================================================================
// TRANSCRIPT OUTPUT
// =============================================================================

// lineSink prints each transcript entry as it is appended, in the same
// "Label: text" plus separator layout the full-screen transcript uses.
type lineSink struct {
	w          io.Writer
	transcript *model.Transcript
	separator  string
	theme      *styles.Theme
}

func newLineSink(w io.Writer, separatorWidth int, theme *styles.Theme) *lineSink {
	return &lineSink{
		w:          w,
		transcript: model.NewTranscript(),
		separator:  strings.Repeat("-", max(separatorWidth, 0)),
		theme:      theme,
	}
}

// Append records and prints one entry.
func (s *lineSink) Append(sender model.Sender, text string) model.Message {
	msg := s.transcript.Append(sender, text)

	if s.theme != nil {
		label := s.theme.Label(sender).Render(sender.Label() + ":")
		fmt.Fprintf(s.w, "%s %s\n", label, text)
	} else {
		fmt.Fprintln(s.w, msg.String())
	}
	if s.separator != "" {
		fmt.Fprintln(s.w, s.separator)
	}
	return msg
}

// =============================================================================
// REPL
// =============================================================================

// runChat runs the line-mode chat loop until EOF, an aborted prompt, or an
// exit command.
func (a *app) runChat(ctx context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if !cfg.HasCredential() {
		logger.Warn("no API key configured")
		fmt.Fprintf(a.stderr, "%s: %s\n", components.APIKeyAlertTitle, components.APIKeyAlertMessage)
		return &ExitError{Code: ExitGeneralError}
	}

	var theme *styles.Theme
	if a.colors() {
		theme = styles.NewTheme()
	}
	sink := newLineSink(a.stdout, cfg.UI.SeparatorWidth, theme)

	mgr := a.newManager(cfg, logger)
	ctrl := conversation.NewController(mgr, sink)
	ctrl.ReportInit(mgr.Initialize(ctx))
	if ctrl.Disabled() {
		return &ExitError{Code: ExitGeneralError}
	}

	rl := a.newReader()
	defer rl.Close()

	fmt.Fprintln(a.stdout, replBanner)
	for ctx.Err() == nil {
		line, err := rl.Prompt(replPrompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(a.stdout)
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		if isExitCommand(text) {
			break
		}
		rl.AppendHistory(text)
		ctrl.Submit(ctx, line)
	}

	stats := mgr.Stats()
	logger.Info("line-mode chat closed",
		"entries", sink.transcript.Len(),
		"sent", stats.Sent,
		"failed", stats.Failed,
		"duration", mgr.Duration())
	return nil
}

func isExitCommand(text string) bool {
	switch strings.ToLower(text) {
	case "exit", "quit", "/exit", "/quit", "/q":
		return true
	}
	return false
}
