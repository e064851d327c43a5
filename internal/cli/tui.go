// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SoftwareApkDev/gemini-chat-app/internal/ui/chat"
	"github.com/SoftwareApkDev/gemini-chat-app/internal/ui/components"
	"github.com/SoftwareApkDev/gemini-chat-app/internal/ui/styles"
)

var errNoTerminal = errors.New("the chat interface needs an interactive terminal; use 'gemini-chat chat' for line mode")

// runTUI starts the full-screen chat interface.
func (a *app) runTUI(ctx context.Context) error {
	if !a.interactive() {
		return &ExitError{Code: ExitUsageError, Err: errNoTerminal}
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	theme := styles.NewTheme()

	if !cfg.HasCredential() {
		logger.Warn("no API key configured, showing alert")
		if err := a.runProgram(components.NewAPIKeyAlert(theme), tea.WithAltScreen()); err != nil {
			return fmt.Errorf("failed to show alert: %w", err)
		}
		return &ExitError{Code: ExitGeneralError}
	}

	logger.Info("starting chat interface", "model", cfg.Gemini.Model, "markdown", cfg.UI.Markdown)

	m := chat.New(ctx, a.newManager(cfg, logger), theme, chat.Options{
		Model:          cfg.Gemini.Model,
		Markdown:       cfg.UI.Markdown,
		SeparatorWidth: cfg.UI.SeparatorWidth,
		Logger:         logger,
	})

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	opts = append(opts, tea.WithContext(ctx))

	if err := a.runProgram(m, opts...); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("chat interface failed: %w", err)
	}
	logger.Info("chat interface closed")
	return nil
}
