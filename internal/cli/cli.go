// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/SoftwareApkDev/gemini-chat-app/internal/config"
	"github.com/SoftwareApkDev/gemini-chat-app/internal/gemini"
	"github.com/SoftwareApkDev/gemini-chat-app/internal/logging"
	"github.com/SoftwareApkDev/gemini-chat-app/internal/session"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const debugLogName = "debug.log"

// flags holds the persistent command-line flags.
type flags struct {
	configPath string
	model      string
	noMarkdown bool
	debug      bool
}

// app carries the process wiring so commands can be driven from tests.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	flags flags

	loadEnv     func() error
	interactive func() bool
	colors      func() bool
	newEndpoint func(logger *slog.Logger) session.Endpoint
	newReader   func() lineReader
	runProgram  func(m tea.Model, opts ...tea.ProgramOption) error
}

func newApp() *app {
	return &app{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		loadEnv:     loadDotEnv,
		interactive: IsInteractive,
		colors:      ColorsEnabled,
		newEndpoint: func(logger *slog.Logger) session.Endpoint {
			return gemini.NewEndpoint(gemini.WithLogger(logger))
		},
		newReader: newLinerReader,
		runProgram: func(m tea.Model, opts ...tea.ProgramOption) error {
			_, err := tea.NewProgram(m, opts...).Run()
			return err
		},
	}
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newApp().run(ctx, os.Args[1:])
}

func (a *app) run(ctx context.Context, args []string) int {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) || !exitErr.silent() {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
		}
	}
	return ExitCode(err)
}

// =============================================================================
// COMMANDS
// =============================================================================

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "gemini-chat",
		Short:         "Chat with Google Gemini from the terminal",
		Long:          "gemini-chat opens a full-screen chat with a Gemini model.\nThe API key is read from GEMINI_API_KEY or a .env file in the working directory.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "path to a TOML config file (default ~/.gemini-chat/config.toml)")
	pf.StringVarP(&a.flags.model, "model", "m", "", "Gemini model to use")
	pf.BoolVar(&a.flags.noMarkdown, "no-markdown", false, "show replies as plain text")
	pf.BoolVar(&a.flags.debug, "debug", false, "write debug logs to ~/.gemini-chat/debug.log")

	root.AddCommand(a.chatCommand(), a.versionCommand())
	return root
}

func (a *app) chatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat in line mode without the full-screen interface",
		Example: `  gemini-chat chat
  gemini-chat chat --model gemini-2.0-flash`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runChat(cmd.Context())
		},
	}
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gemini-chat %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		},
	}
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadDotEnv loads .env from the working directory. Variables already set
// in the environment win.
func loadDotEnv() error {
	return godotenv.Load()
}

// loadConfig builds the run configuration: .env, then the config file and
// environment, then command-line flags.
func (a *app) loadConfig() (*config.Config, error) {
	if a.loadEnv != nil {
		// A missing .env file is not an error.
		if err := a.loadEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, configError(fmt.Errorf("failed to load .env: %w", err))
		}
	}

	var (
		cfg *config.Config
		err error
	)
	if a.flags.configPath != "" {
		cfg, err = config.LoadFromPath(a.flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, configError(err)
	}

	if a.flags.model != "" {
		cfg.Gemini.Model = a.flags.model
	}
	if a.flags.noMarkdown {
		cfg.UI.Markdown = false
	}
	if a.flags.debug {
		cfg.Log.Level = "debug"
		if cfg.Log.File == "" {
			if dir, dirErr := config.Dir(); dirErr == nil {
				cfg.Log.File = filepath.Join(dir, debugLogName)
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, configError(fmt.Errorf("invalid flags: %w", err))
	}
	return cfg, nil
}

// openLogger creates the run logger. The returned close func is never nil.
func openLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	logger, closeFn, err := logging.New(logging.Options{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
		JSON:  cfg.Log.JSON,
	})
	if err != nil {
		return nil, func() error { return nil }, configError(err)
	}
	logger.Debug("configuration loaded", "config", cfg.Redacted())
	return logger, closeFn, nil
}

func (a *app) newManager(cfg *config.Config, logger *slog.Logger) *session.Manager {
	return session.NewManager(session.Config{
		Credential:     cfg.Gemini.APIKey,
		Model:          cfg.Gemini.Model,
		SystemPrompt:   cfg.Gemini.SystemPrompt,
		RequestTimeout: cfg.Gemini.RequestTimeout(),
	}, a.newEndpoint(logger), logger)
}
