// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/triage-console/lib/clock"
	"github.com/bureau-foundation/triage-console/lib/config"
	"github.com/bureau-foundation/triage-console/lib/consoleui"
	"github.com/bureau-foundation/triage-console/lib/notice"
	"github.com/bureau-foundation/triage-console/lib/triageclient"
)

// runInteractive opens the full-screen console.
//
// Logging is routed through a TUILogHandler that displays warnings and
// errors in the status bar instead of writing to stderr (which would
// corrupt the alt-screen display). An optional file logger captures
// all records for post-mortem debugging.
func runInteractive(ctx context.Context, cfg *config.Config, options globalOptions) error {
	if !isTerminal(os.Stdout) {
		return usageError("the interactive console needs a terminal; use the submit, tickets, or logs command instead")
	}

	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		return err
	}
	tuiHandler := consoleui.NewTUILogHandler(max(level, slog.LevelWarn))

	var handler slog.Handler = tuiHandler
	if options.logOutput != "" {
		fileHandler, closeFile, err := openFileLogHandler(options.logOutput)
		if err != nil {
			return usageError("cannot open log file %s: %w", options.logOutput, err)
		}
		defer closeFile()
		handler = fanoutHandler{tuiHandler, fileHandler}
	}
	logger := slog.New(handler)

	center := notice.NewCenter(clock.Real(), cfg.Notices.Delay, logger)
	defer center.Close()

	client := triageclient.New(cfg.API.BaseURL, logger, triageclient.WithTimeout(cfg.API.Timeout))
	model := consoleui.NewModel(ctx, consoleui.Options{
		Gateway: client,
		Notices: center,
		Logger:  logger,
		BaseURL: client.BaseURL(),
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(os.Stdout))
	center.OnChange(consoleui.NotifyProgram(program))
	tuiHandler.SetProgram(program)

	logger.Debug("console started", "base_url", client.BaseURL(), "environment", cfg.Environment)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
