// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/triage-console/lib/config"
	"github.com/bureau-foundation/triage-console/lib/notice"
	"github.com/bureau-foundation/triage-console/lib/triageclient"
)

// commandSession holds what every non-interactive command needs: a
// logger, a backend client, and a notifier that prints to stderr.
type commandSession struct {
	logger  *slog.Logger
	client  *triageclient.Client
	notices *printNotifier
	closers []func()
}

func newCommandSession(cfg *config.Config, options globalOptions, stderr io.Writer) (*commandSession, error) {
	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		return nil, err
	}

	session := &commandSession{notices: &printNotifier{output: stderr}}
	handler := newOutputHandler(stderr, level)
	if options.logOutput != "" {
		fileHandler, closeFile, err := openFileLogHandler(options.logOutput)
		if err != nil {
			return nil, usageError("cannot open log file %s: %w", options.logOutput, err)
		}
		session.closers = append(session.closers, closeFile)
		handler = fanoutHandler{handler, fileHandler}
	}
	session.logger = slog.New(handler)
	session.client = triageclient.New(cfg.API.BaseURL, session.logger, triageclient.WithTimeout(cfg.API.Timeout))
	return session, nil
}

func (session *commandSession) close() {
	for _, closer := range session.closers {
		closer()
	}
}

// printNotifier writes each notice to output as one line. There is
// nothing to expire outside the TUI, so notices are never stored.
type printNotifier struct {
	mutex  sync.Mutex
	output io.Writer
	nextID notice.ID
}

func (notifier *printNotifier) Push(pushed notice.Notice) notice.ID {
	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()
	notifier.nextID++
	line := pushed.Title
	if pushed.Description != "" {
		line += ": " + pushed.Description
	}
	fmt.Fprintln(notifier.output, line)
	return notifier.nextID
}
