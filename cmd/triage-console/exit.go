// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "fmt"

// exitError signals a non-zero exit code without printing an extra
// error message. The command has already written its own output.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// ExitCode returns the exit code. main checks for this interface to
// tell a handled non-zero exit from an unexpected error.
func (e *exitError) ExitCode() int {
	return e.code
}

// commandUsageError reports bad flags or arguments. Tests match it
// with errors.As to tell usage mistakes from backend failures.
type commandUsageError struct {
	err error
}

func usageError(format string, args ...any) error {
	return &commandUsageError{err: fmt.Errorf(format, args...)}
}

func (e *commandUsageError) Error() string { return e.err.Error() }
func (e *commandUsageError) Unwrap() error { return e.err }
