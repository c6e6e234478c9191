// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package notice holds transient user-facing notices that expire on
// their own. A [Center] assigns each pushed notice a process-unique
// id, keeps the active set ordered oldest first, and schedules exactly
// one removal timer per notice. Removal happens exactly once: either
// the timer fires or [Center.Dismiss] cancels the timer and removes
// the notice itself. [Center.Close] cancels every outstanding timer so
// nothing fires against a torn-down center.
//
// Notices are best-effort UI affordances. Nothing is persisted and no
// operation returns an error.
package notice
