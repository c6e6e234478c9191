// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock is the time source for everything in the console that
// schedules work: notice expiry, request timeouts, spinner ticks.
//
// Components take a [Clock] instead of calling time.Now or
// time.AfterFunc. Production wiring passes [Real]; tests pass [Fake]
// and move time forward explicitly:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	center := notice.NewCenter(fake, notice.DefaultDelay, logger)
//	center.Push(notice.Notice{Title: "Ticket submitted"})
//	fake.Advance(notice.DefaultDelay) // the notice expires here
//
// AfterFunc callbacks on a FakeClock run synchronously inside Advance,
// so a test observes their effects as soon as Advance returns.
package clock
