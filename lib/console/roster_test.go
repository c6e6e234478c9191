// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"context"
	"errors"
	"testing"

	"github.com/bureau-foundation/triage-console/lib/notice"
	"github.com/bureau-foundation/triage-console/lib/schema/triage"
)

func TestRosterFilterChangeIssuesOneFetch(t *testing.T) {
	roster := NewRoster(&fakeGateway{}, &recordingNotifier{}, discardLogger())

	request := roster.SetStatus(triage.StatusNeedsHumanReview)
	if request == nil {
		t.Fatal("SetStatus with a new value returned no request")
	}
	if !roster.Loading() {
		t.Error("not loading after a filter change")
	}
	if again := roster.SetStatus(triage.StatusNeedsHumanReview); again != nil {
		t.Error("SetStatus with the current value issued a fetch")
	}
	if request.filter != (triage.RosterFilter{Status: triage.StatusNeedsHumanReview}) {
		t.Errorf("request filter = %+v", request.filter)
	}

	if roster.SetUrgency(triage.UrgencyHigh) == nil {
		t.Error("SetUrgency with a new value returned no request")
	}
	if roster.SetUrgency(triage.UrgencyHigh) != nil {
		t.Error("SetUrgency with the current value issued a fetch")
	}
	if roster.SetFilter(roster.Filter()) != nil {
		t.Error("SetFilter with the current filter issued a fetch")
	}
}

func TestRosterLastRequestWins(t *testing.T) {
	gateway := &fakeGateway{}
	roster := NewRoster(gateway, &recordingNotifier{}, discardLogger())

	first := roster.SetStatus(triage.StatusAutoResolved)
	second := roster.SetStatus(triage.StatusNeedsHumanReview)

	gateway.listEntries = []triage.RosterEntry{{ID: 2, Status: triage.StatusNeedsHumanReview}}
	secondResult := second.Run(context.Background())
	gateway.listEntries = []triage.RosterEntry{{ID: 1, Status: triage.StatusAutoResolved}}
	firstResult := first.Run(context.Background())

	if !roster.Apply(secondResult) {
		t.Fatal("current result discarded")
	}
	if roster.Loading() {
		t.Error("still loading after the current result arrived")
	}
	if roster.Apply(firstResult) {
		t.Error("stale result applied")
	}

	entries := roster.Entries()
	if len(entries) != 1 || entries[0].ID != 2 {
		t.Errorf("entries = %+v, want the newer fetch's entry 2", entries)
	}
}

func TestRosterLoadingOnlyForCurrentRequest(t *testing.T) {
	roster := NewRoster(&fakeGateway{}, &recordingNotifier{}, discardLogger())

	first := roster.Refresh()
	second := roster.SetUrgency(triage.UrgencyLow)

	roster.Apply(first.Run(context.Background()))
	if !roster.Loading() {
		t.Error("a stale result cleared the loading flag of the current request")
	}
	roster.Apply(second.Run(context.Background()))
	if roster.Loading() {
		t.Error("loading after the current result")
	}
}

func TestRosterEmptyResultIsNotAnError(t *testing.T) {
	notifier := &recordingNotifier{}
	roster := NewRoster(&fakeGateway{}, notifier, discardLogger())

	if err := roster.RefreshAndWait(context.Background()); err != nil {
		t.Fatalf("RefreshAndWait: %v", err)
	}
	if !roster.Loaded() || roster.Entries() == nil || len(roster.Entries()) != 0 {
		t.Errorf("Loaded = %v, entries = %#v; want loaded and empty", roster.Loaded(), roster.Entries())
	}
	if len(notifier.all()) != 0 {
		t.Errorf("notices = %v, want none", notifier.all())
	}
}

func TestRosterFailureKeepsEntries(t *testing.T) {
	gateway := &fakeGateway{listEntries: []triage.RosterEntry{{ID: 5}, {ID: 4}}}
	notifier := &recordingNotifier{}
	roster := NewRoster(gateway, notifier, discardLogger())

	if err := roster.RefreshAndWait(context.Background()); err != nil {
		t.Fatalf("RefreshAndWait: %v", err)
	}

	gateway.listErr = errors.New("connection refused")
	if err := roster.RefreshAndWait(context.Background()); err == nil {
		t.Fatal("expected the request failure")
	}
	if roster.Loading() {
		t.Error("still loading after failure")
	}
	if len(roster.Entries()) != 2 {
		t.Errorf("entries = %+v, want the previous two", roster.Entries())
	}

	notices := notifier.all()
	if len(notices) != 1 {
		t.Fatalf("notices = %v, want one", notices)
	}
	if notices[0].Title != "Unable to load tickets" || notices[0].Severity != notice.SeverityDestructive {
		t.Errorf("notice = %+v", notices[0])
	}
	if notices[0].Description != "Failed to load tickets." {
		t.Errorf("Description = %q, want the fallback for a non-request error", notices[0].Description)
	}
}

func TestRosterPassesFilterToGateway(t *testing.T) {
	gateway := &fakeGateway{}
	roster := NewRoster(gateway, &recordingNotifier{}, discardLogger())

	roster.Apply(roster.SetStatus(triage.StatusNeedsHumanReview).Run(context.Background()))
	roster.Apply(roster.SetUrgency(triage.UrgencyMedium).Run(context.Background()))
	roster.Apply(roster.SetStatus("").Run(context.Background()))

	want := []triage.RosterFilter{
		{Status: triage.StatusNeedsHumanReview},
		{Status: triage.StatusNeedsHumanReview, Urgency: triage.UrgencyMedium},
		{Urgency: triage.UrgencyMedium},
	}
	if len(gateway.listCalls) != len(want) {
		t.Fatalf("calls = %+v, want %+v", gateway.listCalls, want)
	}
	for index := range want {
		if gateway.listCalls[index] != want[index] {
			t.Errorf("call %d filter = %+v, want %+v", index, gateway.listCalls[index], want[index])
		}
	}
}
