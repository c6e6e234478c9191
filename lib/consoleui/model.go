// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/triage-console/lib/console"
	"github.com/bureau-foundation/triage-console/lib/notice"
	"github.com/bureau-foundation/triage-console/lib/schema/triage"
)

// Tab identifies the active view.
type Tab int

const (
	// TabSubmit shows the submission form and the latest result.
	TabSubmit Tab = iota
	// TabTickets shows the roster and the selected ticket's logs.
	TabTickets
)

// formWidth bounds the width of the submission form fields.
const formWidth = 60

// Options configures NewModel.
type Options struct {
	// Gateway is the backend. Required.
	Gateway console.Gateway

	// Notices receives every notice the controllers raise and is
	// rendered as the toast stack. Required.
	Notices *notice.Center

	// Logger is handed to the controllers. Required.
	Logger *slog.Logger

	// BaseURL is shown in the header.
	BaseURL string

	// InitialTab selects the tab shown first.
	InitialTab Tab
}

// Model is the top-level bubbletea model of the console.
type Model struct {
	ctx     context.Context
	theme   Theme
	keys    KeyMap
	baseURL string

	notices    *notice.Center
	submission *console.Submission
	roster     *console.Roster
	logs       *console.LogInspector

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int

	activeTab Tab
	form      submitForm
	spinner   spinner.Model

	// Cursors index the roster entries and the visible log entries.
	rosterCursor int
	logCursor    int

	// Status bar log record. statusSequence pairs a record with its
	// fade message.
	statusRecord   string
	statusLevel    slog.Level
	statusSequence uint64
}

// NewModel creates the console model. ctx bounds every backend call
// the model issues; cancel it when the program exits.
func NewModel(ctx context.Context, options Options) Model {
	loading := spinner.New(spinner.WithSpinner(spinner.MiniDot))

	model := Model{
		ctx:        ctx,
		theme:      DefaultTheme,
		keys:       DefaultKeyMap,
		baseURL:    options.BaseURL,
		notices:    options.Notices,
		submission: console.NewSubmission(options.Gateway, options.Notices, options.Logger),
		roster:     console.NewRoster(options.Gateway, options.Notices, options.Logger),
		logs:       console.NewLogInspector(options.Gateway, options.Notices, options.Logger),
		activeTab:  options.InitialTab,
		form:       newSubmitForm(),
		spinner:    loading,
	}
	model.form.setWidth(formWidth)
	return model
}

// Init implements tea.Model. Fetches the unfiltered roster and starts
// the spinner and cursor blink.
func (model Model) Init() tea.Cmd {
	return tea.Batch(
		runRoster(model.ctx, model.roster.Refresh()),
		model.spinner.Tick,
		textinput.Blink,
	)
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.form.setWidth(min(formWidth, max(20, message.Width-4)))

	case spinner.TickMsg:
		var cmd tea.Cmd
		model.spinner, cmd = model.spinner.Update(message)
		return model, cmd

	case submitResultMsg:
		model.submission.Apply(message.result)

	case rosterResultMsg:
		if model.roster.Apply(message.result) {
			model.rosterCursor = clampCursor(model.rosterCursor, len(model.roster.Entries()))
		}

	case logResultMsg:
		if model.logs.Apply(message.result) {
			model.logCursor = 0
		}

	case NoticesChangedMsg:
		// The notice stack is read from the center in View.

	case logRecordMsg:
		model.statusSequence++
		model.statusRecord = message.Summary
		model.statusLevel = message.Level
		sequence := model.statusSequence
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{Sequence: sequence}
		})

	case logRecordFadeMsg:
		if message.Sequence == model.statusSequence {
			model.statusRecord = ""
		}

	default:
		// Cursor blink and similar field-internal messages.
		if model.activeTab == TabSubmit {
			return model, model.form.update(message)
		}
	}
	return model, nil
}

// handleKey handles global bindings, then routes to the active tab.
func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.DismissNotice):
		model.dismissNewestNotice()
		return model, nil

	case key.Matches(message, model.keys.TabSubmit):
		model.activeTab = TabSubmit
		return model, nil

	case key.Matches(message, model.keys.TabTickets):
		model.activeTab = TabTickets
		return model, nil
	}

	if model.activeTab == TabSubmit {
		return model.handleSubmitKey(message)
	}
	return model.handleTicketsKey(message)
}

func (model Model) handleSubmitKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.NextField):
		return model, model.form.moveFocus(1)

	case key.Matches(message, model.keys.PreviousField):
		return model, model.form.moveFocus(-1)

	case key.Matches(message, model.keys.Submit):
		// Rejected input leaves its problems on the controller, where
		// the form view reads them. Submitting while busy is ignored.
		request, err := model.submission.Submit(model.form.Submission())
		if err != nil {
			return model, nil
		}
		return model, runSubmit(model.ctx, request)
	}
	return model, model.form.update(message)
}

func (model Model) handleTicketsKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := model.roster.Entries()

	switch {
	case key.Matches(message, model.keys.QuitSoft):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		model.rosterCursor = clampCursor(model.rosterCursor-1, len(entries))

	case key.Matches(message, model.keys.Down):
		model.rosterCursor = clampCursor(model.rosterCursor+1, len(entries))

	case key.Matches(message, model.keys.Select):
		if len(entries) == 0 {
			return model, nil
		}
		request := model.logs.Select(entries[model.rosterCursor].ID)
		if request != nil {
			model.logCursor = 0
		}
		return model, runLogs(model.ctx, request)

	case key.Matches(message, model.keys.StatusFilter):
		status := nextOption(model.roster.Filter().Status, triage.Statuses)
		model.rosterCursor = 0
		return model, runRoster(model.ctx, model.roster.SetStatus(status))

	case key.Matches(message, model.keys.UrgencyFilter):
		urgency := nextOption(model.roster.Filter().Urgency, triage.Urgencies)
		model.rosterCursor = 0
		return model, runRoster(model.ctx, model.roster.SetUrgency(urgency))

	case key.Matches(message, model.keys.Refresh):
		return model, runRoster(model.ctx, model.roster.Refresh())

	case key.Matches(message, model.keys.LogUp):
		model.logCursor = clampCursor(model.logCursor-1, len(model.logs.Visible()))

	case key.Matches(message, model.keys.LogDown):
		model.logCursor = clampCursor(model.logCursor+1, len(model.logs.Visible()))

	case key.Matches(message, model.keys.ToggleLog):
		visible := model.logs.Visible()
		if len(visible) > 0 {
			model.logs.Toggle(visible[clampCursor(model.logCursor, len(visible))].ID)
		}

	case key.Matches(message, model.keys.LogView):
		model.logs.CycleView()
		model.logCursor = clampCursor(model.logCursor, len(model.logs.Visible()))

	case key.Matches(message, model.keys.LogsPanel):
		model.logs.TogglePanel()

	case key.Matches(message, model.keys.ReloadLogs):
		request := model.logs.Reload()
		if request != nil {
			model.logCursor = 0
		}
		return model, runLogs(model.ctx, request)
	}
	return model, nil
}

// dismissNewestNotice removes the most recently pushed notice.
func (model *Model) dismissNewestNotice() {
	active := model.notices.List()
	if len(active) == 0 {
		return
	}
	model.notices.Dismiss(active[len(active)-1].ID)
}

// nextOption cycles current through "" followed by options.
func nextOption[T comparable](current T, options []T) T {
	var none T
	if current == none {
		return options[0]
	}
	index := slices.Index(options, current)
	if index < 0 || index == len(options)-1 {
		return none
	}
	return options[index+1]
}

// clampCursor keeps position within [0, length).
func clampCursor(position, length int) int {
	if length == 0 || position < 0 {
		return 0
	}
	if position >= length {
		return length - 1
	}
	return position
}
