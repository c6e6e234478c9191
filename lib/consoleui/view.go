// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/triage-console/lib/console"
	"github.com/bureau-foundation/triage-console/lib/schema/triage"
)

// defaultWidth is used before the first WindowSizeMsg.
const defaultWidth = 100

// resultPanelMinWidth is the terminal width at which the result panel
// moves beside the form instead of below it.
const resultPanelMinWidth = 110

// View implements tea.Model.
func (model Model) View() string {
	sections := []string{model.renderHeader()}
	if model.activeTab == TabSubmit {
		sections = append(sections, model.renderSubmitTab())
	} else {
		sections = append(sections, model.renderTicketsTab())
	}
	if stack := model.renderNotices(); stack != "" {
		sections = append(sections, stack)
	}
	sections = append(sections, model.renderStatusBar())
	return strings.Join(sections, "\n\n")
}

func (model Model) viewWidth() int {
	if model.width <= 0 {
		return defaultWidth
	}
	return model.width
}

func (model Model) renderHeader() string {
	activeStyle := lipgloss.NewStyle().
		Foreground(model.theme.ActiveTab).
		Bold(true).
		Underline(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	tabs := []struct {
		tab   Tab
		label string
	}{
		{TabSubmit, "F1 Submit"},
		{TabTickets, "F2 Tickets"},
	}
	var parts []string
	for _, entry := range tabs {
		if entry.tab == model.activeTab {
			parts = append(parts, activeStyle.Render(entry.label))
		} else {
			parts = append(parts, inactiveStyle.Render(entry.label))
		}
	}
	header := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true).Render("Triage Console") +
		"  " + strings.Join(parts, "  ")
	if model.baseURL != "" {
		header += "  " + inactiveStyle.Render(model.baseURL)
	}
	return header
}

// renderSubmitTab lays out the form and the result panel side by side
// on wide terminals, stacked otherwise.
func (model Model) renderSubmitTab() string {
	form := model.form.view(model.theme, model.submission.Problems(), model.submission.Busy())
	width := model.viewWidth()
	if width >= resultPanelMinWidth {
		panelWidth := width - formWidth - 6
		return lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(formWidth+2).Render(form),
			model.renderResult(panelWidth),
		)
	}
	return form + "\n\n" + model.renderResult(width-2)
}

// renderResult shows the accepted ticket, a progress line while a
// submission is outstanding, or a hint before the first submission.
func (model Model) renderResult(width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(0, 1).
		Width(max(width-2, 20))

	if model.submission.Busy() {
		return box.Render(titleStyle.Render(model.spinner.View() + " Analysis in progress"))
	}
	ticket, ok := model.submission.Result()
	if !ok {
		return box.Render(titleStyle.Render("AI Analysis") + "\n" +
			faint.Render("Submit a ticket to see its classification, priority, guardrails and draft reply."))
	}

	var lines []string
	lines = append(lines, titleStyle.Render("AI Routing & Guardrails"))
	lines = append(lines, faint.Render(fmt.Sprintf("Ticket #%d • %s", ticket.ID, formatTime(ticket.CreatedAt))))
	lines = append(lines, model.statusBadge(ticket.Status))
	if note := console.DuplicateNote(ticket); note != "" {
		lines = append(lines, faint.Render(note))
	}

	var labels []string
	if ticket.Category != "" {
		labels = append(labels, "Category: "+strings.ToUpper(ticket.Category))
	}
	if ticket.Urgency != "" {
		labels = append(labels, lipgloss.NewStyle().Foreground(model.theme.UrgencyColor(ticket.Urgency)).
			Render("Urgency: "+strings.ToUpper(string(ticket.Urgency))))
	}
	if ticket.RoutingDecision != "" {
		labels = append(labels, "Route: "+ticket.RoutingDecision)
	}
	if len(labels) > 0 {
		lines = append(lines, "", strings.Join(labels, "  "))
	}

	lines = append(lines, "",
		fmt.Sprintf("Priority score    %s", console.FormatPriority(ticket.PriorityScore)),
		fmt.Sprintf("Model confidence  %s", console.FormatConfidence(ticket.ConfidenceScore)),
	)

	if len(ticket.GuardrailFlags) > 0 {
		lines = append(lines, "", titleStyle.Render("Guardrail flags"),
			lipgloss.NewStyle().Foreground(model.theme.BadgeGuardrails).Render(strings.Join(ticket.GuardrailFlags, ", ")))
	}
	if ticket.ReasoningSummary != "" {
		lines = append(lines, "", titleStyle.Render("Reasoning summary"), ticket.ReasoningSummary)
	}
	if ticket.DraftReply != "" {
		lines = append(lines, "", titleStyle.Render("Draft reply"), ticket.DraftReply,
			faint.Render("Skim before sending for high-risk topics."))
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (model Model) statusBadge(status triage.Status) string {
	return lipgloss.NewStyle().Foreground(model.theme.StatusColor(status)).Bold(true).Render(string(status))
}

func (model Model) renderTicketsTab() string {
	sections := []string{model.renderFilterBar(), model.renderRoster()}
	sections = append(sections, model.renderLogPanel())
	return strings.Join(sections, "\n\n")
}

func (model Model) renderFilterBar() string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	filter := model.roster.Filter()
	status := "All"
	if filter.Status != "" {
		status = string(filter.Status)
	}
	urgency := "All"
	if filter.Urgency != "" {
		urgency = string(filter.Urgency)
	}
	bar := fmt.Sprintf("Status: %s  Urgency: %s", status, urgency)
	if model.roster.Loading() {
		bar += "  " + model.spinner.View() + " Loading tickets…"
	}
	return faint.Render(bar)
}

// rosterColumn describes one roster table column. A zero width takes
// the remaining space.
type rosterColumn struct {
	title string
	width int
}

var rosterColumns = []rosterColumn{
	{"#", 5},
	{"Subject", 0},
	{"Status", 18},
	{"Urgency", 7},
	{"Category", 12},
	{"Prio", 4},
	{"Conf", 5},
	{"Created", 16},
}

// columnWidths resolves the flexible column against the terminal width.
func columnWidths(total int) []int {
	widths := make([]int, len(rosterColumns))
	fixed := 0
	for index, column := range rosterColumns {
		widths[index] = column.width
		fixed += column.width + 1
	}
	for index, column := range rosterColumns {
		if column.width == 0 {
			widths[index] = max(total-fixed, 12)
		}
	}
	return widths
}

func (model Model) renderRoster() string {
	entries := model.roster.Entries()
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	if len(entries) == 0 {
		if !model.roster.Loaded() {
			return faint.Render("No tickets loaded yet.")
		}
		return faint.Render("No tickets match the current filters.")
	}

	widths := columnWidths(model.viewWidth())
	headerCells := make([]string, len(rosterColumns))
	for index, column := range rosterColumns {
		headerCells[index] = padCell(column.title, widths[index])
	}
	lines := []string{lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true).Render(strings.Join(headerCells, " "))}

	first, last := visibleWindow(model.rosterCursor, len(entries), model.rosterRows())
	selectedStyle := lipgloss.NewStyle().
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground)
	for index := first; index < last; index++ {
		entry := entries[index]
		cells := []string{
			padCell(fmt.Sprintf("%d", entry.ID), widths[0]),
			padCell(entry.Subject, widths[1]),
			padCell(string(entry.Status), widths[2]),
			padCell(string(entry.Urgency), widths[3]),
			padCell(entry.Category, widths[4]),
			padCell(console.FormatPriority(entry.PriorityScore), widths[5]),
			padCell(console.FormatConfidence(entry.ConfidenceScore), widths[6]),
			padCell(formatTime(entry.CreatedAt), widths[7]),
		}
		if index == model.rosterCursor {
			lines = append(lines, selectedStyle.Render(strings.Join(cells, " ")))
			continue
		}
		cells[2] = lipgloss.NewStyle().Foreground(model.theme.StatusColor(entry.Status)).Render(cells[2])
		cells[3] = lipgloss.NewStyle().Foreground(model.theme.UrgencyColor(entry.Urgency)).Render(cells[3])
		lines = append(lines, strings.Join(cells, " "))
	}
	lines = append(lines, faint.Render(fmt.Sprintf("%d/%d", model.rosterCursor+1, len(entries))))
	return strings.Join(lines, "\n")
}

// rosterRows is how many roster rows fit, leaving room for the log
// panel when it is shown.
func (model Model) rosterRows() int {
	if model.height <= 0 {
		return 15
	}
	available := model.height - 12
	if model.logs.PanelVisible() {
		available /= 2
	}
	return max(available, 3)
}

func (model Model) renderLogPanel() string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	titleStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)

	if !model.logs.PanelVisible() {
		return faint.Render("Logs hidden (p to show)")
	}
	switch model.logs.Phase() {
	case console.LogIdle:
		return titleStyle.Render("Logs") + "\n" + faint.Render("Select a ticket to inspect its processing logs.")
	case console.LogLoading:
		ticketID, _ := model.logs.TicketID()
		return titleStyle.Render(fmt.Sprintf("Logs for ticket #%d", ticketID)) + "\n" +
			model.spinner.View() + " Loading logs…"
	}

	var lines []string
	lines = append(lines, titleStyle.Render("Logs")+"  "+model.renderViewSelector())
	lines = append(lines, faint.Render(model.logs.Summary()))

	visible := model.logs.Visible()
	if len(visible) == 0 {
		lines = append(lines, faint.Render("No log entries for this view."))
		return strings.Join(lines, "\n")
	}
	width := model.viewWidth()
	for index, entry := range visible {
		lines = append(lines, model.renderLogEntry(entry, index == model.logCursor, width))
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderViewSelector() string {
	active := lipgloss.NewStyle().Foreground(model.theme.ActiveTab).Bold(true)
	inactive := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	var parts []string
	for _, view := range console.LogViews {
		if view == model.logs.View() {
			parts = append(parts, active.Render("["+string(view)+"]"))
		} else {
			parts = append(parts, inactive.Render(string(view)))
		}
	}
	return strings.Join(parts, " ")
}

func (model Model) renderLogEntry(entry triage.LogEntry, selected bool, width int) string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	expanded := model.logs.Expanded(entry.ID)

	marker := "▸"
	if expanded {
		marker = "▾"
	}
	summary := fmt.Sprintf("%s #%d  %s", marker, entry.ID, formatTime(entry.Timestamp))
	if entry.RoutingDecision != "" {
		summary += "  " + entry.RoutingDecision
	}
	for _, badge := range console.LogBadges(entry) {
		color := model.theme.BadgeGuardrails
		if badge == "AI error" {
			color = model.theme.BadgeAIError
		}
		summary += "  " + lipgloss.NewStyle().Foreground(color).Bold(true).Render(badge)
	}
	if selected {
		summary = lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground).
			Render(summary)
	}
	if !expanded {
		return summary
	}

	body := lipgloss.NewStyle().PaddingLeft(4).Width(max(width-2, 20))
	var details []string
	details = append(details, faint.Render("Raw input"), console.TruncateText(entry.RawInput, console.PreviewLimit))
	if entry.AIOutput != "" {
		details = append(details, faint.Render("AI output"), highlightOutput(console.TruncateText(entry.AIOutput, console.PreviewLimit)))
	}
	if flags := entry.Flags(); len(flags) > 0 {
		details = append(details, faint.Render("Guardrail flags"), strings.Join(flags, ", "))
	}
	return summary + "\n" + body.Render(strings.Join(details, "\n"))
}

// renderNotices draws the active notices, oldest first.
func (model Model) renderNotices() string {
	active := model.notices.List()
	if len(active) == 0 {
		return ""
	}
	width := min(model.viewWidth()-2, 60)
	var boxes []string
	for _, current := range active {
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(model.theme.NoticeColor(current.Severity)).
			Padding(0, 1).
			Width(width)
		text := lipgloss.NewStyle().Bold(true).Render(current.Title)
		if current.Description != "" {
			text += "\n" + current.Description
		}
		boxes = append(boxes, style.Render(text))
	}
	return strings.Join(boxes, "\n")
}

func (model Model) renderStatusBar() string {
	if model.statusRecord != "" {
		color := model.theme.NoticeDefault
		prefix := "Warn: "
		if model.statusLevel >= slog.LevelError {
			color = model.theme.NoticeDestructive
			prefix = "Error: "
		}
		line := ansi.Truncate(prefix+model.statusRecord, model.viewWidth(), "…")
		return lipgloss.NewStyle().Foreground(color).Bold(true).Render(line)
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(model.helpLine())
}

func (model Model) helpLine() string {
	if model.activeTab == TabSubmit {
		return " C-s submit  Tab/S-Tab fields  F2 tickets  C-x dismiss  C-c quit"
	}
	return " ↑↓ move  Enter logs  s status  u urgency  r refresh  J/K log  Space expand  v view  p panel  R reload  C-x dismiss  q quit"
}

// padCell truncates text to width display cells and pads it with
// spaces to exactly width.
func padCell(text string, width int) string {
	text = ansi.Truncate(strings.ReplaceAll(text, "\n", " "), width, "…")
	if gap := width - ansi.StringWidth(text); gap > 0 {
		text += strings.Repeat(" ", gap)
	}
	return text
}

// visibleWindow returns the [first, last) range of rows to draw so
// that cursor stays in view.
func visibleWindow(cursor, length, rows int) (int, int) {
	if length <= rows {
		return 0, length
	}
	first := max(cursor-rows/2, 0)
	if first+rows > length {
		first = length - rows
	}
	return first, first + rows
}

// highlightOutput colors AI output that looks like JSON. Anything else,
// or a highlighting failure, is returned unchanged.
func highlightOutput(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return text
	}
	var buffer bytes.Buffer
	if err := quick.Highlight(&buffer, text, "json", "terminal256", "monokai"); err != nil {
		return text
	}
	return strings.TrimRight(buffer.String(), "\n")
}

// formatTime renders a backend timestamp in local time, or "-" when
// absent.
func formatTime(timestamp triage.Timestamp) string {
	if timestamp.IsZero() {
		return "-"
	}
	return timestamp.Local().Format("2006-01-02 15:04")
}
