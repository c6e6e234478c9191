// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/triage-console/lib/console"
	"github.com/bureau-foundation/triage-console/lib/schema/triage"
)

// formField identifies a field of the submission form, in tab order.
type formField int

const (
	fieldName formField = iota
	fieldEmail
	fieldSubject
	fieldMessage
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Email", "Subject", "Message"}

// submitForm holds the editable submission. The single-line fields are
// textinputs; the message is a textarea. Lengths are not capped here so
// that over-long input reaches validation and is reported.
type submitForm struct {
	inputs  [fieldMessage]textinput.Model
	message textarea.Model
	focus   formField
}

func newSubmitForm() submitForm {
	var form submitForm
	placeholders := [fieldMessage]string{"Jane Doe", "jane@example.com", "Short summary of the issue"}
	for index := range form.inputs {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = placeholders[index]
		form.inputs[index] = input
	}

	form.message = textarea.New()
	form.message.Placeholder = "Describe the problem in detail."
	form.message.ShowLineNumbers = false
	form.message.CharLimit = 0
	form.message.MaxHeight = 0
	form.message.SetHeight(6)

	form.inputs[fieldName].Focus()
	return form
}

// Submission returns the form contents as typed.
func (form *submitForm) Submission() triage.Submission {
	return triage.Submission{
		Name:    form.inputs[fieldName].Value(),
		Email:   form.inputs[fieldEmail].Value(),
		Subject: form.inputs[fieldSubject].Value(),
		Message: form.message.Value(),
	}
}

// setWidth sizes every field to width columns.
func (form *submitForm) setWidth(width int) {
	for index := range form.inputs {
		form.inputs[index].Width = width
	}
	form.message.SetWidth(width)
}

// moveFocus moves focus by delta fields, wrapping around.
func (form *submitForm) moveFocus(delta int) tea.Cmd {
	form.blur()
	form.focus = formField((int(form.focus) + delta + int(fieldCount)) % int(fieldCount))
	if form.focus == fieldMessage {
		return form.message.Focus()
	}
	return form.inputs[form.focus].Focus()
}

func (form *submitForm) blur() {
	if form.focus == fieldMessage {
		form.message.Blur()
		return
	}
	form.inputs[form.focus].Blur()
}

// update forwards msg to the focused field.
func (form *submitForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if form.focus == fieldMessage {
		form.message, cmd = form.message.Update(msg)
		return cmd
	}
	form.inputs[form.focus], cmd = form.inputs[form.focus].Update(msg)
	return cmd
}

// messageLength counts the message in characters.
func (form *submitForm) messageLength() int {
	return utf8.RuneCountInString(form.message.Value())
}

// view renders the labeled fields, the message counter, and the rules
// violated by the last rejected submit.
func (form *submitForm) view(theme Theme, problems []string, busy bool) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	focusedStyle := lipgloss.NewStyle().Foreground(theme.FocusedField).Bold(true)

	var lines []string
	for field := fieldName; field < fieldCount; field++ {
		label := labelStyle.Render(fieldLabels[field])
		if field == form.focus {
			label = focusedStyle.Render("› " + fieldLabels[field])
		}
		lines = append(lines, label)
		if field == fieldMessage {
			lines = append(lines, form.message.View())
			counterStyle := labelStyle
			if form.messageLength() > console.MaxMessageLength {
				counterStyle = lipgloss.NewStyle().Foreground(theme.ProblemText)
			}
			lines = append(lines, counterStyle.Render(fmt.Sprintf("%d/%d", form.messageLength(), console.MaxMessageLength)))
		} else {
			lines = append(lines, form.inputs[field].View(), "")
		}
	}

	if len(problems) > 0 {
		problemStyle := lipgloss.NewStyle().Foreground(theme.ProblemText)
		lines = append(lines, "")
		for _, problem := range problems {
			lines = append(lines, problemStyle.Render("• "+problem))
		}
	}

	lines = append(lines, "")
	if busy {
		lines = append(lines, labelStyle.Render("Submitting…"))
	} else {
		lines = append(lines, labelStyle.Render("C-s submit  Tab next field"))
	}
	return strings.Join(lines, "\n")
}
