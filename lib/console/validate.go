// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bureau-foundation/triage-console/lib/schema/triage"
)

// Message length bounds, counted in characters (runes) of the message
// as typed, surrounding whitespace included.
const (
	MinMessageLength = 10
	MaxMessageLength = 5000
)

// Rule messages reported by ValidateSubmission.
const (
	ProblemNameRequired    = "Name is required."
	ProblemEmailRequired   = "Email is required."
	ProblemEmailInvalid    = "Email format looks invalid."
	ProblemSubjectRequired = "Subject is required."
	ProblemMessageEmpty    = "Message cannot be empty."
	ProblemMessageShort    = "Message must be at least 10 characters."
	ProblemMessageLong     = "Message cannot exceed 5000 characters."
)

// emailPattern accepts localpart@domain.tld where each part is a run
// of characters that are neither whitespace nor '@'.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidationError lists every rule a submission violates, in field
// order (name, email, subject, message).
type ValidationError struct {
	Problems []string
}

func (validationError *ValidationError) Error() string {
	return "invalid submission: " + strings.Join(validationError.Problems, " ")
}

// ValidateSubmission checks submission against the local rules. All
// violated rules are collected. Returns nil or a *ValidationError.
func ValidateSubmission(submission triage.Submission) error {
	var problems []string

	if strings.TrimSpace(submission.Name) == "" {
		problems = append(problems, ProblemNameRequired)
	}

	if strings.TrimSpace(submission.Email) == "" {
		problems = append(problems, ProblemEmailRequired)
	} else if !emailPattern.MatchString(submission.Email) {
		problems = append(problems, ProblemEmailInvalid)
	}

	if strings.TrimSpace(submission.Subject) == "" {
		problems = append(problems, ProblemSubjectRequired)
	}

	if strings.TrimSpace(submission.Message) == "" {
		problems = append(problems, ProblemMessageEmpty)
	} else {
		length := utf8.RuneCountInString(submission.Message)
		if length < MinMessageLength {
			problems = append(problems, ProblemMessageShort)
		}
		if length > MaxMessageLength {
			problems = append(problems, ProblemMessageLong)
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
