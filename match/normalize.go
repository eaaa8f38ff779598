// Package match implements the matching-and-classification pipeline:
// normalizing messages into a case-folded search corpus, locating employee
// identifiers under exclusion rules, classifying the access-change scenario
// by keyword frequency, and resolving the best supporting message per
// roster row.
package match

import (
	"strings"

	"access-review/model"
)

// NormalizedMessage is the case-folded search corpus of one message. It is
// computed once so the matcher and classifier never re-derive case folding
// per employee.
type NormalizedMessage struct {
	Source           *model.Message
	SubjectLower     string
	BodyLower        string
	AttachmentsLower []string

	// CombinedLower joins subject, body, and attachment texts in that
	// order, separated by line breaks. Used for frequency counting.
	CombinedLower string
}

// Normalize builds the search corpus for one message.
func Normalize(m *model.Message) NormalizedMessage {
	atts := make([]string, len(m.Attachments))
	for i, att := range m.Attachments {
		atts[i] = strings.ToLower(att.Text)
	}

	parts := make([]string, 0, len(atts)+2)
	parts = append(parts, strings.ToLower(m.Subject), strings.ToLower(m.Body))
	parts = append(parts, atts...)

	return NormalizedMessage{
		Source:           m,
		SubjectLower:     parts[0],
		BodyLower:        parts[1],
		AttachmentsLower: atts,
		CombinedLower:    strings.Join(parts, "\n"),
	}
}

// NormalizeAll normalizes the whole corpus. The returned slice and the
// underlying messages are read-only afterwards and safe to share across
// goroutines.
func NormalizeAll(messages []model.Message) []NormalizedMessage {
	out := make([]NormalizedMessage, len(messages))
	for i := range messages {
		out[i] = Normalize(&messages[i])
	}
	return out
}
