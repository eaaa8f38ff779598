package match

import (
	"sort"
	"strings"
	"time"

	"access-review/config"
	"access-review/model"
)

// Resolver aggregates all messages matched to one employee, picks the most
// recent by message date, classifies it, and assembles the evidence record.
type Resolver struct {
	matcher      *Matcher
	classifier   *Classifier
	snippetLimit int
}

// NewResolver builds a Resolver from the rule tables.
func NewResolver(rules config.Rules) *Resolver {
	return &Resolver{
		matcher:      NewMatcher(rules),
		classifier:   NewClassifier(rules),
		snippetLimit: rules.SnippetLimit,
	}
}

type candidate struct {
	msg      *NormalizedMessage
	location model.Location
}

// Resolve decides whether any message supports the identity and returns the
// terminal record for the roster row. The same inputs always produce the
// same result.
func (r *Resolver) Resolve(id model.Identity, messages []NormalizedMessage) model.Resolution {
	var candidates []candidate
	for i := range messages {
		if loc, ok := r.matcher.Locate(id, &messages[i]); ok {
			candidates = append(candidates, candidate{msg: &messages[i], location: loc})
		}
	}

	if len(candidates) == 0 {
		return model.Resolution{Evidence: model.NoMatchEvidence}
	}

	// Most recent first; a missing date sorts as the earliest possible
	// date. The stable sort keeps original message order among equal or
	// missing dates.
	sort.SliceStable(candidates, func(i, j int) bool {
		return messageDate(candidates[i].msg).After(messageDate(candidates[j].msg))
	})
	selected := candidates[0]

	return model.Resolution{
		Matched:     true,
		Location:    selected.location,
		Scenario:    r.classifier.Classify(selected.msg.CombinedLower),
		Evidence:    truncateRunes(r.snippetText(id, selected.msg, selected.location), r.snippetLimit),
		MessageFile: selected.msg.Source.File,
	}
}

// snippetText picks the source text backing the evidence snippet: the body
// for a body match, the first attachment containing the identifier for an
// attachment match (body as fallback), and for a subject match the body
// when non-empty, else the subject itself.
func (r *Resolver) snippetText(id model.Identity, msg *NormalizedMessage, loc model.Location) string {
	switch loc {
	case model.LocationBody:
		return msg.Source.Body
	case model.LocationAttachment:
		keywords := identityKeywords(id)
		for i, low := range msg.AttachmentsLower {
			for _, kw := range keywords {
				if strings.Contains(low, kw) {
					return msg.Source.Attachments[i].Text
				}
			}
		}
		return msg.Source.Body
	default:
		if msg.Source.Body != "" {
			return msg.Source.Body
		}
		return msg.Source.Subject
	}
}

func messageDate(m *NormalizedMessage) time.Time {
	if m.Source.Date == nil {
		return time.Time{}
	}
	return *m.Source.Date
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
