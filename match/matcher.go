package match

import (
	"strings"

	"access-review/config"
	"access-review/model"
)

// Matcher locates an employee identifier inside a normalized message,
// applying the body exclusion rules that suppress false positives from
// quoted headers and manager listings.
type Matcher struct {
	headerPrefixes   []string
	proximityMarkers []string
	window           int
}

// NewMatcher builds a Matcher from the rule tables. Prefixes and markers
// are case-folded once here.
func NewMatcher(rules config.Rules) *Matcher {
	return &Matcher{
		headerPrefixes:   lowerAll(rules.HeaderPrefixes),
		proximityMarkers: lowerAll(rules.ProximityMarkers),
		window:           rules.ProximityWindow,
	}
}

// Locate reports whether and where the identity occurs in the message.
// Search order is Subject, then Body, then Attachments, short-circuiting on
// the first hit. Matching is substring and case-insensitive on either the
// name or the id; an identity with both fields empty never matches.
func (m *Matcher) Locate(id model.Identity, msg *NormalizedMessage) (model.Location, bool) {
	keywords := identityKeywords(id)
	if len(keywords) == 0 {
		return model.LocationNone, false
	}

	for _, kw := range keywords {
		if strings.Contains(msg.SubjectLower, kw) {
			return model.LocationSubject, true
		}
	}

	for _, kw := range keywords {
		if strings.Contains(msg.BodyLower, kw) && m.bodyHasValidMatch(msg.BodyLower, kw) {
			return model.LocationBody, true
		}
	}

	for _, att := range msg.AttachmentsLower {
		for _, kw := range keywords {
			if strings.Contains(att, kw) {
				return model.LocationAttachment, true
			}
		}
	}

	return model.LocationNone, false
}

// bodyHasValidMatch reports whether the keyword appears in the body outside
// of header and manager context. Header-prefixed lines and lines containing
// an @ character are skipped entirely. The manager-proximity window is
// anchored at the first occurrence of the keyword anywhere in the body,
// regardless of which line is being inspected.
func (m *Matcher) bodyHasValidMatch(bodyLower, keyword string) bool {
	for _, line := range strings.Split(bodyLower, "\n") {
		if !strings.Contains(line, keyword) {
			continue
		}
		if m.isHeaderLine(strings.TrimSpace(line)) {
			continue
		}
		if strings.Contains(line, "@") {
			continue
		}
		if idx := strings.Index(bodyLower, keyword); idx >= 0 && m.markerPrecedes(bodyLower, idx) {
			continue
		}
		return true
	}
	return false
}

func (m *Matcher) isHeaderLine(trimmedLower string) bool {
	for _, prefix := range m.headerPrefixes {
		if strings.HasPrefix(trimmedLower, prefix) {
			return true
		}
	}
	return false
}

// markerPrecedes reports whether a proximity marker occurs within the
// configured window of characters immediately before byte offset idx.
func (m *Matcher) markerPrecedes(bodyLower string, idx int) bool {
	prefix := []rune(bodyLower[:idx])
	if len(prefix) > m.window {
		prefix = prefix[len(prefix)-m.window:]
	}
	window := string(prefix)
	for _, marker := range m.proximityMarkers {
		if strings.Contains(window, marker) {
			return true
		}
	}
	return false
}

// identityKeywords returns the lowercased non-empty identifier fields, name
// first.
func identityKeywords(id model.Identity) []string {
	var keywords []string
	if id.Name != "" {
		keywords = append(keywords, strings.ToLower(id.Name))
	}
	if id.ID != "" {
		keywords = append(keywords, strings.ToLower(id.ID))
	}
	return keywords
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
