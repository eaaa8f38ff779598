package match

import (
	"strings"

	"access-review/config"
	"access-review/model"
)

// KeywordCount is the occurrence count of one scenario keyword in a corpus.
type KeywordCount struct {
	Scenario model.Scenario
	Keyword  string
	Count    int
}

// Classifier derives a scenario label from keyword frequency. This is a
// frequency heuristic, not semantic classification: ties and absence both
// collapse to Add.
type Classifier struct {
	keywords []KeywordCount
	password string
}

// NewClassifier builds a Classifier from the scenario keyword table,
// preserving its order for tie inspection.
func NewClassifier(rules config.Rules) *Classifier {
	keywords := make([]KeywordCount, len(rules.Scenarios))
	for i, sk := range rules.Scenarios {
		keywords[i] = KeywordCount{Scenario: sk.Scenario, Keyword: strings.ToLower(sk.Keyword)}
	}
	return &Classifier{
		keywords: keywords,
		password: strings.ToLower(rules.PasswordCompound),
	}
}

// Counts returns per-scenario keyword occurrence counts for a case-folded
// corpus, with the password-change compound removed first so its mentions
// never count.
func (c *Classifier) Counts(combinedLower string) []KeywordCount {
	text := combinedLower
	if c.password != "" {
		text = strings.ReplaceAll(text, c.password, "")
	}

	out := make([]KeywordCount, len(c.keywords))
	for i, kw := range c.keywords {
		out[i] = kw
		out[i].Count = strings.Count(text, kw.Keyword)
	}
	return out
}

// Classify returns the scenario whose keyword uniquely dominates the
// corpus. A zero maximum or a tie for the maximum yields Add.
func (c *Classifier) Classify(combinedLower string) model.Scenario {
	best := model.ScenarioAdd
	max := 0
	tied := false
	for _, kc := range c.Counts(combinedLower) {
		switch {
		case kc.Count > max:
			best, max, tied = kc.Scenario, kc.Count, false
		case kc.Count == max && max > 0:
			tied = true
		}
	}
	if max == 0 || tied {
		return model.ScenarioAdd
	}
	return best
}
