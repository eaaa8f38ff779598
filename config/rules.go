package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"access-review/model"
)

// ScenarioKeyword binds one scenario to the keyword counted for it. The
// slice order in Rules.Scenarios is the fixed priority used when inspecting
// ties.
type ScenarioKeyword struct {
	Scenario model.Scenario `yaml:"scenario"`
	Keyword  string         `yaml:"keyword"`
}

// Columns names the roster columns the pipeline reads and writes.
type Columns struct {
	NameAndID        string `yaml:"name_and_id"`
	Scenario         string `yaml:"scenario"`
	ActionCorrect    string `yaml:"action_correct"`
	ReceiptConfirmed string `yaml:"receipt_confirmed"`
	MatchSource      string `yaml:"match_source"`
	MatchEvidence    string `yaml:"match_evidence"`
}

// Attachments controls which attachment formats are extracted.
type Attachments struct {
	AllowedExtensions []string `yaml:"allowed_extensions"`
	MaxSize           int64    `yaml:"max_size"`
}

// Rules holds every keyword table and threshold used by matching and
// classification. All of it is data so locale or keyword sets can be swapped
// without touching the matching logic.
type Rules struct {
	Scenarios        []ScenarioKeyword `yaml:"scenarios"`
	PasswordCompound string            `yaml:"password_compound"`
	HeaderPrefixes   []string          `yaml:"header_prefixes"`
	ProximityMarkers []string          `yaml:"proximity_markers"`
	ProximityWindow  int               `yaml:"proximity_window"`
	SnippetLimit     int               `yaml:"snippet_limit"`
	Affirmative      string            `yaml:"affirmative"`
	Columns          Columns           `yaml:"columns"`
	Attachments      Attachments       `yaml:"attachments"`
}

// DefaultRules returns the built-in rule set: the CJK keyword family of the
// original review workflow and the standard quoted-header prefixes.
func DefaultRules() Rules {
	return Rules{
		Scenarios: []ScenarioKeyword{
			{Scenario: model.ScenarioModify, Keyword: "修改"},
			{Scenario: model.ScenarioRemove, Keyword: "删除"},
			{Scenario: model.ScenarioAdd, Keyword: "新增"},
		},
		PasswordCompound: "修改密码",
		HeaderPrefixes:   []string{"from:", "to:", "cc:", "sent:", "subject:"},
		ProximityMarkers: []string{"manager"},
		ProximityWindow:  200,
		SnippetLimit:     500,
		Affirmative:      "是",
		Columns: Columns{
			NameAndID:        "EmployeeNameAndId",
			Scenario:         "ChangeScenario",
			ActionCorrect:    "ActionCorrect",
			ReceiptConfirmed: "ReceiptConfirmed",
			MatchSource:      "MatchSource",
			MatchEvidence:    "MatchEvidence",
		},
		Attachments: Attachments{
			AllowedExtensions: []string{"txt", "html", "csv", "docx", "xlsx", "pdf", "doc", "xls"},
			MaxSize:           5 * 1024 * 1024,
		},
	}
}

// LoadRules returns the default rules overlaid with the YAML file at path.
// An empty path selects the defaults unchanged.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

// Validate checks the rule tables for holes that would silently disable
// matching or classification.
func (r Rules) Validate() error {
	if len(r.Scenarios) == 0 {
		return fmt.Errorf("scenarios table is empty")
	}
	seen := make(map[model.Scenario]bool, len(r.Scenarios))
	for _, sk := range r.Scenarios {
		if strings.TrimSpace(sk.Keyword) == "" {
			return fmt.Errorf("scenario %q has an empty keyword", sk.Scenario)
		}
		switch sk.Scenario {
		case model.ScenarioAdd, model.ScenarioRemove, model.ScenarioModify:
		default:
			return fmt.Errorf("unknown scenario %q", sk.Scenario)
		}
		if seen[sk.Scenario] {
			return fmt.Errorf("scenario %q listed twice", sk.Scenario)
		}
		seen[sk.Scenario] = true
	}
	if !seen[model.ScenarioAdd] {
		return fmt.Errorf("scenarios table must include the add scenario (the default)")
	}
	if r.ProximityWindow <= 0 {
		return fmt.Errorf("proximity_window must be positive")
	}
	if r.SnippetLimit <= 0 {
		return fmt.Errorf("snippet_limit must be positive")
	}
	if r.Columns.NameAndID == "" {
		return fmt.Errorf("columns.name_and_id is required")
	}
	if r.Attachments.MaxSize <= 0 {
		return fmt.Errorf("attachments.max_size must be positive")
	}
	return nil
}

// ScenarioLabel returns the report label for a scenario, which is the
// configured keyword itself. Swapping the keyword table swaps the output
// vocabulary with it.
func (r Rules) ScenarioLabel(s model.Scenario) string {
	for _, sk := range r.Scenarios {
		if sk.Scenario == s {
			return sk.Keyword
		}
	}
	return string(s)
}
