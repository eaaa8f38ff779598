package match

import (
	"strings"
	"testing"

	"access-review/config"
	"access-review/model"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(config.DefaultRules())

	tests := []struct {
		name string
		text string
		want model.Scenario
	}{
		{name: "no keywords defaults to add", text: "请尽快处理该申请", want: model.ScenarioAdd},
		{name: "empty corpus defaults to add", text: "", want: model.ScenarioAdd},
		{name: "unique add", text: "新增权限", want: model.ScenarioAdd},
		{name: "unique remove", text: "删除账号并回收权限", want: model.ScenarioRemove},
		{name: "unique modify", text: "修改访问级别", want: model.ScenarioModify},
		{name: "majority wins", text: "删除 删除 新增", want: model.ScenarioRemove},
		{name: "two-way tie defaults to add", text: "修改一次 删除一次", want: model.ScenarioAdd},
		{name: "tie broken by third keyword", text: "修改 修改 删除 删除 新增 新增 新增", want: model.ScenarioAdd},
		{name: "late tie after a leader", text: "修改 修改 删除 删除 新增", want: model.ScenarioAdd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(strings.ToLower(tt.text)); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyPasswordCompound(t *testing.T) {
	c := NewClassifier(config.DefaultRules())

	// 修改密码 is stripped before counting, so its 修改 never scores.
	tests := []struct {
		name string
		text string
		want model.Scenario
	}{
		{name: "compound alone", text: "请协助修改密码", want: model.ScenarioAdd},
		{name: "compound plus real modify", text: "修改密码后再修改权限", want: model.ScenarioModify},
		{name: "compound does not shield remove", text: "修改密码并删除账号", want: model.ScenarioRemove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCounts(t *testing.T) {
	c := NewClassifier(config.DefaultRules())

	counts := c.Counts("新增 新增 删除 修改密码")
	got := make(map[model.Scenario]int, len(counts))
	for _, kc := range counts {
		got[kc.Scenario] = kc.Count
	}

	want := map[model.Scenario]int{
		model.ScenarioAdd:    2,
		model.ScenarioRemove: 1,
		model.ScenarioModify: 0,
	}
	for s, n := range want {
		if got[s] != n {
			t.Errorf("Counts()[%s] = %d, want %d", s, got[s], n)
		}
	}
}

func TestClassifierCustomKeywords(t *testing.T) {
	rules := config.DefaultRules()
	rules.Scenarios = []config.ScenarioKeyword{
		{Scenario: model.ScenarioModify, Keyword: "modify"},
		{Scenario: model.ScenarioRemove, Keyword: "revoke"},
		{Scenario: model.ScenarioAdd, Keyword: "grant"},
	}
	rules.PasswordCompound = "modify password"
	c := NewClassifier(rules)

	if got := c.Classify("please revoke access for the contractor"); got != model.ScenarioRemove {
		t.Errorf("Classify() = %q, want remove", got)
	}
	if got := c.Classify("user asked to modify password"); got != model.ScenarioAdd {
		t.Errorf("Classify() with compound only = %q, want add", got)
	}
}
