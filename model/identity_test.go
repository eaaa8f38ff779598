package model

import "testing"

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantName string
		wantID   string
	}{
		{name: "name then id", raw: "张三,10023", wantName: "张三", wantID: "10023"},
		{name: "id then name", raw: "10023,张三", wantName: "张三", wantID: "10023"},
		{name: "no comma", raw: "张三", wantName: "张三", wantID: ""},
		{name: "spaces trimmed", raw: "  张三 , 10023 ", wantName: "张三", wantID: "10023"},
		{name: "empty", raw: "", wantName: "", wantID: ""},
		{name: "whitespace only", raw: "   ", wantName: "", wantID: ""},
		{name: "split at first comma only", raw: "Smith, Jr,10023", wantName: "Smith", wantID: "Jr,10023"},
		{name: "alphanumeric id", raw: "LiSi,E4401", wantName: "LiSi", wantID: "E4401"},
		{name: "digit in first part wins", raw: "10023,", wantName: "", wantID: "10023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIdentity(tt.raw)
			if got.Name != tt.wantName || got.ID != tt.wantID {
				t.Errorf("ParseIdentity(%q) = {%q, %q}, want {%q, %q}",
					tt.raw, got.Name, got.ID, tt.wantName, tt.wantID)
			}
		})
	}
}

func TestIdentityEmpty(t *testing.T) {
	if !(Identity{}).Empty() {
		t.Error("zero identity should be empty")
	}
	if (Identity{ID: "10023"}).Empty() {
		t.Error("identity with id should not be empty")
	}
	if got := ParseIdentity("张三,10023"); got.Empty() {
		t.Error("parsed identity should not be empty")
	}
}
