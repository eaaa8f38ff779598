package model

import (
	"strings"
	"unicode"
)

// Identity identifies one roster entry. Either the name or the numeric id
// can independently trigger a match; empty fields never match.
type Identity struct {
	Name string
	ID   string
}

// Empty reports whether both identifier fields are blank.
func (id Identity) Empty() bool {
	return id.Name == "" && id.ID == ""
}

// ParseIdentity splits a raw "name,id" or "id,name" roster field at the
// first comma. The component containing a digit is treated as the id. If no
// comma is present the whole value is the name and the id stays empty.
func ParseIdentity(raw string) Identity {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Identity{}
	}

	i := strings.Index(s, ",")
	if i < 0 {
		return Identity{Name: s}
	}

	first := strings.TrimSpace(s[:i])
	second := strings.TrimSpace(s[i+1:])
	if containsDigit(first) {
		return Identity{Name: second, ID: first}
	}
	return Identity{Name: first, ID: second}
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
