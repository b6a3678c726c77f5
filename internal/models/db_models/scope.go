package db_models

import "strings"

// Scope is the parsed form of the coupon scope columns. The legacy rows
// used sentinel strings (ANY/ALL/NONE/NULL) to mean "no restriction";
// those collapse to Global here and nowhere else.
type Scope struct {
	Global bool
	Value  string
}

func ParseScope(raw string) Scope {
	v := strings.TrimSpace(raw)
	switch strings.ToUpper(v) {
	case "", "ANY", "ALL", "NONE", "NULL":
		return Scope{Global: true}
	}
	return Scope{Value: v}
}

// Matches reports whether the scope admits any of the candidate
// identifiers. A global scope admits everything.
func (s Scope) Matches(candidates ...string) bool {
	if s.Global {
		return true
	}
	for _, c := range candidates {
		if c != "" && strings.EqualFold(s.Value, c) {
			return true
		}
	}
	return false
}
