package query

import "strings"

// Match selects how a filter value is compared with a field.
type Match int

const (
	// MatchEqual is exact equality.
	MatchEqual Match = iota
	// MatchContainsFold is a case-insensitive substring match.
	MatchContainsFold
	// MatchAnyOf splits the value on commas and matches when the field's
	// set shares at least one element with it.
	MatchAnyOf
)

func (m Match) String() string {
	switch m {
	case MatchEqual:
		return "eq"
	case MatchContainsFold:
		return "contains"
	case MatchAnyOf:
		return "any"
	}
	return "unknown"
}

// FilterSpec maps one query-string key to a field and a matcher.
type FilterSpec struct {
	Field string
	Match Match
}

// FilterTable is the allow-list of filterable query-string keys.
// Keys absent from the table are ignored.
type FilterTable map[string]FilterSpec

// condition builds the Condition for raw, or reports false when raw carries
// nothing to match on.
func (s FilterSpec) condition(raw string) (Condition, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Condition{}, false
	}
	switch s.Match {
	case MatchAnyOf:
		values := splitList(raw)
		if len(values) == 0 {
			return Condition{}, false
		}
		return Condition{Field: s.Field, Match: MatchAnyOf, Values: values}, true
	default:
		return Condition{Field: s.Field, Match: s.Match, Value: raw}, true
	}
}

// splitList splits a comma-separated list, trimming blanks and dropping
// empty and repeated entries. Order of first occurrence is kept.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
