// Package search implements the in-memory directory filtering used by every
// listing in campuslink: a free-text predicate, independent facet predicates
// and a projector that derives the visible list from the full record set.
package search

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// MatchMode selects how the free-text query is compared with a field
type MatchMode string

const (
	// ModeFuzzy matches when the query runes appear in order, not necessarily
	// contiguously, within a single field.
	ModeFuzzy MatchMode = "fuzzy"
	// ModeSubstring matches when the query appears contiguously in a field.
	ModeSubstring MatchMode = "substring"
)

// ParseMatchMode converts a config value into a MatchMode
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeFuzzy:
		return ModeFuzzy, nil
	case ModeSubstring:
		return ModeSubstring, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (want fuzzy or substring)", s)
	}
}

// normalize applies Unicode case folding. Casers carry state, so each call
// gets its own.
func normalize(s string) string {
	return cases.Fold().String(s)
}

// Subsequence reports whether every rune of query appears in target in order,
// ignoring case.
func Subsequence(query, target string) bool {
	q := []rune(normalize(query))
	if len(q) == 0 {
		return true
	}
	i := 0
	for _, r := range normalize(target) {
		if r == q[i] {
			i++
			if i == len(q) {
				return true
			}
		}
	}
	return false
}

// Substring reports whether query appears contiguously in target, ignoring case.
func Substring(query, target string) bool {
	return strings.Contains(normalize(target), normalize(query))
}

// TextMatch tests query against each field independently; any hit is a match.
// An empty query always matches. Fields are never concatenated.
//
// Accepted field kinds: string, *string, int, *int, []string (each element is
// its own field) and fmt.Stringer. nil, empty strings and zero ints are treated
// as missing and never match.
func TextMatch(mode MatchMode, query string, fields ...interface{}) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}

	match := Subsequence
	if mode == ModeSubstring {
		match = Substring
	}

	for _, f := range fields {
		for _, value := range fieldStrings(f) {
			if value != "" && match(query, value) {
				return true
			}
		}
	}
	return false
}

func fieldStrings(f interface{}) []string {
	switch v := f.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case *string:
		if v == nil {
			return nil
		}
		return []string{*v}
	case int:
		if v == 0 {
			return nil
		}
		return []string{strconv.Itoa(v)}
	case *int:
		if v == nil || *v == 0 {
			return nil
		}
		return []string{strconv.Itoa(*v)}
	case []string:
		return v
	case fmt.Stringer:
		return []string{v.String()}
	default:
		return nil
	}
}
