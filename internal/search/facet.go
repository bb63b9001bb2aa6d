package search

import (
	"strings"
	"time"
)

// All is the sentinel facet value meaning "no constraint"
const All = "all"

// Facet is one independent filter dimension over records of type T.
// An inactive facet always passes.
type Facet[T any] interface {
	Name() string
	Active() bool
	Match(record T) bool
}

// IsAll reports whether a single facet selection means "no constraint"
func IsAll(selected string) bool {
	s := strings.TrimSpace(selected)
	return s == "" || strings.EqualFold(s, All)
}

// Equal is a single-value facet requiring the record value to equal the
// selection, ignoring case. A record without a value fails an active facet.
type Equal[T any] struct {
	Label    string
	Selected string
	Value    func(T) (string, bool)
}

func (f Equal[T]) Name() string { return f.Label }

func (f Equal[T]) Active() bool { return !IsAll(f.Selected) }

func (f Equal[T]) Match(record T) bool {
	if !f.Active() {
		return true
	}
	v, ok := f.Value(record)
	if !ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(f.Selected))
}

// AnyOf is a multi-value facet requiring a non-empty intersection between the
// selected set and the record's values.
type AnyOf[T any] struct {
	Label    string
	Selected []string
	Values   func(T) []string
}

func (f AnyOf[T]) Name() string { return f.Label }

func (f AnyOf[T]) Active() bool {
	for _, s := range f.Selected {
		if !IsAll(s) {
			return true
		}
	}
	return false
}

func (f AnyOf[T]) Match(record T) bool {
	if !f.Active() {
		return true
	}
	want := make(map[string]struct{}, len(f.Selected))
	for _, s := range f.Selected {
		if !IsAll(s) {
			want[normalize(strings.TrimSpace(s))] = struct{}{}
		}
	}
	for _, v := range f.Values(record) {
		if _, ok := want[normalize(strings.TrimSpace(v))]; ok {
			return true
		}
	}
	return false
}

// DefaultRecentWindow is the "active in the last 7 days" window
const DefaultRecentWindow = 7 * 24 * time.Hour

// Recent is a recency facet. When enabled a record passes only if its
// timestamp is strictly less than Window before Now. A missing timestamp fails.
type Recent[T any] struct {
	Label     string
	Enabled   bool
	Window    time.Duration
	Now       func() time.Time
	Timestamp func(T) *time.Time
}

func (f Recent[T]) Name() string { return f.Label }

func (f Recent[T]) Active() bool { return f.Enabled }

func (f Recent[T]) Match(record T) bool {
	if !f.Enabled {
		return true
	}
	ts := f.Timestamp(record)
	if ts == nil {
		return false
	}
	window := f.Window
	if window <= 0 {
		window = DefaultRecentWindow
	}
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	return now().Sub(*ts) < window
}

// Predicate wraps an arbitrary function as a facet, for page-specific
// dimensions such as profile completeness.
type Predicate[T any] struct {
	Label   string
	Enabled bool
	Fn      func(T) bool
}

func (f Predicate[T]) Name() string { return f.Label }

func (f Predicate[T]) Active() bool { return f.Enabled }

func (f Predicate[T]) Match(record T) bool {
	if !f.Enabled {
		return true
	}
	return f.Fn(record)
}
