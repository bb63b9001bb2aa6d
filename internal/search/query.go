package search

import (
	"sort"
	"strings"
)

// Query is the full filter state of one directory listing: the settled search
// text plus every facet.
type Query[T any] struct {
	Text   string
	Mode   MatchMode
	Fields func(T) []interface{}
	Facets []Facet[T]
}

// Match reports whether record passes the text predicate and every active facet
func (q Query[T]) Match(record T) bool {
	if strings.TrimSpace(q.Text) != "" && q.Fields != nil {
		if !TextMatch(q.Mode, q.Text, q.Fields(record)...) {
			return false
		}
	}
	for _, f := range q.Facets {
		if f.Active() && !f.Match(record) {
			return false
		}
	}
	return true
}

// ActiveFacets returns the names of facets currently constraining the result
func (q Query[T]) ActiveFacets() []string {
	var names []string
	for _, f := range q.Facets {
		if f.Active() {
			names = append(names, f.Name())
		}
	}
	return names
}

// Filter returns the records passing q, in input order. The input slice is
// never modified.
func Filter[T any](records []T, q Query[T]) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if q.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortKey names an ordering understood by Sort
type SortKey string

const (
	SortNone           SortKey = ""
	SortName           SortKey = "name"
	SortGraduationYear SortKey = "graduation_year"
	SortNewest         SortKey = "newest"
)

// Orderings maps each SortKey to a less function for T
type Orderings[T any] map[SortKey]func(a, b T) bool

// Sort returns a stably sorted copy of records. Unknown or empty keys keep the
// input order.
func Sort[T any](records []T, key SortKey, orderings Orderings[T]) []T {
	out := make([]T, len(records))
	copy(out, records)
	less, ok := orderings[key]
	if !ok {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

// Options returns the distinct, sorted, non-empty values across records,
// prefixed with the All sentinel. Used to list the choices of a facet.
func Options[T any](records []T, values func(T) []string) []string {
	seen := make(map[string]string)
	for _, r := range records {
		for _, v := range values(r) {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			key := normalize(v)
			if _, ok := seen[key]; !ok {
				seen[key] = v
			}
		}
	}
	opts := make([]string, 0, len(seen))
	for _, v := range seen {
		opts = append(opts, v)
	}
	sort.Slice(opts, func(i, j int) bool {
		return normalize(opts[i]) < normalize(opts[j])
	})
	return append([]string{All}, opts...)
}
