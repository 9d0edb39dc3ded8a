package listview

import "strings"

// Record is one entity instance held by a Session. Identity is
// immutable and unique within a collection for its lifetime.
type Record interface {
	RecordID() string
}

// Predicate reports whether a record satisfies one active filter
// criterion. An inactive criterion is simply not supplied.
type Predicate[T Record] func(T) bool

// Filter returns the subsequence of items satisfying every predicate,
// preserving the original order. With no predicates it returns a copy
// of the input unchanged.
func Filter[T Record](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, pred := range preds {
			if !pred(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// TextMatch reports whether the query is a case-insensitive substring
// of any of the fields. An empty query matches everything.
func TextMatch(query string, fields ...string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
