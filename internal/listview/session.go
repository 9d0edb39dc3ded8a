package listview

import (
	"sync"

	"ticketdesk/internal/logging"
)

// Session owns the full collection for one console instance and the
// derived state computed from it: the filtered view and the current
// page position. The full collection is the single source of truth;
// the filtered view is recomputed, never hand-edited.
//
// The original runtime was single-threaded; the lock makes the
// ownership boundary explicit now that timers fire on goroutines.
type Session[T Record] struct {
	mu       sync.RWMutex
	all      []T
	filtered []T
	preds    []Predicate[T]
	page     int
	pageSize int
	logger   *logging.Logger
}

// NewSession creates an empty session with a fixed page size.
func NewSession[T Record](pageSize int, logger *logging.Logger) *Session[T] {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Session[T]{
		page:     1,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Replace swaps in a freshly acquired collection, re-derives the
// filtered view under the active criteria and collapses to page 1.
func (s *Session[T]) Replace(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.all = append([]T(nil), items...)
	s.refilter()
}

// SetFilter installs a new criteria set and re-derives the filtered
// view. Filtering invalidates any prior page position.
func (s *Session[T]) SetFilter(preds ...Predicate[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.preds = preds
	s.refilter()
}

func (s *Session[T]) refilter() {
	s.filtered = Filter(s.all, s.preds...)
	s.page = 1
}

// GoToPage navigates to an explicit page number. Out-of-range requests
// are ignored, not clamped.
func (s *Session[T]) GoToPage(n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 1 || n > totalPages(len(s.filtered), s.pageSize) {
		s.logger.WithFields(map[string]interface{}{"page": n}).
			Debug().Msg("ignoring out-of-range page request")
		return false
	}
	s.page = n
	return true
}

// CurrentPage returns the page slice for the current position.
func (s *Session[T]) CurrentPage() Page[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Paginate(s.filtered, s.page, s.pageSize)
}

// All returns a copy of the full collection, for summary aggregation.
func (s *Session[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]T(nil), s.all...)
}

// Len returns the size of the full collection.
func (s *Session[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.all)
}

// Find returns a snapshot of one record by id. The copy backs the
// modal edit form; discarding it never touches the source of truth.
func (s *Session[T]) Find(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.all {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Update applies a single-record edit by id and re-derives the
// filtered view, since the edit may move the record in or out of the
// active criteria. A stale id is a logged no-op.
func (s *Session[T]) Update(id string, apply func(*T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.all {
		if s.all[i].RecordID() == id {
			apply(&s.all[i])
			s.refilter()
			return true
		}
	}
	s.logger.WithFields(map[string]interface{}{"id": id}).
		Warn().Msg("update for unknown record ignored")
	return false
}

// UpdateMany applies a bulk mutation to every selected id present in
// the collection; ids not found are skipped individually. The filter
// is not re-run: bulk actions operate on the currently visible
// selection, so membership in the view stays as is. The view's copies
// of the mutated records are refreshed, though, so the re-rendered
// page shows the new field values.
func (s *Session[T]) UpdateMany(ids []string, apply func(*T)) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := 0
	for _, id := range ids {
		found := false
		for i := range s.all {
			if s.all[i].RecordID() == id {
				apply(&s.all[i])
				found = true
				applied++
				break
			}
		}
		if !found {
			s.logger.WithFields(map[string]interface{}{"id": id}).
				Warn().Msg("bulk action skipping unknown record")
			continue
		}
		for i := range s.filtered {
			if s.filtered[i].RecordID() == id {
				apply(&s.filtered[i])
				break
			}
		}
	}
	return applied
}

// InsertFront prepends a newly created record and re-derives the
// filtered view.
func (s *Session[T]) InsertFront(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.all = append([]T{item}, s.all...)
	s.refilter()
}

// Remove deletes a record by id and re-derives the filtered view.
func (s *Session[T]) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.all {
		if s.all[i].RecordID() == id {
			s.all = append(s.all[:i], s.all[i+1:]...)
			s.refilter()
			return true
		}
	}
	s.logger.WithFields(map[string]interface{}{"id": id}).
		Warn().Msg("delete for unknown record ignored")
	return false
}
