package promos

import (
	"time"

	"ticketdesk/internal/listview"
)

// Kind is the discount mechanism of a promo code.
type Kind string

const (
	KindPercentage  Kind = "percentage"
	KindFixedAmount Kind = "fixed_amount"
)

// Status is the derived state of a promo code. It is never stored:
// usage may hit the limit or the expiry may pass at any moment, so
// trusting a stale stored value would be wrong.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// Code is one promotional code. The code string is unique within the
// collection and normalized to uppercase. Used tracking beyond Limit
// is a data-entry bug; status derivation tolerates it.
type Code struct {
	ID          string
	Code        string
	Description string
	Kind        Kind
	Value       int64
	Limit       int
	Used        int
	ExpiresAt   time.Time
}

// RecordID implements listview.Record.
func (c Code) RecordID() string { return c.ID }

// Status derives the code's state at the given moment: expired once
// the expiry has passed or usage has reached the limit.
func (c Code) Status(now time.Time) Status {
	if c.ExpiresAt.Before(now) || c.Used >= c.Limit {
		return StatusExpired
	}
	return StatusActive
}

// Criteria is the active filter set for the promos console. Status
// filtering evaluates the derived status at filter time.
type Criteria struct {
	Query  string
	Status Status
}

// Matches reports whether the code satisfies every active criterion.
// The text query searches the code string only.
func (cr Criteria) Matches(now time.Time) listview.Predicate[Code] {
	return func(c Code) bool {
		if !listview.TextMatch(cr.Query, c.Code) {
			return false
		}
		if cr.Status != "" && c.Status(now) != cr.Status {
			return false
		}
		return true
	}
}

// Summary is the roll-up over the full collection.
type Summary struct {
	Total   int
	Active  int
	Expired int
}

// Summarize computes the summary over the full collection, deriving
// each code's status at the given moment.
func Summarize(all []Code, now time.Time) Summary {
	s := Summary{Total: len(all)}
	for _, c := range all {
		if c.Status(now) == StatusExpired {
			s.Expired++
		} else {
			s.Active++
		}
	}
	return s
}
