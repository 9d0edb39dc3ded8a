package events

import (
	"sort"
	"time"

	"ticketdesk/internal/listview"
)

// Status is the review state of a listing.
type Status string

const (
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
)

// Listing is one event as the admin console sees it. TicketsSold is
// computed once when the listing is loaded and reset to zero when the
// listing is approved; approval always starts a fresh sales counter.
type Listing struct {
	ID          string
	Name        string
	Poster      string
	Organizer   string
	StartsAt    time.Time
	Location    string
	TicketsSold int
	Status      Status
}

// RecordID implements listview.Record.
func (l Listing) RecordID() string { return l.ID }

// Criteria is the active filter set for the events console.
type Criteria struct {
	Query     string
	Status    Status
	Organizer string
}

// Matches reports whether the listing satisfies every active
// criterion. The text query searches name and organizer.
func (c Criteria) Matches(l Listing) bool {
	if !listview.TextMatch(c.Query, l.Name, l.Organizer) {
		return false
	}
	if c.Status != "" && l.Status != c.Status {
		return false
	}
	if c.Organizer != "" && l.Organizer != c.Organizer {
		return false
	}
	return true
}

// Summary is the roll-up over the full collection.
type Summary struct {
	Total           int
	PendingApproval int
	Approved        int
	TicketsSold     int
}

// Summarize computes the summary over the full collection. TicketsSold
// counts across approved listings only; pending listings have no sales
// counter yet.
func Summarize(all []Listing) Summary {
	s := Summary{Total: len(all)}
	for _, l := range all {
		switch l.Status {
		case StatusPendingApproval:
			s.PendingApproval++
		case StatusApproved:
			s.Approved++
			s.TicketsSold += l.TicketsSold
		}
	}
	return s
}

// OrganizerOptions derives the organizer selector's option list:
// every distinct organizer in the collection, sorted.
func OrganizerOptions(all []Listing) []string {
	seen := make(map[string]struct{}, len(all))
	var options []string
	for _, l := range all {
		if _, ok := seen[l.Organizer]; ok {
			continue
		}
		seen[l.Organizer] = struct{}{}
		options = append(options, l.Organizer)
	}
	sort.Strings(options)
	return options
}
