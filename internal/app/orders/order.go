package orders

import (
	"time"

	"ticketdesk/internal/listview"
)

// Status is the payment state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// TicketLine is one ticket type within an order.
type TicketLine struct {
	Type     string
	Price    int64
	Quantity int
}

// Order is one ticket purchase as the admin console sees it. The
// order total is derived from its lines, never stored.
type Order struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	Event         string
	PlacedAt      time.Time
	Status        Status
	Tickets       []TicketLine
}

// RecordID implements listview.Record.
func (o Order) RecordID() string { return o.ID }

// Total is the sum of price times quantity across all lines.
func (o Order) Total() int64 {
	var total int64
	for _, t := range o.Tickets {
		total += t.Price * int64(t.Quantity)
	}
	return total
}

// Criteria is the active filter set for the orders console. From and
// To bound the order date inclusively by calendar day; a zero value
// leaves that side unbounded.
type Criteria struct {
	Query  string
	Status Status
	Event  string
	From   time.Time
	To     time.Time
}

// Matches reports whether the order satisfies every active criterion.
// The text query searches customer name, customer email and id.
func (c Criteria) Matches(o Order) bool {
	if !listview.TextMatch(c.Query, o.CustomerName, o.CustomerEmail, o.ID) {
		return false
	}
	if c.Status != "" && o.Status != c.Status {
		return false
	}
	if c.Event != "" && o.Event != c.Event {
		return false
	}
	if !c.From.IsZero() && o.PlacedAt.Before(c.From) {
		return false
	}
	if !c.To.IsZero() {
		// Inclusive through the end of To's calendar day, whatever
		// time of day To carries.
		y, m, d := c.To.Date()
		if !o.PlacedAt.Before(time.Date(y, m, d+1, 0, 0, 0, 0, c.To.Location())) {
			return false
		}
	}
	return true
}

// Summary is the roll-up over the full collection.
type Summary struct {
	Total     int
	Pending   int
	PaidToday int
}

// Summarize computes the summary over the full collection. PaidToday
// counts paid orders placed on the same calendar day as now.
func Summarize(all []Order, now time.Time) Summary {
	s := Summary{Total: len(all)}
	ny, nm, nd := now.Date()
	for _, o := range all {
		switch o.Status {
		case StatusPending:
			s.Pending++
		case StatusPaid:
			oy, om, od := o.PlacedAt.Date()
			if oy == ny && om == nm && od == nd {
				s.PaidToday++
			}
		}
	}
	return s
}

// EventOptions derives the event selector's option list: every
// distinct event name in first-appearance order.
func EventOptions(all []Order) []string {
	seen := make(map[string]struct{}, len(all))
	var options []string
	for _, o := range all {
		if _, ok := seen[o.Event]; ok {
			continue
		}
		seen[o.Event] = struct{}{}
		options = append(options, o.Event)
	}
	return options
}
