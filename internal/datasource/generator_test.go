package datasource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketdesk/internal/app/accounts"
	"ticketdesk/internal/app/events"
	"ticketdesk/internal/app/orders"
	"ticketdesk/internal/app/promos"
)

var testNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func TestGeneratorIsDeterministic(t *testing.T) {
	a := NewGenerator(7, fixedNow).Accounts(DefaultAccountCount)
	b := NewGenerator(7, fixedNow).Accounts(DefaultAccountCount)
	assert.Equal(t, a, b)

	x := NewGenerator(7, fixedNow).Orders(DefaultOrderCount)
	y := NewGenerator(8, fixedNow).Orders(DefaultOrderCount)
	assert.NotEqual(t, x, y)
}

func TestAccountsPopulation(t *testing.T) {
	all := NewGenerator(1, fixedNow).Accounts(DefaultAccountCount)
	require.Len(t, all, DefaultAccountCount)

	assert.Equal(t, "USR1001", all[0].ID)
	assert.Equal(t, "USR1156", all[len(all)-1].ID)

	yearAgo := testNow.AddDate(0, 0, -365)
	for _, a := range all {
		assert.NotEmpty(t, a.Name)
		assert.Contains(t, a.Email, "@email.com")
		assert.True(t, a.JoinedAt.After(yearAgo), "joined within the last year")
		assert.False(t, a.JoinedAt.After(testNow))
		if a.Status == accounts.StatusSuspended {
			assert.True(t, a.HasRole(accounts.RoleOrganizer), "only organizers are suspendable")
		}
	}

	s := accounts.Summarize(all, testNow)
	assert.Positive(t, s.Organizers)
	assert.Positive(t, s.Suspended)
}

func TestOrdersPopulation(t *testing.T) {
	all := NewGenerator(1, fixedNow).Orders(DefaultOrderCount)
	require.Len(t, all, DefaultOrderCount)

	assert.Equal(t, "TNV10001", all[0].ID)
	assert.Equal(t, "TNV10055", all[len(all)-1].ID)

	monthAgo := testNow.AddDate(0, 0, -30)
	var paid, pending int
	for i, o := range all {
		assert.True(t, o.PlacedAt.After(monthAgo))
		assert.False(t, o.PlacedAt.After(testNow))
		require.Len(t, o.Tickets, 1)
		assert.Positive(t, o.Total())

		switch o.Status {
		case orders.StatusPaid:
			paid++
			assert.Zero(t, i%2)
		case orders.StatusPending:
			pending++
		}
	}
	assert.Equal(t, 28, paid)
	assert.Equal(t, 27, pending)
}

func TestPendingListingsPopulation(t *testing.T) {
	all := NewGenerator(1, fixedNow).PendingListings(PendingEventCount)
	require.Len(t, all, PendingEventCount)

	for _, l := range all {
		assert.Equal(t, events.StatusPendingApproval, l.Status)
		assert.Zero(t, l.TicketsSold)
		assert.True(t, l.StartsAt.After(testNow), "pending events start in the future")
	}
	assert.Equal(t, "MOCK101", all[0].ID)
	assert.Equal(t, "MOCK105", all[4].ID)
}

func TestPromoCodesPopulation(t *testing.T) {
	all := NewGenerator(1, fixedNow).PromoCodes(DefaultPromoCount)
	require.Len(t, all, DefaultPromoCount)

	s := promos.Summarize(all, testNow)
	assert.Equal(t, 5, s.Expired)
	assert.Equal(t, 10, s.Active)

	endOfYear := time.Date(testNow.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	seen := make(map[string]struct{}, len(all))
	for i, c := range all {
		_, dup := seen[c.Code]
		assert.False(t, dup, "code %s repeats", c.Code)
		seen[c.Code] = struct{}{}

		if i < 5 {
			assert.Equal(t, promos.StatusExpired, c.Status(testNow))
			assert.Equal(t, c.Limit, c.Used)
		} else {
			assert.Less(t, c.Used, c.Limit)
			assert.False(t, c.ExpiresAt.After(endOfYear))
		}
	}
}

func TestCatalogEventToListing(t *testing.T) {
	g := NewGenerator(1, fixedNow)

	e := CatalogEvent{
		ID:        "EVT001",
		Name:      "The Eras Tour",
		Organizer: "Live Nation VN",
		StartsAt:  testNow.AddDate(0, 1, 0),
		Location:  "My Dinh Stadium",
		TicketTypes: []CatalogTicketType{
			{Name: "VIP", Total: 100, SoldOut: true},
			{Name: "Standard", Total: 1000, SoldOut: false},
		},
	}

	l := g.Listing(e)
	assert.Equal(t, events.StatusApproved, l.Status)
	assert.Equal(t, "EVT001", l.ID)
	// Sold-out tier counts in full; the on-sale tier sells 30-80%.
	assert.GreaterOrEqual(t, l.TicketsSold, 100+300)
	assert.LessOrEqual(t, l.TicketsSold, 100+800)
}
