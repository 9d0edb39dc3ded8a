package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketdesk/internal/listview"
)

type captureRenderer struct {
	pages []listview.Page[Order]
}

func (r *captureRenderer) RenderPage(page listview.Page[Order], _ Summary) {
	r.pages = append(r.pages, page)
}

func (r *captureRenderer) RenderLoading(bool) {}

var testNow = time.Date(2026, time.September, 1, 15, 0, 0, 0, time.UTC)

func fixtureOrders(n int) []Order {
	events := []string{"Summer Fest", "Rock Night", "Jazz Evening"}
	out := make([]Order, 0, n)
	for i := 0; i < n; i++ {
		status := StatusPaid
		if i%2 == 1 {
			status = StatusPending
		}
		out = append(out, Order{
			ID:            fmt.Sprintf("TNV%05d", 10001+i),
			CustomerName:  fmt.Sprintf("Customer %d", i),
			CustomerEmail: fmt.Sprintf("customer%d@email.com", i),
			Event:         events[i%3],
			PlacedAt:      testNow.AddDate(0, 0, -i),
			Status:        status,
			Tickets: []TicketLine{
				{Type: "Standard", Price: 1_200_000, Quantity: 2},
			},
		})
	}
	return out
}

func newTestConsole(t *testing.T, seed []Order) *Console {
	t.Helper()
	c := NewConsole(ConsoleProperty{
		Renderer: &captureRenderer{},
		Load:     func(context.Context) []Order { return seed },
		Now:      func() time.Time { return testNow },
	})
	require.NoError(t, c.Start(context.Background()))
	return c
}

func TestOrderTotalDerivedFromLines(t *testing.T) {
	o := Order{Tickets: []TicketLine{
		{Type: "VIP", Price: 2_500_000, Quantity: 2},
		{Type: "Standard", Price: 1_200_000, Quantity: 3},
	}}
	assert.Equal(t, int64(8_600_000), o.Total())

	assert.Zero(t, Order{}.Total())
}

func TestDateRangeBoundsAreInclusive(t *testing.T) {
	day := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	crit := Criteria{From: day, To: day.AddDate(0, 0, 2)}

	tests := []struct {
		name     string
		placedAt time.Time
		want     bool
	}{
		{"day before from", day.Add(-time.Hour), false},
		{"midnight of from", day, true},
		{"middle of range", day.AddDate(0, 0, 1), true},
		{"late on to day", day.AddDate(0, 0, 2).Add(23 * time.Hour), true},
		{"midnight after to", day.AddDate(0, 0, 3), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, crit.Matches(Order{PlacedAt: tc.placedAt}))
		})
	}
}

func TestDateRangeToWithTimeComponentStaysOnItsDay(t *testing.T) {
	// A To carrying a time of day still bounds at the end of that
	// calendar day, not a day past the instant.
	to := time.Date(2026, time.August, 22, 15, 30, 0, 0, time.UTC)
	crit := Criteria{To: to}

	assert.True(t, crit.Matches(Order{PlacedAt: to.Add(8 * time.Hour)}))
	assert.False(t, crit.Matches(Order{PlacedAt: to.Add(10 * time.Hour)}))
}

func TestDateRangeZeroSidesUnbounded(t *testing.T) {
	old := Order{PlacedAt: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)}

	assert.True(t, Criteria{}.Matches(old))
	assert.True(t, Criteria{To: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)}.Matches(old))
	assert.False(t, Criteria{From: time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)}.Matches(old))
}

func TestSummarizePaidTodayByCalendarDay(t *testing.T) {
	all := fixtureOrders(6)
	// Paid late yesterday must not count even though it is within 24h.
	all = append(all, Order{
		ID:       "TNV99999",
		Status:   StatusPaid,
		PlacedAt: testNow.Add(-16 * time.Hour),
	})

	s := Summarize(all, testNow)
	assert.Equal(t, 7, s.Total)
	assert.Equal(t, 3, s.Pending)
	assert.Equal(t, 1, s.PaidToday)
}

func TestPageCountAndOutOfRangeNavigation(t *testing.T) {
	c := newTestConsole(t, fixtureOrders(56))

	page := c.CurrentPage()
	assert.Equal(t, 56, page.TotalItems)
	assert.Equal(t, 6, page.TotalPages)

	c.GoToPage(7)
	assert.Equal(t, 1, c.CurrentPage().Number)

	c.GoToPage(6)
	got := c.CurrentPage()
	assert.Equal(t, 6, got.Number)
	assert.Len(t, got.Items, 6)
}

func TestSaveStatusRefiltersView(t *testing.T) {
	c := newTestConsole(t, fixtureOrders(6))
	c.SetStatusFilter(StatusPending)
	require.Equal(t, 3, c.CurrentPage().TotalItems)

	c.SaveStatus("TNV10001", StatusPending) // was paid
	assert.Equal(t, 4, c.CurrentPage().TotalItems)

	c.Cancel("TNV10001")
	assert.Equal(t, 3, c.CurrentPage().TotalItems)
	o, ok := c.Order("TNV10001")
	require.True(t, ok)
	assert.Equal(t, StatusCancelled, o.Status)
}

func TestSaveStatusStaleIDIsNoOp(t *testing.T) {
	c := newTestConsole(t, fixtureOrders(6))
	before := c.Summary()

	c.SaveStatus("TNV99999", StatusPaid)

	assert.Equal(t, before, c.Summary())
}

func TestEventOptionsFirstAppearanceOrder(t *testing.T) {
	c := newTestConsole(t, fixtureOrders(6))

	assert.Equal(t, []string{"Summer Fest", "Rock Night", "Jazz Evening"}, c.EventOptions())
}

func TestEventFilterCombinesWithDateRange(t *testing.T) {
	c := newTestConsole(t, fixtureOrders(12))

	c.SetEventFilter("Summer Fest") // orders 0, 3, 6, 9
	require.Equal(t, 4, c.CurrentPage().TotalItems)

	c.SetDateRange(testNow.AddDate(0, 0, -7), testNow)
	assert.Equal(t, 3, c.CurrentPage().TotalItems)
}
