package datasource

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"ticketdesk/internal/app/accounts"
	"ticketdesk/internal/app/events"
	"ticketdesk/internal/app/orders"
	"ticketdesk/internal/app/promos"
)

// Default population sizes, matching the mock-driven pages.
const (
	DefaultAccountCount = 156
	DefaultOrderCount   = 55
	DefaultPromoCount   = 15
	PendingEventCount   = 5
	FallbackEventCount  = 15
)

// Generator produces deterministic pseudo-random collections standing
// in for a real backend: the same seed reproduces the same sequence of
// populations from a fresh Generator. Refresh safety comes from the
// controller's in-flight guard, not from here.
type Generator struct {
	mu   sync.Mutex
	rand *rand.Rand
	now  func() time.Time
}

// NewGenerator creates a generator with a fixed seed. Now defaults to
// time.Now.
func NewGenerator(seed int64, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		rand: rand.New(rand.NewSource(seed)),
		now:  now,
	}
}

var (
	accountNames = []string{
		"Nguyen An", "Tran Bich", "Le Cuong", "Pham Dung",
		"Vo Em", "Hoang Giang", "Do Hung",
	}
	accountRoleSets = [][]accounts.Role{
		{accounts.RoleBuyer},
		{accounts.RoleOrganizer},
		{accounts.RoleBuyer, accounts.RoleOrganizer},
	}
	accountStatuses = []accounts.Status{accounts.StatusActive, accounts.StatusSuspended}
)

// Accounts generates n platform accounts. Only organizers can be
// suspended; pure buyers are always active.
func (g *Generator) Accounts(n int) []accounts.Account {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	out := make([]accounts.Account, 0, n)
	for i := 0; i < n; i++ {
		name := accountNames[i%len(accountNames)]
		roles := append([]accounts.Role(nil), accountRoleSets[i%len(accountRoleSets)]...)

		a := accounts.Account{
			ID:       fmt.Sprintf("USR%d", 1001+i),
			Name:     name,
			Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@email.com",
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%d", 1001+i),
			Roles:    roles,
			Status:   accounts.StatusActive,
			JoinedAt: now.Add(-time.Duration(g.rand.Int63n(int64(365 * 24 * time.Hour)))),
		}
		if a.HasRole(accounts.RoleOrganizer) {
			a.Status = accountStatuses[i%len(accountStatuses)]
			a.EventsCreated = g.rand.Intn(10)
		}
		if a.HasRole(accounts.RoleBuyer) {
			a.TicketsBought = g.rand.Intn(50)
		}
		out = append(out, a)
	}
	return out
}

var (
	orderEvents = []string{
		"The Eras Tour", "Born Pink World Tour",
		"Music of the Spheres", "MTP Sky Tour",
	}
	orderCustomers = []struct{ Name, Email string }{
		{"Nguyen Van An", "an.nv@email.com"},
		{"Tran Thi Bich", "bich.tt@email.com"},
		{"Le Hoang Cuong", "cuong.lh@email.com"},
		{"Pham Thi Dung", "dung.pt@email.com"},
	}
	orderTicketTypes = []orders.TicketLine{
		{Type: "VIP", Price: 2_500_000},
		{Type: "Standard", Price: 1_200_000},
	}
)

// Orders generates n ticket orders placed within the last 30 days,
// alternating paid and pending.
func (g *Generator) Orders(n int) []orders.Order {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	statuses := []orders.Status{orders.StatusPaid, orders.StatusPending}
	out := make([]orders.Order, 0, n)
	for i := 0; i < n; i++ {
		customer := orderCustomers[i%len(orderCustomers)]
		line := orderTicketTypes[i%len(orderTicketTypes)]
		line.Quantity = 1 + g.rand.Intn(2)

		out = append(out, orders.Order{
			ID:            fmt.Sprintf("TNV%d", 10001+i),
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
			Event:         orderEvents[i%len(orderEvents)],
			PlacedAt:      now.Add(-time.Duration(g.rand.Int63n(int64(30 * 24 * time.Hour)))),
			Status:        statuses[i%len(statuses)],
			Tickets:       []orders.TicketLine{line},
		})
	}
	return out
}

var (
	pendingEventNames = []string{
		"Rap Show Underground", "Trinh Cong Son Night",
		"Summer EDM Festival", "So Do Stage Play",
		"Contemporary Art Expo",
	}
	pendingEventOrganizers = []string{
		"SpaceSpeakers", "Trinh Cong Son Family", "VinaSound",
		"Idecaf Theatre", "VN Fine Arts Museum",
	}
	pendingEventLocations = []string{
		"Hanoi Opera House", "Yen So Park", "SECC District 7, HCMC",
	}
)

// PendingListings generates n event listings awaiting approval. Their
// sales counter stays zero until approval starts one.
func (g *Generator) PendingListings(n int) []events.Listing {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	out := make([]events.Listing, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, events.Listing{
			ID:        fmt.Sprintf("MOCK%d", 101+i),
			Name:      pendingEventNames[i%len(pendingEventNames)],
			Poster:    fmt.Sprintf("https://picsum.photos/id/%d/300/200", 200+i),
			Organizer: pendingEventOrganizers[i%len(pendingEventOrganizers)],
			StartsAt:  now.Add(time.Duration(g.rand.Int63n(int64(60 * 24 * time.Hour)))),
			Location:  pendingEventLocations[i%len(pendingEventLocations)],
			Status:    events.StatusPendingApproval,
		})
	}
	return out
}

var promoPrefixes = []string{"SUMMER", "VIP", "WELCOME", "EVENT", "FLASH", "DEAL"}

// PromoCodes generates n promo codes. The first five are already
// expired with their usage at the limit; the rest expire later this
// year. Codes are unique, uppercase, suffixed per prefix cycle.
func (g *Generator) PromoCodes(n int) []promos.Code {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	year := now.Year()
	endOfYear := time.Date(year, time.December, 31, 0, 0, 0, 0, now.Location())

	out := make([]promos.Code, 0, n)
	for i := 0; i < n; i++ {
		expired := i < 5
		limit := 100 + i*10

		var expiresAt time.Time
		used := 0
		if expired {
			expiresAt = now.AddDate(0, 0, -(i+1)*10)
			used = limit
		} else {
			expiresAt = now.AddDate(0, 0, 10+g.rand.Intn(81))
			if expiresAt.After(endOfYear) {
				expiresAt = endOfYear
			}
			used = g.rand.Intn(limit)
		}

		code := fmt.Sprintf("%s%d", promoPrefixes[i%len(promoPrefixes)], year)
		if cycle := i / len(promoPrefixes); cycle > 0 {
			code += string(rune('A' + cycle - 1))
		}

		kind := promos.KindPercentage
		value := int64((i%5 + 1) * 5)
		if i%2 != 0 {
			kind = promos.KindFixedAmount
			value = int64((i%5 + 1) * 20_000)
		}

		out = append(out, promos.Code{
			ID:          fmt.Sprintf("PROMO%d", 1001+i),
			Code:        code,
			Description: "Special discount for events",
			Kind:        kind,
			Value:       value,
			Limit:       limit,
			Used:        used,
			ExpiresAt:   expiresAt,
		})
	}
	return out
}

// shuffle permutes a listing slice in place.
func (g *Generator) shuffle(items []events.Listing) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// soldFraction picks the simulated sell-through for an on-sale ticket
// type, between 30% and 80% of capacity.
func (g *Generator) soldFraction() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return 0.3 + g.rand.Float64()*0.5
}
