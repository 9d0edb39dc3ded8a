package datasource

import (
	"context"

	"ticketdesk/internal/app/accounts"
	"ticketdesk/internal/app/events"
	"ticketdesk/internal/app/orders"
	"ticketdesk/internal/app/promos"
	"ticketdesk/internal/listview"
	"ticketdesk/internal/logging"
)

// AccountsLoader regenerates the accounts population on every call.
func AccountsLoader(g *Generator, n int) listview.Loader[accounts.Account] {
	return func(context.Context) []accounts.Account {
		return g.Accounts(n)
	}
}

// OrdersLoader regenerates the orders population on every call.
func OrdersLoader(g *Generator, n int) listview.Loader[orders.Order] {
	return func(context.Context) []orders.Order {
		return g.Orders(n)
	}
}

// PromosLoader regenerates the promo code population on every call.
func PromosLoader(g *Generator, n int) listview.Loader[promos.Code] {
	return func(context.Context) []promos.Code {
		return g.PromoCodes(n)
	}
}

// EventsLoader loads the catalog, converts it to approved listings and
// mixes in a handful of generated pending listings. When the catalog
// is unreachable the loader logs a diagnostic and proceeds with a
// fully generated pending population; acquisition failure never
// surfaces as a blocking error.
func EventsLoader(logger *logging.Logger, g *Generator, catalog CatalogSource) listview.Loader[events.Listing] {
	if logger == nil {
		logger = logging.Nop()
	}
	return func(ctx context.Context) []events.Listing {
		raw, err := catalog.Fetch(ctx)
		if err != nil {
			logger.Error(err, "event catalog unavailable, using generated data")
			return g.PendingListings(FallbackEventCount)
		}

		listings := make([]events.Listing, 0, len(raw)+PendingEventCount)
		for _, e := range raw {
			listings = append(listings, g.Listing(e))
		}
		listings = append(listings, g.PendingListings(PendingEventCount)...)
		g.shuffle(listings)
		return listings
	}
}
