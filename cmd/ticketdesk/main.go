package main

import (
	"context"
	"log"
	"time"

	"ticketdesk/internal/app/accounts"
	"ticketdesk/internal/app/events"
	"ticketdesk/internal/app/orders"
	"ticketdesk/internal/app/promos"
	"ticketdesk/internal/datasource"
	"ticketdesk/internal/logging"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	gen := datasource.NewGenerator(cfg.Seed, time.Now)

	var catalog datasource.CatalogSource = datasource.FileCatalog{Path: cfg.CatalogPath}
	if cfg.CatalogURL != "" {
		catalog = datasource.NewRemoteCatalog(cfg.CatalogURL)
	}

	accountsConsole := accounts.NewConsole(accounts.ConsoleProperty{
		Logger:         logger.With("accounts"),
		Renderer:       accountsRenderer{},
		Load:           datasource.AccountsLoader(gen, datasource.DefaultAccountCount),
		RefreshDelay:   cfg.RefreshDelay,
		DebounceWindow: cfg.DebounceWindow,
	})
	eventsConsole := events.NewConsole(events.ConsoleProperty{
		Logger:         logger.With("events"),
		Renderer:       eventsRenderer{},
		Load:           datasource.EventsLoader(logger.With("events"), gen, catalog),
		RefreshDelay:   cfg.RefreshDelay,
		DebounceWindow: cfg.DebounceWindow,
	})
	ordersConsole := orders.NewConsole(orders.ConsoleProperty{
		Logger:         logger.With("orders"),
		Renderer:       ordersRenderer{},
		Load:           datasource.OrdersLoader(gen, datasource.DefaultOrderCount),
		RefreshDelay:   cfg.RefreshDelay,
		DebounceWindow: cfg.DebounceWindow,
	})
	promosConsole := promos.NewConsole(promos.ConsoleProperty{
		Logger:         logger.With("promos"),
		Renderer:       promosRenderer{now: time.Now},
		Load:           datasource.PromosLoader(gen, datasource.DefaultPromoCount),
		RefreshDelay:   cfg.RefreshDelay,
		DebounceWindow: cfg.DebounceWindow,
	})

	ctx := context.Background()
	for _, start := range []func(context.Context) error{
		accountsConsole.Start,
		eventsConsole.Start,
		ordersConsole.Start,
		promosConsole.Start,
	} {
		if err := start(ctx); err != nil {
			log.Fatal(err)
		}
	}

	// A short operator session so every console renders each kind of
	// interaction at least once.

	accountsConsole.SetStatusFilter(accounts.StatusSuspended)
	accountsConsole.GoToPage(2)
	if a, ok := accountsConsole.Account("USR1002"); ok {
		accountsConsole.SaveAccount(a.ID, accounts.StatusActive, "reinstated after review", true)
	}
	accountsConsole.SetStatusFilter("")
	accountsConsole.BulkSetStatus([]string{"USR1004", "USR1007", "USR1010"}, accounts.StatusSuspended)

	eventsConsole.SetStatusFilter(events.StatusPendingApproval)
	if pending := eventsConsole.CurrentPage().Items; len(pending) > 0 {
		eventsConsole.Approve(pending[0].ID)
	}
	eventsConsole.SetStatusFilter("")

	ordersConsole.SetDateRange(time.Now().AddDate(0, 0, -7), time.Now())
	ordersConsole.GoToPage(2)
	ordersConsole.SaveStatus("TNV10002", orders.StatusPaid)

	if _, err := promosConsole.Create(promos.CreateInput{
		Code:        promosConsole.RandomCode("TANIVAN"),
		Description: "Season opener discount",
		Kind:        promos.KindPercentage,
		Value:       15,
		Limit:       200,
		ExpiresAt:   time.Now().AddDate(0, 1, 0),
	}); err != nil {
		logger.Error(err, "promo create rejected")
	}
	promosConsole.SetStatusFilter(promos.StatusActive)

	accountsConsole.Stop()
	eventsConsole.Stop()
	ordersConsole.Stop()
	promosConsole.Stop()
}
