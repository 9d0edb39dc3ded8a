package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"ticketdesk/internal/app/events"
)

// CatalogTicketType is one ticket tier within a catalog event.
type CatalogTicketType struct {
	Name    string `json:"name"`
	Total   int    `json:"total"`
	SoldOut bool   `json:"soldOut"`
}

// CatalogEvent is the raw shape of one event in the catalog resource.
type CatalogEvent struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Poster      string              `json:"poster"`
	Organizer   string              `json:"organizer"`
	StartsAt    time.Time           `json:"startsAt"`
	Location    string              `json:"location"`
	TicketTypes []CatalogTicketType `json:"ticketTypes"`
}

// CatalogSource supplies the raw event catalog. Failures are reported
// upward so the loader can fall back to generated data.
type CatalogSource interface {
	Fetch(ctx context.Context) ([]CatalogEvent, error)
}

// FileCatalog reads the catalog from a fixed on-disk path.
type FileCatalog struct {
	Path string
}

// Fetch implements CatalogSource.
func (f FileCatalog) Fetch(_ context.Context) ([]CatalogEvent, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", f.Path, err)
	}
	var catalog []CatalogEvent
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", f.Path, err)
	}
	return catalog, nil
}

// RemoteCatalog fetches the catalog resource over HTTP.
type RemoteCatalog struct {
	client *resty.Client
	url    string
}

// NewRemoteCatalog creates a catalog source for the given URL.
func NewRemoteCatalog(url string) RemoteCatalog {
	return RemoteCatalog{
		client: resty.New().SetTimeout(10 * time.Second),
		url:    url,
	}
}

// Fetch implements CatalogSource.
func (r RemoteCatalog) Fetch(ctx context.Context) ([]CatalogEvent, error) {
	var catalog []CatalogEvent
	resp, err := r.client.R().
		SetContext(ctx).
		SetResult(&catalog).
		Get(r.url)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog %s: %w", r.url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch catalog %s: status %s", r.url, resp.Status())
	}
	return catalog, nil
}

// Listing converts one catalog event into an approved listing. The
// sales counter is computed once here: sold-out tiers count in full,
// on-sale tiers at the generator's simulated sell-through.
func (g *Generator) Listing(e CatalogEvent) events.Listing {
	sold := 0
	for _, tt := range e.TicketTypes {
		if tt.SoldOut {
			sold += tt.Total
		} else {
			sold += int(float64(tt.Total) * g.soldFraction())
		}
	}
	return events.Listing{
		ID:          e.ID,
		Name:        e.Name,
		Poster:      e.Poster,
		Organizer:   e.Organizer,
		StartsAt:    e.StartsAt,
		Location:    e.Location,
		TicketsSold: sold,
		Status:      events.StatusApproved,
	}
}
