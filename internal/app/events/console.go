package events

import (
	"context"
	"sync"
	"time"

	"ticketdesk/internal/listview"
	"ticketdesk/internal/logging"
)

// PageSize is the fixed table page size for the events console.
const PageSize = 10

// Renderer is the output collaborator for the events console.
type Renderer interface {
	RenderPage(page listview.Page[Listing], summary Summary)
	RenderLoading(active bool)
}

// Console orchestrates the event review list.
type Console struct {
	logger   *logging.Logger
	session  *listview.Session[Listing]
	ctrl     *listview.Controller[Listing]
	renderer Renderer

	mu       sync.Mutex
	criteria Criteria
	summary  Summary
}

// ConsoleProperty carries the dependencies for a Console.
type ConsoleProperty struct {
	Logger         *logging.Logger
	Renderer       Renderer
	Load           listview.Loader[Listing]
	RefreshDelay   time.Duration
	DebounceWindow time.Duration
}

// NewConsole constructs an events Console.
func NewConsole(props ConsoleProperty) *Console {
	logger := props.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	c := &Console{
		logger:   logger,
		session:  listview.NewSession[Listing](PageSize, logger),
		renderer: props.Renderer,
	}
	c.ctrl = listview.NewController(listview.ControllerProperty[Listing]{
		Logger:         logger,
		Session:        c.session,
		Load:           props.Load,
		RefreshDelay:   props.RefreshDelay,
		DebounceWindow: props.DebounceWindow,
		OnLoading:      c.renderLoading,
		OnRefresh:      c.onRefresh,
	})
	return c
}

// Start seeds the console with its initial collection.
func (c *Console) Start(ctx context.Context) error {
	return c.ctrl.Start(ctx)
}

// Refresh re-acquires the collection; re-entrant calls are ignored
// while one refresh is in flight.
func (c *Console) Refresh(ctx context.Context) error {
	return c.ctrl.Refresh(ctx)
}

// Stop cancels pending debounced input.
func (c *Console) Stop() {
	c.ctrl.Stop()
}

// State returns the lifecycle state.
func (c *Console) State() listview.State {
	return c.ctrl.State()
}

func (c *Console) onRefresh() {
	c.mu.Lock()
	c.criteria = Criteria{}
	c.mu.Unlock()

	c.session.SetFilter()
	c.recomputeSummary()
	c.render()
}

// SetQuery updates the free-text filter after the debounce window.
func (c *Console) SetQuery(query string) {
	c.ctrl.QueryChanged(func() {
		c.mu.Lock()
		c.criteria.Query = query
		c.mu.Unlock()
		c.applyFilters()
	})
}

// SetStatusFilter updates the status selector immediately.
func (c *Console) SetStatusFilter(status Status) {
	c.mu.Lock()
	c.criteria.Status = status
	c.mu.Unlock()
	c.applyFilters()
}

// SetOrganizerFilter updates the organizer selector immediately.
func (c *Console) SetOrganizerFilter(organizer string) {
	c.mu.Lock()
	c.criteria.Organizer = organizer
	c.mu.Unlock()
	c.applyFilters()
}

func (c *Console) applyFilters() {
	crit := c.Criteria()
	c.session.SetFilter(crit.Matches)
	c.render()
}

// GoToPage navigates to an explicit page; out-of-range requests are
// ignored.
func (c *Console) GoToPage(n int) {
	if c.session.GoToPage(n) {
		c.render()
	}
}

// Listing returns a snapshot of one listing.
func (c *Console) Listing(id string) (Listing, bool) {
	return c.session.Find(id)
}

// Approve transitions a listing from pending_approval to approved and
// zeroes its sales counter. Approving anything else, including a stale
// id, is a logged no-op.
func (c *Console) Approve(id string) {
	listing, ok := c.session.Find(id)
	if !ok || listing.Status != StatusPendingApproval {
		c.logger.WithFields(map[string]interface{}{"id": id}).
			Warn().Msg("approve ignored: listing missing or not pending")
		return
	}

	c.session.Update(id, func(l *Listing) {
		l.Status = StatusApproved
		l.TicketsSold = 0
	})
	c.recomputeSummary()
	c.render()
}

// OrganizerOptions derives the organizer filter's option list from the
// full collection.
func (c *Console) OrganizerOptions() []string {
	return OrganizerOptions(c.session.All())
}

// CurrentPage returns the page slice the renderer last saw.
func (c *Console) CurrentPage() listview.Page[Listing] {
	return c.session.CurrentPage()
}

// Criteria returns the active filter set.
func (c *Console) Criteria() Criteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

// Summary returns the latest roll-up.
func (c *Console) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary
}

func (c *Console) recomputeSummary() {
	s := Summarize(c.session.All())
	c.mu.Lock()
	c.summary = s
	c.mu.Unlock()
}

func (c *Console) render() {
	if c.renderer == nil {
		return
	}
	c.renderer.RenderPage(c.session.CurrentPage(), c.Summary())
}

func (c *Console) renderLoading(active bool) {
	if c.renderer == nil {
		return
	}
	c.renderer.RenderLoading(active)
}
