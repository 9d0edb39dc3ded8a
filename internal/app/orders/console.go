package orders

import (
	"context"
	"sync"
	"time"

	"ticketdesk/internal/listview"
	"ticketdesk/internal/logging"
)

// PageSize is the fixed table page size for the orders console.
const PageSize = 10

// Renderer is the output collaborator for the orders console.
type Renderer interface {
	RenderPage(page listview.Page[Order], summary Summary)
	RenderLoading(active bool)
}

// Console orchestrates the order management list.
type Console struct {
	logger   *logging.Logger
	session  *listview.Session[Order]
	ctrl     *listview.Controller[Order]
	renderer Renderer
	now      func() time.Time

	mu       sync.Mutex
	criteria Criteria
	summary  Summary
}

// ConsoleProperty carries the dependencies for a Console.
type ConsoleProperty struct {
	Logger         *logging.Logger
	Renderer       Renderer
	Load           listview.Loader[Order]
	RefreshDelay   time.Duration
	DebounceWindow time.Duration
	Now            func() time.Time
}

// NewConsole constructs an orders Console.
func NewConsole(props ConsoleProperty) *Console {
	logger := props.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	now := props.Now
	if now == nil {
		now = time.Now
	}

	c := &Console{
		logger:   logger,
		session:  listview.NewSession[Order](PageSize, logger),
		renderer: props.Renderer,
		now:      now,
	}
	c.ctrl = listview.NewController(listview.ControllerProperty[Order]{
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

// SetEventFilter updates the event selector immediately.
func (c *Console) SetEventFilter(event string) {
	c.mu.Lock()
	c.criteria.Event = event
	c.mu.Unlock()
	c.applyFilters()
}

// SetDateRange updates the inclusive date bounds immediately. A zero
// time leaves that side unbounded.
func (c *Console) SetDateRange(from, to time.Time) {
	c.mu.Lock()
	c.criteria.From = from
	c.criteria.To = to
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

// Order returns a snapshot of one order for the detail modal.
func (c *Console) Order(id string) (Order, bool) {
	return c.session.Find(id)
}

// SaveStatus writes the modal's status edit back. A stale id is a
// logged no-op.
func (c *Console) SaveStatus(id string, status Status) {
	if !c.session.Update(id, func(o *Order) { o.Status = status }) {
		return
	}
	c.recomputeSummary()
	c.render()
}

// Cancel marks an order cancelled. Confirmation happens upstream;
// once invoked the transition is unconditional for a live id.
func (c *Console) Cancel(id string) {
	c.SaveStatus(id, StatusCancelled)
}

// EventOptions derives the event filter's option list from the full
// collection.
func (c *Console) EventOptions() []string {
	return EventOptions(c.session.All())
}

// CurrentPage returns the page slice the renderer last saw.
func (c *Console) CurrentPage() listview.Page[Order] {
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
	s := Summarize(c.session.All(), c.now())
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
