package accounts

import (
	"context"
	"sync"
	"time"

	"ticketdesk/internal/listview"
	"ticketdesk/internal/logging"
)

// PageSize is the fixed table page size for the accounts console.
const PageSize = 10

// Renderer is the output collaborator. The console only decides what
// data must appear; how it is drawn is outside this package.
type Renderer interface {
	RenderPage(page listview.Page[Account], summary Summary)
	RenderLoading(active bool)
}

// Console orchestrates the accounts list: filtering, pagination,
// single edits, bulk actions and refresh.
type Console struct {
	logger   *logging.Logger
	session  *listview.Session[Account]
	ctrl     *listview.Controller[Account]
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
	Load           listview.Loader[Account]
	RefreshDelay   time.Duration
	DebounceWindow time.Duration
	// Now is the clock used for summary aggregation; defaults to
	// time.Now.
	Now func() time.Time
}

// NewConsole constructs an accounts Console.
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
		session:  listview.NewSession[Account](PageSize, logger),
		renderer: props.Renderer,
		now:      now,
	}
	c.ctrl = listview.NewController(listview.ControllerProperty[Account]{
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

// Refresh regenerates the collection. Re-entrant calls while a refresh
// is in flight are ignored.
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

// onRefresh resets the filters to defaults on a fresh collection and
// recomputes the summary, then renders.
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

// SetRoleFilter updates the role selector immediately.
func (c *Console) SetRoleFilter(role RoleFilter) {
	c.mu.Lock()
	c.criteria.Role = role
	c.mu.Unlock()
	c.applyFilters()
}

// SetStatusFilter updates the status selector immediately.
func (c *Console) SetStatusFilter(status Status) {
	c.mu.Lock()
	c.criteria.Status = status
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

// Account returns a snapshot of one account for the detail modal.
func (c *Console) Account(id string) (Account, bool) {
	return c.session.Find(id)
}

// SaveAccount writes the modal edit back: status, internal notes and
// the organizer role toggle. The buyer role is immutable. A stale id
// is a logged no-op.
func (c *Console) SaveAccount(id string, status Status, notes string, organizer bool) {
	applied := c.session.Update(id, func(a *Account) {
		a.Status = status
		a.Notes = notes
		switch {
		case organizer && !a.HasRole(RoleOrganizer):
			a.Roles = append(a.Roles, RoleOrganizer)
		case !organizer && a.HasRole(RoleOrganizer):
			roles := make([]Role, 0, len(a.Roles))
			for _, r := range a.Roles {
				if r != RoleOrganizer {
					roles = append(roles, r)
				}
			}
			a.Roles = roles
		}
	})
	if !applied {
		return
	}
	c.recomputeSummary()
	c.render()
}

// BulkSetStatus applies the bulk activate/suspend action to the
// selected ids; ids no longer present are skipped individually. The
// filtered view is intentionally not re-derived.
func (c *Console) BulkSetStatus(ids []string, status Status) int {
	applied := c.session.UpdateMany(ids, func(a *Account) {
		a.Status = status
	})
	c.logger.WithFields(map[string]interface{}{"applied": applied, "status": status}).
		Info().Msg("bulk status change")
	c.recomputeSummary()
	c.render()
	return applied
}

// CurrentPage returns the page slice the renderer last saw.
func (c *Console) CurrentPage() listview.Page[Account] {
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
