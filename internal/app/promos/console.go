package promos

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"ticketdesk/internal/listview"
	"ticketdesk/internal/logging"
)

// PageSize is the fixed grid page size for the promos console.
const PageSize = 6

// ErrCodeExists is returned when a create collides with an existing
// code, compared case-insensitively.
var ErrCodeExists = errors.New("promo code already exists")

var validate = validator.New()

// Renderer is the output collaborator for the promos console.
type Renderer interface {
	RenderPage(page listview.Page[Code], summary Summary)
	RenderLoading(active bool)
}

// CreateInput is the create-form payload. Validation failures are
// returned to the caller so the form can be corrected and resubmitted.
type CreateInput struct {
	Code        string    `validate:"required"`
	Description string    `validate:"required"`
	Kind        Kind      `validate:"required,oneof=percentage fixed_amount"`
	Value       int64     `validate:"required,gt=0"`
	Limit       int       `validate:"required,gt=0"`
	ExpiresAt   time.Time `validate:"required"`
}

// UpdateInput is the edit-form payload. The code string itself is
// immutable once created and is absent here.
type UpdateInput struct {
	Description string    `validate:"required"`
	Kind        Kind      `validate:"required,oneof=percentage fixed_amount"`
	Value       int64     `validate:"required,gt=0"`
	Limit       int       `validate:"required,gt=0"`
	ExpiresAt   time.Time `validate:"required"`
}

// Console orchestrates the promo code grid.
type Console struct {
	logger   *logging.Logger
	session  *listview.Session[Code]
	ctrl     *listview.Controller[Code]
	renderer Renderer
	now      func() time.Time
	rand     *rand.Rand

	mu       sync.Mutex
	criteria Criteria
	summary  Summary
}

// ConsoleProperty carries the dependencies for a Console.
type ConsoleProperty struct {
	Logger         *logging.Logger
	Renderer       Renderer
	Load           listview.Loader[Code]
	RefreshDelay   time.Duration
	DebounceWindow time.Duration
	Now            func() time.Time
	// Rand drives RandomCode; defaults to a time-seeded source.
	Rand *rand.Rand
}

// NewConsole constructs a promos Console.
func NewConsole(props ConsoleProperty) *Console {
	logger := props.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	now := props.Now
	if now == nil {
		now = time.Now
	}
	rng := props.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	c := &Console{
		logger:   logger,
		session:  listview.NewSession[Code](PageSize, logger),
		renderer: props.Renderer,
		now:      now,
		rand:     rng,
	}
	c.ctrl = listview.NewController(listview.ControllerProperty[Code]{
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

func (c *Console) applyFilters() {
	crit := c.Criteria()
	c.session.SetFilter(crit.Matches(c.now()))
	c.render()
}

// GoToPage navigates to an explicit page; out-of-range requests are
// ignored.
func (c *Console) GoToPage(n int) {
	if c.session.GoToPage(n) {
		c.render()
	}
}

// Code returns a snapshot of one code for the edit modal.
func (c *Console) Code(id string) (Code, bool) {
	return c.session.Find(id)
}

// Create validates the form, rejects duplicate codes and inserts the
// new code at the front of the collection with a fresh usage counter.
func (c *Console) Create(input CreateInput) (Code, error) {
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))

	if err := validate.Struct(input); err != nil {
		return Code{}, fmt.Errorf("validate promo code: %w", err)
	}

	for _, existing := range c.session.All() {
		if strings.EqualFold(existing.Code, input.Code) {
			return Code{}, fmt.Errorf("%w: %s", ErrCodeExists, input.Code)
		}
	}

	code := Code{
		ID:          "PROMO-" + uuid.NewString(),
		Code:        input.Code,
		Description: input.Description,
		Kind:        input.Kind,
		Value:       input.Value,
		Limit:       input.Limit,
		Used:        0,
		ExpiresAt:   input.ExpiresAt,
	}
	c.session.InsertFront(code)
	c.logger.WithFields(map[string]interface{}{"code": code.Code}).
		Info().Msg("promo code created")

	c.recomputeSummary()
	c.render()
	return code, nil
}

// Update writes the edit form back; the code string, id and usage
// counter are untouched. A stale id is a logged no-op; validation
// failures are returned for form correction.
func (c *Console) Update(id string, input UpdateInput) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("validate promo code: %w", err)
	}

	applied := c.session.Update(id, func(code *Code) {
		code.Description = input.Description
		code.Kind = input.Kind
		code.Value = input.Value
		code.Limit = input.Limit
		code.ExpiresAt = input.ExpiresAt
	})
	if !applied {
		return nil
	}
	c.recomputeSummary()
	c.render()
	return nil
}

// Delete removes a code by id. Confirmation happens upstream; once
// invoked the removal is unconditional for a live id, with no undo.
func (c *Console) Delete(id string) {
	if !c.session.Remove(id) {
		return
	}
	c.recomputeSummary()
	c.render()
}

// IncrementUsage records a redemption against a code. A stale id is a
// logged no-op.
func (c *Console) IncrementUsage(id string) {
	if !c.session.Update(id, func(code *Code) { code.Used++ }) {
		return
	}
	c.recomputeSummary()
	c.render()
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomCode suggests a fresh code string: the prefix plus six random
// uppercase alphanumerics.
func (c *Console) RandomCode(prefix string) string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(prefix))
	for i := 0; i < 6; i++ {
		b.WriteByte(codeAlphabet[c.rand.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// CurrentPage returns the page slice the renderer last saw.
func (c *Console) CurrentPage() listview.Page[Code] {
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
