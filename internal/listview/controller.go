package listview

import (
	"context"
	"sync"
	"time"

	"ticketdesk/internal/logging"
)

// State is the lifecycle of one console instance. Ready is re-entrant
// on every user action; no state survives a restart.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Loader acquires a fresh collection for the session. Acquisition
// failures are handled below this boundary: a loader falls back to
// generated data instead of failing upward.
type Loader[T Record] func(ctx context.Context) []T

// Controller drives the load/refresh lifecycle for one session and
// debounces free-text filter input. Mutations and filter changes go
// straight to the session; the controller only decides when loading
// happens and keeps overlapping refreshes from racing.
type Controller[T Record] struct {
	logger   *logging.Logger
	session  *Session[T]
	load     Loader[T]
	delay    time.Duration
	debounce *Debouncer

	mu        sync.Mutex
	state     State
	inFlight  bool
	onLoading func(active bool)
	onRefresh func()
}

// ControllerProperty carries the dependencies for a Controller.
type ControllerProperty[T Record] struct {
	Logger  *logging.Logger
	Session *Session[T]
	Load    Loader[T]
	// RefreshDelay simulates acquisition latency before the loader
	// result is applied.
	RefreshDelay time.Duration
	// DebounceWindow is the quiet period for free-text input.
	DebounceWindow time.Duration
	// OnLoading mirrors the loading indicator and the disabled state
	// of the refresh control.
	OnLoading func(active bool)
	// OnRefresh runs after the session has been reseeded, before the
	// controller returns to Ready. The console resets its criteria
	// and recomputes the summary here.
	OnRefresh func()
}

// NewController constructs a Controller.
func NewController[T Record](props ControllerProperty[T]) *Controller[T] {
	logger := props.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Controller[T]{
		logger:    logger,
		session:   props.Session,
		load:      props.Load,
		delay:     props.RefreshDelay,
		debounce:  NewDebouncer(props.DebounceWindow),
		state:     StateIdle,
		onLoading: props.OnLoading,
		onRefresh: props.OnRefresh,
	}
}

// State returns the current lifecycle state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start performs the initial Idle -> Loading -> Ready transition.
func (c *Controller[T]) Start(ctx context.Context) error {
	return c.refresh(ctx)
}

// Refresh re-acquires the collection. While one refresh is in flight
// the trigger is disabled and further requests are ignored, so two
// delayed completions can never overlap.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	return c.refresh(ctx)
}

func (c *Controller[T]) refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		c.logger.Debug("refresh already in flight, ignoring")
		return nil
	}
	c.inFlight = true
	c.state = StateLoading
	c.mu.Unlock()

	c.setLoading(true)
	defer func() {
		c.mu.Lock()
		c.state = StateReady
		c.inFlight = false
		c.mu.Unlock()
		c.setLoading(false)
	}()

	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	items := c.load(ctx)
	c.session.Replace(items)
	c.logger.WithFields(map[string]interface{}{"records": len(items)}).
		Info().Msg("collection reloaded")

	if c.onRefresh != nil {
		c.onRefresh()
	}
	return nil
}

// QueryChanged runs apply after the debounce quiet window; rapid
// keystrokes supersede each other so the filtered view is not
// recomputed per keystroke.
func (c *Controller[T]) QueryChanged(apply func()) {
	c.debounce.Trigger(apply)
}

// Stop cancels any pending debounced input.
func (c *Controller[T]) Stop() {
	c.debounce.Stop()
}

func (c *Controller[T]) setLoading(active bool) {
	if c.onLoading != nil {
		c.onLoading(active)
	}
}
