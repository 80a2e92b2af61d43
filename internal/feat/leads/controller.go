package leads

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/kozmoai/site/pkg/kz/logger"
	"github.com/kozmoai/site/pkg/kz/validation"
)

const defaultAutoCloseDelay = 2 * time.Second

// Controller drives one lead form surface through Idle, Submitting, Success
// and Failed. State changes happen under mu; the store call does not.
//
// Every Open and Close starts a new generation. A store call that completes
// under an older generation leaves the state alone, and so does an auto-close
// timer that fires late.
type Controller struct {
	service        Service
	autoCloseDelay time.Duration
	log            logger.Logger

	mu          sync.Mutex
	open        bool
	state       State
	errMsg      string
	fieldErrors validation.ValidationErrors
	values      FormInput
	generation  uint64
	autoClose   *time.Timer
	observers   map[int]func(Snapshot)
	nextID      int
}

// NewController creates a closed controller. Call Open before submitting.
func NewController(service Service, autoCloseDelay time.Duration, log logger.Logger) *Controller {
	if autoCloseDelay <= 0 {
		autoCloseDelay = defaultAutoCloseDelay
	}
	return &Controller{
		service:        service,
		autoCloseDelay: autoCloseDelay,
		log:            log,
		values:         DefaultFormInput(),
		observers:      make(map[int]func(Snapshot)),
	}
}

// Open shows the surface with a fresh form, whatever happened before.
func (c *Controller) Open() Snapshot {
	c.mu.Lock()
	c.generation++
	c.stopAutoClose()
	c.open = true
	c.state = StateIdle
	c.errMsg = ""
	c.fieldErrors = nil
	c.values = DefaultFormInput()
	return c.unlockAndNotify()
}

// Close hides the surface. Pending work from this session no longer touches
// the state.
func (c *Controller) Close() Snapshot {
	c.mu.Lock()
	c.generation++
	c.stopAutoClose()
	c.open = false
	return c.unlockAndNotify()
}

// Submit validates in and, if valid, stores it once. It blocks until the
// store settles or times out. The store call is not cancelled with ctx.
//
// Returned errors: validation.ValidationErrors (nothing stored, state
// Idle), ErrSubmitInFlight, ErrAlreadySubmitted while the success panel is
// showing, ErrSurfaceClosed, or the *PersistenceError that moved the state to
// Failed.
func (c *Controller) Submit(ctx context.Context, in FormInput) (Snapshot, error) {
	c.mu.Lock()
	if !c.open {
		snap := c.snapshot()
		c.mu.Unlock()
		return snap, ErrSurfaceClosed
	}
	switch c.state {
	case StateSubmitting:
		snap := c.snapshot()
		c.mu.Unlock()
		return snap, ErrSubmitInFlight
	case StateSuccess:
		snap := c.snapshot()
		c.mu.Unlock()
		return snap, ErrAlreadySubmitted
	}

	c.values = in
	c.errMsg = ""
	req, errs := Validate(in)
	if errs.HasErrors() {
		recordInvalid()
		c.state = StateIdle
		c.fieldErrors = errs
		return c.unlockAndNotify(), errs
	}

	c.state = StateSubmitting
	c.fieldErrors = nil
	gen := c.generation
	c.unlockAndNotify()

	err := c.service.CreateDemoRequest(context.WithoutCancel(ctx), req)

	c.mu.Lock()
	if c.generation != gen {
		c.log.Debugf("Dropping stale completion for demo request %s", req.ID)
		snap := c.snapshot()
		c.mu.Unlock()
		return snap, err
	}

	if err != nil {
		c.state = StateFailed
		c.errMsg = FailureMessage
		return c.unlockAndNotify(), err
	}

	c.state = StateSuccess
	c.values = DefaultFormInput()
	c.stopAutoClose()
	c.autoClose = time.AfterFunc(c.autoCloseDelay, func() { c.finish(gen) })
	return c.unlockAndNotify(), nil
}

// Edit records new form values. A displayed failure is cleared.
func (c *Controller) Edit(in FormInput) Snapshot {
	c.mu.Lock()
	if c.state == StateSubmitting {
		snap := c.snapshot()
		c.mu.Unlock()
		return snap
	}
	c.values = in
	if c.state == StateFailed {
		c.state = StateIdle
		c.errMsg = ""
	}
	return c.unlockAndNotify()
}

// Dismiss clears a displayed failure, keeping the values.
func (c *Controller) Dismiss() Snapshot {
	c.mu.Lock()
	if c.state == StateFailed {
		c.state = StateIdle
		c.errMsg = ""
	}
	return c.unlockAndNotify()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// IsOpen reports whether the surface is showing.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Busy reports whether a store call is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateSubmitting
}

// Subscribe registers fn to receive a snapshot after every transition. The
// returned function removes it.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.observers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// finish is the auto-close after a success.
func (c *Controller) finish(gen uint64) {
	c.mu.Lock()
	if c.generation != gen || c.state != StateSuccess {
		c.mu.Unlock()
		return
	}
	c.generation++
	c.autoClose = nil
	c.state = StateIdle
	c.open = false
	c.unlockAndNotify()
}

func (c *Controller) stopAutoClose() {
	if c.autoClose != nil {
		c.autoClose.Stop()
		c.autoClose = nil
	}
}

// snapshot must be called with mu held.
func (c *Controller) snapshot() Snapshot {
	snap := Snapshot{
		State:  c.state,
		Open:   c.open,
		Error:  c.errMsg,
		Values: c.values,
	}
	if c.values.Subscribe != nil {
		subscribe := *c.values.Subscribe
		snap.Values.Subscribe = &subscribe
	}
	if c.fieldErrors.HasErrors() {
		snap.FieldErrors = c.fieldErrors.AsMap()
	}
	return snap
}

// unlockAndNotify takes a snapshot, releases mu and then notifies observers
// in subscription order.
func (c *Controller) unlockAndNotify() Snapshot {
	snap := c.snapshot()

	ids := make([]int, 0, len(c.observers))
	for id := range c.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	observers := make([]func(Snapshot), 0, len(ids))
	for _, id := range ids {
		observers = append(observers, c.observers[id])
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
	return snap
}
