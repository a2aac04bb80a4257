// Package notify holds the ephemeral user-facing messages that report
// operation outcomes. Notifications expire on their own after a fixed
// display window; concurrent pushes all stay visible, stacked in
// creation order.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a notification stays visible
const DefaultTTL = 3000 * time.Millisecond

// Severity classifies a notification for rendering
type Severity string

// Severities
const (
	SeverityDefault Severity = "default"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is one user-facing message
type Notification struct {
	// ID is time-based and unique within the process
	ID int64

	Title       string
	Description string
	Severity    Severity
	CreatedAt   time.Time
}

// Center owns the active notification set. No other component retains
// references to notifications; views read snapshots via Active.
type Center struct {
	mu     sync.Mutex
	active []Notification
	lastID int64

	ttl      time.Duration
	now      func() time.Time
	schedule func(time.Duration, func())
}

// Option configures a Center
type Option func(*Center)

// WithTTL overrides the display window
func WithTTL(ttl time.Duration) Option {
	return func(c *Center) { c.ttl = ttl }
}

// WithClock overrides time and timer scheduling, for tests
func WithClock(now func() time.Time, schedule func(time.Duration, func())) Option {
	return func(c *Center) {
		c.now = now
		c.schedule = schedule
	}
}

// NewCenter creates a notification center
func NewCenter(opts ...Option) *Center {
	c := &Center{
		ttl: DefaultTTL,
		now: time.Now,
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Push adds a notification and schedules its automatic removal.
// The assigned ID is the creation time in milliseconds, bumped past the
// previous ID when two pushes land in the same millisecond.
func (c *Center) Push(title, description string, severity Severity) Notification {
	c.mu.Lock()

	createdAt := c.now()
	id := createdAt.UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id

	n := Notification{
		ID:          id,
		Title:       title,
		Description: description,
		Severity:    severity,
		CreatedAt:   createdAt,
	}
	c.active = append(c.active, n)
	c.mu.Unlock()

	c.schedule(c.ttl, func() { c.Dismiss(id) })
	return n
}

// Success pushes a success notification
func (c *Center) Success(title, description string) Notification {
	return c.Push(title, description, SeveritySuccess)
}

// Error pushes an error notification
func (c *Center) Error(title, description string) Notification {
	return c.Push(title, description, SeverityError)
}

// Dismiss removes a notification before its timer fires.
// Dismissing an already-expired notification is a no-op.
func (c *Center) Dismiss(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.active {
		if n.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return
		}
	}
}

// Active returns a snapshot of the visible notifications in creation order
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.active))
	copy(out, c.active)
	return out
}
