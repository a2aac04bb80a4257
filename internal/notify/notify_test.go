package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives a Center deterministically
type fakeClock struct {
	now     time.Time
	pending []func()
	delays  []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Schedule(d time.Duration, fn func()) {
	f.pending = append(f.pending, fn)
	f.delays = append(f.delays, d)
}

func (f *fakeClock) FireAll() {
	pending := f.pending
	f.pending = nil
	for _, fn := range pending {
		fn()
	}
}

func newTestCenter() (*Center, *fakeClock) {
	clock := newFakeClock()
	center := NewCenter(WithClock(clock.Now, clock.Schedule))
	return center, clock
}

func TestPushAssignsTimeBasedID(t *testing.T) {
	center, clock := newTestCenter()

	n := center.Push("Order placed", "", SeveritySuccess)
	assert.Equal(t, clock.now.UnixMilli(), n.ID)
}

func TestPushCollidingTimestampsStayUnique(t *testing.T) {
	center, _ := newTestCenter()

	// The clock does not advance, so all three land in one millisecond.
	a := center.Push("a", "", SeverityDefault)
	b := center.Push("b", "", SeverityDefault)
	c := center.Push("c", "", SeverityDefault)

	assert.Less(t, a.ID, b.ID)
	assert.Less(t, b.ID, c.ID)
}

func TestConcurrentPushesStack(t *testing.T) {
	center, _ := newTestCenter()

	center.Success("Added to cart", "Product was added to your cart.")
	center.Error("Failed to save product", "")
	center.Push("Heads up", "", SeverityDefault)

	active := center.Active()
	require.Len(t, active, 3)
	assert.Equal(t, "Added to cart", active[0].Title)
	assert.Equal(t, "Heads up", active[2].Title)
}

func TestAutoExpiry(t *testing.T) {
	center, clock := newTestCenter()

	center.Success("Order placed", "Order #4 has been created.")
	require.Len(t, center.Active(), 1)
	require.Len(t, clock.delays, 1)
	assert.Equal(t, DefaultTTL, clock.delays[0])

	clock.FireAll()
	assert.Empty(t, center.Active(), "notification must expire after the display window")
}

func TestExpiryRegardlessOfSeverity(t *testing.T) {
	center, clock := newTestCenter()

	center.Push("a", "", SeveritySuccess)
	center.Push("b", "", SeverityError)
	center.Push("c", "", SeverityDefault)

	clock.FireAll()
	assert.Empty(t, center.Active())
}

func TestManualDismiss(t *testing.T) {
	center, clock := newTestCenter()

	a := center.Push("a", "", SeverityDefault)
	center.Push("b", "", SeverityDefault)

	center.Dismiss(a.ID)

	active := center.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "b", active[0].Title)

	// The expired timer firing later must not disturb anything else.
	clock.FireAll()
	assert.Empty(t, center.Active())
}

func TestDismissUnknownIDIsNoop(t *testing.T) {
	center, _ := newTestCenter()
	center.Push("a", "", SeverityDefault)

	center.Dismiss(42)
	assert.Len(t, center.Active(), 1)
}

func TestCustomTTL(t *testing.T) {
	clock := newFakeClock()
	center := NewCenter(WithTTL(500*time.Millisecond), WithClock(clock.Now, clock.Schedule))

	center.Push("a", "", SeverityDefault)
	require.Len(t, clock.delays, 1)
	assert.Equal(t, 500*time.Millisecond, clock.delays[0])
}

func TestActiveReturnsCopy(t *testing.T) {
	center, _ := newTestCenter()
	center.Push("a", "", SeverityDefault)

	snapshot := center.Active()
	snapshot[0].Title = "mutated"

	assert.Equal(t, "a", center.Active()[0].Title)
}
