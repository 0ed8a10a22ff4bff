package testutil

import (
	"context"
	"testing"
	"time"
)

// Default timeouts for backend interactions.
const (
	// DefaultRequestTimeout bounds a single request to the backend.
	DefaultRequestTimeout = 5 * time.Second

	// DefaultStreamTimeout bounds a whole start, poll and stop cycle.
	DefaultStreamTimeout = 30 * time.Second

	// DefaultTestBuffer is the buffer time subtracted from test deadline
	// to allow for cleanup operations before the test times out.
	DefaultTestBuffer = 2 * time.Second

	// PollTick is the interval Eventually checks its condition at.
	PollTick = 5 * time.Millisecond
)

// ContextWithTestDeadline creates a context that respects the test's deadline.
// It subtracts a buffer from the test deadline to allow time for cleanup.
// If the test has no deadline, it falls back to the provided fallback duration.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    ctx, cancel := testutil.ContextWithTestDeadline(t, 5*time.Second)
//	    defer cancel()
//	    // ... test code using ctx
//	}
func ContextWithTestDeadline(t *testing.T, fallback time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()
	return ContextWithTestDeadlineBuffer(t, fallback, DefaultTestBuffer)
}

// ContextWithTestDeadlineBuffer creates a context that respects the test's deadline
// with a custom buffer. The buffer is subtracted from the test deadline.
//
// If the test has no deadline, it uses the fallback duration. The earlier of
// the adjusted test deadline and the fallback wins.
func ContextWithTestDeadlineBuffer(t *testing.T, fallback, buffer time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()

	if deadline, ok := t.Deadline(); ok {
		adjusted := deadline.Add(-buffer)
		if remaining := time.Until(adjusted); remaining > 0 && remaining < fallback {
			return context.WithDeadline(context.Background(), adjusted)
		}
	}
	return context.WithTimeout(context.Background(), fallback)
}

// RequestContext creates a context for a single backend request.
func RequestContext(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return ContextWithTestDeadline(t, DefaultRequestTimeout)
}

// StreamContext creates a context for a full streaming session.
func StreamContext(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return ContextWithTestDeadline(t, DefaultStreamTimeout)
}
