package controller

import (
	"context"
	"time"
)

// Task is a cancellable repeating job. Runs never overlap: each run starts one
// interval after the previous run returned. The first run starts immediately.
type Task struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// Repeat starts fn on its own goroutine and returns a handle to cancel it.
// fn receives the task's context, which is cancelled by Cancel or by parent.
func Repeat(parent context.Context, interval time.Duration, fn func(ctx context.Context)) *Task {
	ctx, cancel := context.WithCancel(parent)
	t := &Task{
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go t.run(interval, fn)
	return t
}

func (t *Task) run(interval time.Duration, fn func(ctx context.Context)) {
	defer close(t.done)

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		if t.ctx.Err() != nil {
			return
		}

		fn(t.ctx)

		timer.Reset(interval)
		select {
		case <-t.ctx.Done():
			return
		case <-timer.C:
		}
	}
}

// Cancel stops the task. A run in progress sees its context cancelled;
// no further runs start. Cancel does not wait; use Done for that.
func (t *Task) Cancel() {
	t.cancel()
}

// Done is closed once the task goroutine has exited.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Context returns the context passed to each run.
func (t *Task) Context() context.Context {
	return t.ctx
}

// Cancelled reports whether Cancel was called or the parent ended.
func (t *Task) Cancelled() bool {
	return t.ctx.Err() != nil
}
