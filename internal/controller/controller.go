// Package controller implements the stream controller: it turns start and stop
// commands into backend calls and UI updates, and while streaming polls the
// backend for the currently detected emotions and renders them.
package controller

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/emocam/emocam/internal/detector"
	"github.com/emocam/emocam/internal/logging"
	"github.com/google/uuid"
)

//go:generate mockgen -source=controller.go -destination=mock_controller_test.go -package=controller -write_package_comment=false

// DefaultPollInterval is the delay between the end of one tick and the next.
const DefaultPollInterval = time.Second

// Backend is the detection backend as seen by the controller.
// *detector.Client satisfies it.
type Backend interface {
	Start(ctx context.Context) (*detector.StatusResponse, error)
	Stop(ctx context.Context) (*detector.StatusResponse, error)
	Emotions(ctx context.Context) (*detector.EmotionsResponse, error)
}

// UI is the host surface the controller drives. Implementations must be safe
// for use from multiple goroutines and must not call back into the Controller.
type UI interface {
	SetStartEnabled(enabled bool)
	SetStopEnabled(enabled bool)
	SetVideoVisible(visible bool)
	// ReplaceEmotions replaces every rendered list entry with items.
	ReplaceEmotions(items []string)
}

// Option configures a Controller.
type Option func(*Controller)

// WithPollInterval sets the delay between poll ticks.
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// Controller owns the streaming state and the poll loop.
type Controller struct {
	backend  Backend
	ui       UI
	log      *logging.Logger
	interval time.Duration

	// ctx parents every poll task; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	state     State
	poll      *Task
	sessionID string
	items     []string

	ticks atomic.Uint64
}

// New creates a Controller in the Stopped state and applies the Stopped
// projection to ui.
func New(backend Backend, ui UI, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		backend:  backend,
		ui:       ui,
		log:      logging.With("component", "controller"),
		interval: DefaultPollInterval,
		ctx:      ctx,
		cancel:   cancel,
		state:    StateStopped,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.mu.Lock()
	c.project()
	c.mu.Unlock()

	return c
}

// Start asks the backend to begin streaming. On success the controller
// enters Streaming, updates the UI and begins polling with an immediate tick.
// On failure the error is logged and returned and the UI is left unchanged.
func (c *Controller) Start(ctx context.Context) error {
	sessionID := uuid.NewString()

	resp, err := c.backend.Start(detector.WithSessionID(ctx, sessionID))
	if err != nil {
		c.log.Warn("error starting stream", "error", err)
		return fmt.Errorf("failed to start stream: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateStreaming && c.poll != nil {
		c.log.Info("stream already started", "status", resp.Status, "session", c.sessionID)
		c.project()
		return nil
	}

	c.sessionID = sessionID
	c.state = StateStreaming
	c.log.Info("stream started", "status", resp.Status, "session", sessionID)
	c.project()

	c.poll = Repeat(detector.WithSessionID(c.ctx, sessionID), c.interval, c.tick)
	return nil
}

// Stop asks the backend to end streaming. On success polling is cancelled,
// the controller enters Stopped and the UI is updated; a tick in flight is
// discarded. On failure the UI is left unchanged and polling continues.
func (c *Controller) Stop(ctx context.Context) error {
	resp, err := c.backend.Stop(detector.WithSessionID(ctx, c.SessionID()))
	if err != nil {
		c.log.Warn("error stopping stream", "error", err)
		return fmt.Errorf("failed to stop stream: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.log.Info("stream stopped", "status", resp.Status, "session", c.sessionID)
	if c.poll != nil {
		c.poll.Cancel()
		c.poll = nil
	}
	c.sessionID = ""
	c.state = StateStopped
	c.project()
	return nil
}

// Refresh fetches the emotions snapshot once and re-renders the list.
// On failure the error is logged and returned and the list is left unchanged.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.refresh(detector.WithSessionID(ctx, c.SessionID()))
}

// tick is one run of the poll loop. Failures never end the loop.
func (c *Controller) tick(ctx context.Context) {
	n := c.ticks.Add(1)
	c.log.Debug("poll tick", "tick", n)
	_ = c.refresh(ctx)
}

func (c *Controller) refresh(ctx context.Context) error {
	resp, err := c.backend.Emotions(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// Cancelled by Stop or Close; not a backend failure.
			return ctx.Err()
		}
		c.log.Warn("error fetching emotions", "error", err)
		return fmt.Errorf("failed to fetch emotions: %w", err)
	}

	items := RenderItems(resp.Emotions)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Stop cancels the poll context under mu, so a tick that lost the race
	// never renders after the stream was stopped.
	if err := ctx.Err(); err != nil {
		return err
	}
	c.items = items
	c.ui.ReplaceEmotions(items)
	return nil
}

// project applies the current state's projection to the UI. Caller holds mu.
func (c *Controller) project() {
	p := c.state.Projection()
	c.ui.SetStartEnabled(p.StartEnabled)
	c.ui.SetStopEnabled(p.StopEnabled)
	c.ui.SetVideoVisible(p.VideoVisible)
}

// State returns the current streaming state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Polling reports whether a poll loop is active.
func (c *Controller) Polling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.poll != nil && !c.poll.Cancelled()
}

// Emotions returns the entries of the most recent render.
func (c *Controller) Emotions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.items))
	copy(out, c.items)
	return out
}

// SessionID returns the ID of the current streaming session, or "" when stopped.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Ticks returns how many poll ticks have run since the controller was created.
func (c *Controller) Ticks() uint64 {
	return c.ticks.Load()
}

// Close cancels polling and waits for the poll goroutine to exit.
// It does not contact the backend.
func (c *Controller) Close() {
	c.mu.Lock()
	poll := c.poll
	c.poll = nil
	c.mu.Unlock()

	c.cancel()
	if poll != nil {
		<-poll.Done()
	}
}
