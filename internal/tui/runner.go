package tui

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/emocam/emocam/internal/logging"
	"github.com/pkg/browser"
	"golang.org/x/sync/errgroup"
)

// Controller is the stream controller as driven by the TUI buttons.
// *controller.Controller satisfies it.
type Controller interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithOpener sets the function used to open the video feed URL.
func WithOpener(open func(url string) error) RunnerOption {
	return func(r *Runner) {
		r.open = open
	}
}

// WithOpenOnStart opens the video feed after every successful start.
func WithOpenOnStart(enabled bool) RunnerOption {
	return func(r *Runner) {
		r.openOnStart = enabled
	}
}

// Runner runs the TUI and turns its actions into controller calls.
type Runner struct {
	tui         *TUI
	ctrl        Controller
	open        func(url string) error
	openOnStart bool
	log         *logging.Logger
}

// NewRunner creates a new Runner for the given TUI and controller.
func NewRunner(tui *TUI, ctrl Controller, opts ...RunnerOption) *Runner {
	r := &Runner{
		tui:  tui,
		ctrl: ctrl,
		open: OpenInBrowser,
		log:  logging.With("component", "tui"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the TUI event loop and dispatches its actions until the user
// quits or ctx is cancelled. Controller calls run off the key loop so the
// screen stays responsive while a request is in flight.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return r.tui.Run(gctx)
	})
	g.Go(func() error {
		return r.Dispatch(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Dispatch handles queued actions one at a time until ActionQuit or ctx ends.
func (r *Runner) Dispatch(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case action := <-r.tui.Actions():
			if action == ActionQuit {
				return nil
			}
			r.handleAction(ctx, action)
		}
	}
}

// handleAction performs one action. Controller failures are already logged
// by the controller and leave the screen unchanged.
func (r *Runner) handleAction(ctx context.Context, action Action) {
	var err error
	switch action {
	case ActionStart:
		err = r.ctrl.Start(ctx)
		if err == nil && r.openOnStart {
			r.openVideo()
		}
	case ActionStop:
		err = r.ctrl.Stop(ctx)
	case ActionRefresh:
		err = r.ctrl.Refresh(ctx)
	case ActionOpenVideo:
		r.openVideo()
	}
	if err != nil {
		r.log.Debug("action failed", "action", action, "error", err)
	}
}

func (r *Runner) openVideo() {
	url := r.tui.State().VideoURL
	if url == "" {
		return
	}
	if err := r.open(url); err != nil {
		r.log.Warn("failed to open video feed", "url", url, "error", err)
	}
}

var quietBrowser sync.Once

// OpenInBrowser opens url with the system browser. The launcher's own output
// is discarded so it cannot corrupt the screen.
func OpenInBrowser(url string) error {
	quietBrowser.Do(func() {
		browser.Stdout = io.Discard
		browser.Stderr = io.Discard
	})
	return browser.OpenURL(url)
}
