// Package tui implements the interactive terminal surface of emocam: Start and
// Stop buttons, the video display panel, the emotion list and a diagnostics
// pane. TUI satisfies controller.UI; every mutation redraws the screen.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// View represents the current TUI view.
type View int

const (
	ViewPanel View = iota
	ViewLog
)

// String returns the string representation of the view.
func (v View) String() string {
	switch v {
	case ViewPanel:
		return "panel"
	case ViewLog:
		return "log"
	default:
		return "unknown"
	}
}

// Action represents a user action from the TUI.
type Action int

const (
	ActionNone      Action = iota
	ActionStart            // Start button pressed
	ActionStop             // Stop button pressed
	ActionRefresh          // One-off emotions fetch requested
	ActionOpenVideo        // Open the video feed externally
	ActionQuit             // User requested quit
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	case ActionRefresh:
		return "refresh"
	case ActionOpenVideo:
		return "open_video"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// TUI manages the terminal user interface.
type TUI struct {
	terminal *Terminal

	mu       sync.Mutex
	state    PanelState
	view     View
	panel    *PanelView
	logView  *LogView
	width    int
	height   int
	running  bool
	actionCh chan Action
}

// NewTUI creates a new TUI instance writing to out.
func NewTUI(out io.Writer) *TUI {
	return &TUI{
		terminal: NewTerminal(out),
		view:     ViewPanel,
		panel:    &PanelView{},
		logView:  NewLogView(500),
		width:    80,
		height:   24,
		actionCh: make(chan Action, 10),
	}
}

// NewNopTUI creates a TUI that discards all output and is never run.
func NewNopTUI() *TUI {
	return NewTUI(io.Discard)
}

// SetStartEnabled enables or disables the Start button.
func (t *TUI) SetStartEnabled(enabled bool) {
	t.mutate(func(s *PanelState) { s.StartEnabled = enabled })
}

// SetStopEnabled enables or disables the Stop button.
func (t *TUI) SetStopEnabled(enabled bool) {
	t.mutate(func(s *PanelState) { s.StopEnabled = enabled })
}

// SetVideoVisible shows or hides the video display panel.
func (t *TUI) SetVideoVisible(visible bool) {
	t.mutate(func(s *PanelState) { s.VideoVisible = visible })
}

// ReplaceEmotions replaces every entry of the emotion list.
func (t *TUI) ReplaceEmotions(items []string) {
	list := make([]string, len(items))
	copy(list, items)
	t.mutate(func(s *PanelState) { s.Emotions = list })
}

// SetVideoURL sets the URL shown in the video display panel.
func (t *TUI) SetVideoURL(url string) {
	t.mutate(func(s *PanelState) { s.VideoURL = url })
}

// SetBackend sets the backend name shown in the title line.
func (t *TUI) SetBackend(name string) {
	t.mutate(func(s *PanelState) { s.Backend = name })
}

func (t *TUI) mutate(fn func(s *PanelState)) {
	t.mu.Lock()
	fn(&t.state)
	t.mu.Unlock()
	t.Update()
}

// State returns a copy of the panel state.
func (t *TUI) State() PanelState {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.state
	if t.state.Emotions != nil {
		s.Emotions = append([]string(nil), t.state.Emotions...)
	}
	return s
}

// SetView switches to a different view.
func (t *TUI) SetView(v View) {
	t.mu.Lock()
	t.view = v
	t.mu.Unlock()
	t.Update()
}

// GetView returns the current view.
func (t *TUI) GetView() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

// LogWriter returns a writer that appends to the diagnostics pane.
func (t *TUI) LogWriter() io.Writer {
	return logWriter{t}
}

type logWriter struct{ t *TUI }

func (w logWriter) Write(p []byte) (int, error) {
	w.t.mu.Lock()
	n, err := w.t.logView.Write(p)
	showing := w.t.view == ViewLog
	w.t.mu.Unlock()

	if showing {
		w.t.Update()
	}
	return n, err
}

// LogLines returns the buffered diagnostic lines.
func (t *TUI) LogLines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.logView.Lines()...)
}

// Actions returns a channel that receives user actions.
func (t *TUI) Actions() <-chan Action {
	return t.actionCh
}

// Render returns the lines of the current view.
func (t *TUI) Render() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.render()
}

// render builds the current view. Caller holds mu.
func (t *TUI) render() []string {
	switch t.view {
	case ViewLog:
		return t.logView.Render(t.width, t.height-2)
	default:
		return t.panel.Render(t.state, t.width)
	}
}

// Update redraws the current view. It is a no-op while the TUI is not running.
func (t *TUI) Update() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}

	if width, height, err := t.terminal.Size(); err == nil {
		t.width = width
		t.height = height
	}
	t.terminal.WriteFrame(t.render())
}

// Run starts the TUI event loop.
// It returns when the context is cancelled, input ends or the user quits.
func (t *TUI) Run(ctx context.Context) error {
	if err := t.terminal.EnterRaw(); err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer t.terminal.ExitRaw()
	defer t.terminal.ShowCursor()

	t.mu.Lock()
	t.running = true
	t.mu.Unlock()
	defer t.Stop()

	t.Update()

	keyReader := NewKeyReader(t.terminal)
	keyCh := make(chan KeyEvent, 10)
	keyErr := make(chan error, 1)

	go func() {
		for {
			ev, err := keyReader.ReadKey()
			if err != nil {
				keyErr <- err
				return
			}
			select {
			case keyCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-keyErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read key: %w", err)

		case ev := <-keyCh:
			action := t.handleKeyEvent(ev)
			if action == ActionNone {
				continue
			}
			t.emit(action)
			if action == ActionQuit {
				return nil
			}
		}
	}
}

// emit queues an action, dropping it if the queue is full.
func (t *TUI) emit(action Action) {
	select {
	case t.actionCh <- action:
	default:
	}
}

// handleKeyEvent processes a key event and returns any triggered action.
// Shortcuts for disabled controls produce no action.
func (t *TUI) handleKeyEvent(ev KeyEvent) Action {
	t.mu.Lock()
	state := t.state
	view := t.view
	t.mu.Unlock()

	switch ParseShortcut(ev) {
	case ShortcutStart:
		if state.StartEnabled {
			return ActionStart
		}
	case ShortcutStop:
		if state.StopEnabled {
			return ActionStop
		}
	case ShortcutRefresh:
		return ActionRefresh
	case ShortcutOpenVideo:
		if state.VideoVisible {
			return ActionOpenVideo
		}
	case ShortcutLog:
		if view == ViewLog {
			t.SetView(ViewPanel)
		} else {
			t.SetView(ViewLog)
		}
	case ShortcutEscape:
		if view == ViewLog {
			t.SetView(ViewPanel)
			return ActionNone
		}
		return ActionQuit
	case ShortcutQuit:
		return ActionQuit
	}
	return ActionNone
}

// Stop marks the TUI as no longer running; later updates are not drawn.
func (t *TUI) Stop() {
	t.mu.Lock()
	t.running = false
	t.mu.Unlock()
}

// Interactive reports whether the TUI can read keys from a terminal.
func (t *TUI) Interactive() bool {
	return t.terminal.IsTerminal()
}

// IsRunning returns whether the TUI is currently running.
func (t *TUI) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
