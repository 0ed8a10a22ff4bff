package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Terminal handles raw terminal mode and frame output.
type Terminal struct {
	in  *os.File
	out io.Writer

	mu       sync.Mutex
	oldState *term.State
	isRaw    bool
}

// NewTerminal creates a Terminal that reads from stdin and writes to the given writer.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		in:  os.Stdin,
		out: out,
	}
}

// IsTerminal reports whether the input is an interactive terminal.
func (t *Terminal) IsTerminal() bool {
	return term.IsTerminal(int(t.in.Fd()))
}

// EnterRaw puts the terminal into raw mode.
// Returns an error if already in raw mode or if the operation fails.
func (t *Terminal) EnterRaw() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.isRaw {
		return fmt.Errorf("terminal already in raw mode")
	}

	oldState, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}

	t.oldState = oldState
	t.isRaw = true
	return nil
}

// ExitRaw restores the terminal to its original state.
// Safe to call even if not in raw mode.
func (t *Terminal) ExitRaw() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isRaw || t.oldState == nil {
		return nil
	}

	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}

	t.isRaw = false
	t.oldState = nil
	return nil
}

// IsRaw returns true if the terminal is in raw mode.
func (t *Terminal) IsRaw() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isRaw
}

// Size returns the current terminal width and height.
func (t *Terminal) Size() (width, height int, err error) {
	width, height, err = term.GetSize(int(t.in.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}
	return width, height, nil
}

// Read reads up to len(p) bytes from the terminal input.
func (t *Terminal) Read(p []byte) (n int, err error) {
	return t.in.Read(p)
}

// ANSI escape sequences
const (
	// Screen control
	ClearScreen = "\033[2J"   // Clear entire screen
	ClearLine   = "\033[K"    // Clear from cursor to end of line
	CursorHome  = "\033[H"    // Move cursor to home position (1,1)
	CursorHide  = "\033[?25l" // Hide cursor
	CursorShow  = "\033[?25h" // Show cursor

	// Text attributes
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Reverse = "\033[7m"

	// Foreground colors
	FgRed    = "\033[31m"
	FgGreen  = "\033[32m"
	FgYellow = "\033[33m"
	FgCyan   = "\033[36m"

	FgBrightBlack = "\033[90m"
	FgBrightRed   = "\033[91m"
)

// CursorTo returns an ANSI escape sequence to move the cursor to (row, col).
// Row and column are 1-indexed.
func CursorTo(row, col int) string {
	return fmt.Sprintf("\033[%d;%dH", row, col)
}

// Frame renders lines as a full screen. Raw mode disables output
// post-processing, so each line ends with an explicit carriage return.
func Frame(lines []string) string {
	var b strings.Builder
	b.WriteString(CursorHome + ClearScreen)
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString(ClearLine)
		b.WriteString("\r\n")
	}
	return b.String()
}

// WriteFrame clears the screen and draws lines from the top-left corner.
func (t *Terminal) WriteFrame(lines []string) {
	fmt.Fprint(t.out, CursorHide+Frame(lines))
}

// HideCursor hides the cursor.
func (t *Terminal) HideCursor() {
	fmt.Fprint(t.out, CursorHide)
}

// ShowCursor shows the cursor.
func (t *Terminal) ShowCursor() {
	fmt.Fprint(t.out, CursorShow)
}

// Clear clears the screen and moves cursor to home.
func (t *Terminal) Clear() {
	fmt.Fprint(t.out, ClearScreen+CursorHome)
}
