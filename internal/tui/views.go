package tui

import (
	"fmt"
	"strings"
)

// PanelState holds the data needed to render the control panel.
type PanelState struct {
	Backend      string
	StartEnabled bool
	StopEnabled  bool
	VideoVisible bool
	VideoURL     string
	// Emotions is the rendered list; nil until the first tick.
	Emotions []string
}

// Streaming reports whether the controls show an active stream.
func (s PanelState) Streaming() bool {
	return s.StopEnabled
}

// PanelView renders the main view: buttons, video display and emotion list.
type PanelView struct{}

// Render renders the panel to a slice of strings.
func (v *PanelView) Render(state PanelState, width int) []string {
	if width < 30 {
		width = 30
	}
	innerWidth := width - 4

	status := "stopped"
	if state.Streaming() {
		status = "streaming"
	}

	var content []string
	content = append(content,
		fmt.Sprintf("%s %s | %s", Style("emocam", Bold), Truncate(state.Backend, innerWidth-20), FormatStatus(status)),
		"",
		Button("Start", state.StartEnabled)+"  "+Button("Stop", state.StopEnabled),
		"",
	)

	if state.VideoVisible {
		content = append(content,
			Style("● LIVE", FgBrightRed, Bold)+" "+Truncate(state.VideoURL, innerWidth-7),
			"",
		)
	}

	content = append(content, Style("Emotions", Bold))
	for _, item := range state.Emotions {
		content = append(content, "  • "+Truncate(item, innerWidth-4))
	}

	content = append(content, "")
	shortcuts := "[s]tart [x]stop [r]efresh [o]pen video [l]og [q]uit"
	content = append(content, Style(Truncate(shortcuts, innerWidth), Dim))

	return BoxWithContent(width, content)
}

// LogView keeps the most recent diagnostic lines for the diagnostics pane.
// It is not safe for concurrent use; TUI serializes access.
type LogView struct {
	lines    []string
	maxLines int
	partial  string
}

// NewLogView creates a LogView with the specified maximum line buffer.
func NewLogView(maxLines int) *LogView {
	if maxLines < 1 {
		maxLines = 500 // Default buffer size
	}
	return &LogView{
		lines:    make([]string, 0, maxLines),
		maxLines: maxLines,
	}
}

// Append adds a line to the buffer, dropping the oldest when full.
func (v *LogView) Append(line string) {
	v.lines = append(v.lines, line)
	if len(v.lines) > v.maxLines {
		v.lines = v.lines[len(v.lines)-v.maxLines:]
	}
}

// Write appends newline-terminated lines from p. A trailing fragment is held
// until its newline arrives.
func (v *LogView) Write(p []byte) (int, error) {
	text := v.partial + string(p)
	parts := strings.Split(text, "\n")
	v.partial = parts[len(parts)-1]
	for _, line := range parts[:len(parts)-1] {
		v.Append(strings.TrimRight(line, "\r"))
	}
	return len(p), nil
}

// Clear removes all lines from the buffer.
func (v *LogView) Clear() {
	v.lines = v.lines[:0]
	v.partial = ""
}

// Lines returns all lines in the buffer.
func (v *LogView) Lines() []string {
	return v.lines
}

// Render renders the newest lines that fit in height, between a header and
// a footer.
func (v *LogView) Render(width, height int) []string {
	if width < 30 {
		width = 30
	}
	if height < 3 {
		height = 3
	}

	result := make([]string, 0, height+2)

	title := "─── Diagnostics (press 'l' or esc to return) "
	header := Style(title, Dim) + strings.Repeat("─", max(0, width-VisibleLen(title)))
	result = append(result, header)

	start := 0
	if len(v.lines) > height {
		start = len(v.lines) - height
	}
	for _, line := range v.lines[start:] {
		result = append(result, Truncate(line, width))
	}

	for len(result) < height+1 {
		result = append(result, "")
	}

	count := fmt.Sprintf("─── %d lines ", len(v.lines))
	footer := Style(count, Dim) + strings.Repeat("─", max(0, width-VisibleLen(count)))
	result = append(result, footer)

	return result
}
