package tui

import (
	"strings"
	"unicode/utf8"
)

// Box drawing characters (Unicode)
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
)

// BoxWithContent draws a box containing the given content lines.
// Each line is padded/truncated to fit within the box.
func BoxWithContent(width int, content []string) []string {
	if width < 4 {
		return nil
	}

	innerWidth := width - 4 // Account for borders and padding
	lines := make([]string, len(content)+2)

	lines[0] = BoxTopLeft + strings.Repeat(BoxHorizontal, width-2) + BoxTopRight
	for i, line := range content {
		lines[i+1] = BoxVertical + " " + PadOrTruncate(line, innerWidth) + " " + BoxVertical
	}
	lines[len(lines)-1] = BoxBottomLeft + strings.Repeat(BoxHorizontal, width-2) + BoxBottomRight

	return lines
}

// VisibleLen returns the number of runes in s that occupy a terminal cell,
// skipping ANSI escape sequences.
func VisibleLen(s string) int {
	n := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
		case r == '\033':
			inEscape = true
		default:
			n++
		}
	}
	return n
}

// PadOrTruncate pads or truncates a string to exactly width cells.
// Styled strings are padded by their visible width and are never cut,
// so escape sequences stay balanced.
func PadOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	if strings.Contains(s, "\033") {
		if n := VisibleLen(s); n < width {
			return s + strings.Repeat(" ", width-n)
		}
		return s
	}

	runeLen := utf8.RuneCountInString(s)
	if runeLen == width {
		return s
	}
	if runeLen < width {
		return s + strings.Repeat(" ", width-runeLen)
	}
	return Truncate(s, width)
}

// Truncate truncates a string to max width, adding ellipsis if needed.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= width {
		return s
	}

	if width >= 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}

// CenterText centers text within the given width.
func CenterText(s string, width int) string {
	runeLen := utf8.RuneCountInString(s)
	if runeLen >= width {
		return PadOrTruncate(s, width)
	}

	leftPad := (width - runeLen) / 2
	rightPad := width - runeLen - leftPad

	return strings.Repeat(" ", leftPad) + s + strings.Repeat(" ", rightPad)
}

// Style applies ANSI style codes to text.
func Style(s string, codes ...string) string {
	if len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}

// Button renders a labelled control. Disabled controls are dimmed.
func Button(label string, enabled bool) string {
	text := "[ " + label + " ]"
	if !enabled {
		return Style(text, Dim)
	}
	return Style(text, Bold, Reverse)
}

// StatusColor returns the color code for a streaming state name.
func StatusColor(state string) string {
	switch strings.ToLower(state) {
	case "streaming":
		return FgGreen
	case "stopped":
		return FgBrightBlack
	case "error":
		return FgRed
	default:
		return ""
	}
}

// FormatStatus formats a state name with its color.
func FormatStatus(state string) string {
	color := StatusColor(state)
	if color == "" {
		return state
	}
	return Style(state, color, Bold)
}
