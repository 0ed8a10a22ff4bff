package tui

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// Key represents a keyboard input.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlD
	KeyRune // Regular character
)

// KeyEvent represents a key press event.
type KeyEvent struct {
	Key  Key
	Rune rune // Only valid when Key == KeyRune
}

// KeyReader reads keyboard input from a raw terminal.
type KeyReader struct {
	reader *bufio.Reader
}

// NewKeyReader creates a KeyReader from the given io.Reader.
// The reader should be a raw terminal input (e.g., os.Stdin after term.MakeRaw).
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{
		reader: bufio.NewReaderSize(r, 64),
	}
}

// ReadKey reads a single key event from the input.
// This method blocks until a key is pressed.
func (k *KeyReader) ReadKey() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}

	switch b {
	case 0x03: // Ctrl+C
		return KeyEvent{Key: KeyCtrlC}, nil
	case 0x04: // Ctrl+D
		return KeyEvent{Key: KeyCtrlD}, nil
	case 0x0D, 0x0A: // Enter
		return KeyEvent{Key: KeyEnter}, nil
	case 0x1B: // Escape or escape sequence start
		return k.readEscapeSequence()
	}

	if b >= 0x20 && b < 0x7F {
		return KeyEvent{Key: KeyRune, Rune: rune(b)}, nil
	}
	if b >= 0xC0 {
		return k.readUTF8(b)
	}
	return KeyEvent{Key: KeyUnknown}, nil
}

// readEscapeSequence distinguishes a bare escape from arrow key sequences.
// A bare escape is only recognized when no sequence bytes are buffered.
func (k *KeyReader) readEscapeSequence() (KeyEvent, error) {
	if k.reader.Buffered() == 0 {
		return KeyEvent{Key: KeyEscape}, nil
	}

	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}
	if b != '[' && b != 'O' {
		_ = k.reader.UnreadByte()
		return KeyEvent{Key: KeyEscape}, nil
	}

	b, err = k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}

	switch b {
	case 'A':
		return KeyEvent{Key: KeyUp}, nil
	case 'B':
		return KeyEvent{Key: KeyDown}, nil
	case 'C':
		return KeyEvent{Key: KeyRight}, nil
	case 'D':
		return KeyEvent{Key: KeyLeft}, nil
	}

	// Unknown sequence: drop the rest of it.
	for b != '~' && !(b >= 'A' && b <= 'Z') && k.reader.Buffered() > 0 {
		b, _ = k.reader.ReadByte()
	}
	return KeyEvent{Key: KeyUnknown}, nil
}

// readUTF8 reads a multi-byte UTF-8 character.
func (k *KeyReader) readUTF8(first byte) (KeyEvent, error) {
	var buf [4]byte
	buf[0] = first

	var n int
	switch {
	case first&0xE0 == 0xC0:
		n = 2
	case first&0xF0 == 0xE0:
		n = 3
	case first&0xF8 == 0xF0:
		n = 4
	default:
		return KeyEvent{Key: KeyUnknown}, nil
	}

	for i := 1; i < n; i++ {
		b, err := k.reader.ReadByte()
		if err != nil {
			return KeyEvent{Key: KeyUnknown}, err
		}
		buf[i] = b
	}

	r, _ := utf8.DecodeRune(buf[:n])
	if r == utf8.RuneError {
		return KeyEvent{Key: KeyUnknown}, nil
	}
	return KeyEvent{Key: KeyRune, Rune: r}, nil
}

// Shortcut represents a TUI keyboard shortcut.
type Shortcut int

const (
	ShortcutNone      Shortcut = iota
	ShortcutStart              // 's' - press the Start button
	ShortcutStop               // 'x' - press the Stop button
	ShortcutRefresh            // 'r' - fetch emotions once
	ShortcutOpenVideo          // 'o' - open the video feed in a browser
	ShortcutLog                // 'l' - toggle the diagnostics pane
	ShortcutEscape             // esc - leave the diagnostics pane, or quit
	ShortcutQuit               // 'q' or ctrl+c
)

// ParseShortcut converts a KeyEvent to a Shortcut.
func ParseShortcut(ev KeyEvent) Shortcut {
	switch ev.Key {
	case KeyEscape:
		return ShortcutEscape
	case KeyCtrlC, KeyCtrlD:
		return ShortcutQuit
	case KeyRune:
		switch ev.Rune {
		case 's', 'S':
			return ShortcutStart
		case 'x', 'X':
			return ShortcutStop
		case 'r', 'R':
			return ShortcutRefresh
		case 'o', 'O':
			return ShortcutOpenVideo
		case 'l', 'L':
			return ShortcutLog
		case 'q', 'Q':
			return ShortcutQuit
		}
	}
	return ShortcutNone
}
