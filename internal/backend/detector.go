package backend

import "sync"

// Detector reports the emotions found in a captured frame.
type Detector interface {
	Detect(frame int) []string
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func(frame int) []string

// Detect calls f.
func (f DetectorFunc) Detect(frame int) []string {
	return f(frame)
}

// Script is a Detector that replays fixed frames in order, wrapping around.
type Script struct {
	mu     sync.Mutex
	frames [][]string
}

// NewScript creates a Script from frames. An empty script detects nothing.
func NewScript(frames ...[]string) *Script {
	return &Script{frames: frames}
}

// DefaultScript is a short loop of faces appearing and leaving the frame.
func DefaultScript() *Script {
	return NewScript(
		[]string{},
		[]string{"neutral"},
		[]string{"happy"},
		[]string{"happy", "surprise"},
		[]string{"sad"},
		[]string{"angry", "fear"},
		[]string{},
	)
}

// Detect returns the scripted emotions for frame.
func (s *Script) Detect(frame int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.frames) == 0 {
		return []string{}
	}
	if frame < 0 {
		frame = -frame
	}
	out := make([]string, len(s.frames[frame%len(s.frames)]))
	copy(out, s.frames[frame%len(s.frames)])
	return out
}

// Set replaces the script frames.
func (s *Script) Set(frames ...[]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = frames
}

// Len returns the number of frames in the script.
func (s *Script) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}
