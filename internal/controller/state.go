package controller

// State is the streaming state owned by the Controller.
type State int

const (
	StateStopped State = iota
	StateStreaming
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStreaming:
		return "streaming"
	default:
		return "unknown"
	}
}

// Projection is the set of UI control values derived from a State.
// Exactly one of StartEnabled and StopEnabled is true, and VideoVisible
// always equals StopEnabled.
type Projection struct {
	StartEnabled bool
	StopEnabled  bool
	VideoVisible bool
}

// Projection returns the UI control values for s.
func (s State) Projection() Projection {
	streaming := s == StateStreaming
	return Projection{
		StartEnabled: !streaming,
		StopEnabled:  streaming,
		VideoVisible: streaming,
	}
}

// NoEmotionsText is the sentinel entry rendered for an empty snapshot.
const NoEmotionsText = "No emotions detected"

// RenderItems returns the list entries for an emotions snapshot: one entry per
// emotion in order, or the single sentinel entry when there are none.
func RenderItems(emotions []string) []string {
	if len(emotions) == 0 {
		return []string{NoEmotionsText}
	}
	items := make([]string, len(emotions))
	copy(items, emotions)
	return items
}
