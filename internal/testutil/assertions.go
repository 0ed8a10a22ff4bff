package testutil

import (
	"sync"
	"testing"

	"github.com/emocam/emocam/internal/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RecordingUI is a controller.UI that keeps the current surface state and
// every emotion list it was given. It is safe for concurrent use.
type RecordingUI struct {
	mu           sync.Mutex
	startEnabled bool
	stopEnabled  bool
	videoVisible bool
	renders      [][]string
}

// SetStartEnabled records the Start button state.
func (u *RecordingUI) SetStartEnabled(enabled bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.startEnabled = enabled
}

// SetStopEnabled records the Stop button state.
func (u *RecordingUI) SetStopEnabled(enabled bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.stopEnabled = enabled
}

// SetVideoVisible records the video panel visibility.
func (u *RecordingUI) SetVideoVisible(visible bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.videoVisible = visible
}

// ReplaceEmotions records a render.
func (u *RecordingUI) ReplaceEmotions(items []string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.renders = append(u.renders, append([]string(nil), items...))
}

// Projection returns the recorded surface state.
func (u *RecordingUI) Projection() controller.Projection {
	u.mu.Lock()
	defer u.mu.Unlock()
	return controller.Projection{
		StartEnabled: u.startEnabled,
		StopEnabled:  u.stopEnabled,
		VideoVisible: u.videoVisible,
	}
}

// Renders returns a copy of every recorded render, oldest first.
func (u *RecordingUI) Renders() [][]string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([][]string, len(u.renders))
	copy(out, u.renders)
	return out
}

// Last returns the most recent render, or nil if there was none.
func (u *RecordingUI) Last() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.renders) == 0 {
		return nil
	}
	return u.renders[len(u.renders)-1]
}

// AssertProjection asserts that ui shows the projection of state.
func AssertProjection(t *testing.T, ui *RecordingUI, state controller.State) {
	t.Helper()
	require.NotNil(t, ui, "ui is nil")
	assert.Equal(t, state.Projection(), ui.Projection(), "projection mismatch for %s", state)
}

// AssertStreaming asserts the Streaming projection.
func AssertStreaming(t *testing.T, ui *RecordingUI) {
	t.Helper()
	AssertProjection(t, ui, controller.StateStreaming)
}

// AssertStopped asserts the Stopped projection.
func AssertStopped(t *testing.T, ui *RecordingUI) {
	t.Helper()
	AssertProjection(t, ui, controller.StateStopped)
}

// AssertRendered asserts that items is the rendering of emotions: the same
// entries in order, or the sentinel entry when emotions is empty.
func AssertRendered(t *testing.T, items, emotions []string) {
	t.Helper()
	if len(emotions) == 0 {
		AssertNoEmotions(t, items)
		return
	}
	assert.Equal(t, emotions, items, "rendered emotions mismatch")
}

// AssertNoEmotions asserts that items holds only the sentinel entry.
func AssertNoEmotions(t *testing.T, items []string) {
	t.Helper()
	assert.Equal(t, []string{controller.NoEmotionsText}, items, "expected the empty-list sentinel")
}
