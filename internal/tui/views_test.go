package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelView_Render(t *testing.T) {
	t.Parallel()

	t.Run("stopped hides video and shows start enabled", func(t *testing.T) {
		t.Parallel()

		state := PanelState{
			Backend:      "http://localhost:8080",
			StartEnabled: true,
			VideoURL:     "http://localhost:8080/video_feed",
		}
		out := strings.Join((&PanelView{}).Render(state, 80), "\n")

		assert.Contains(t, out, "http://localhost:8080")
		assert.Contains(t, out, Button("Start", true))
		assert.Contains(t, out, Button("Stop", false))
		assert.Contains(t, out, FormatStatus("stopped"))
		assert.NotContains(t, out, "LIVE")
		assert.NotContains(t, out, "/video_feed")
	})

	t.Run("streaming shows video panel", func(t *testing.T) {
		t.Parallel()

		state := PanelState{
			StopEnabled:  true,
			VideoVisible: true,
			VideoURL:     "http://localhost:8080/video_feed",
		}
		out := strings.Join((&PanelView{}).Render(state, 80), "\n")

		assert.Contains(t, out, Button("Start", false))
		assert.Contains(t, out, Button("Stop", true))
		assert.Contains(t, out, FormatStatus("streaming"))
		assert.Contains(t, out, "LIVE")
		assert.Contains(t, out, "http://localhost:8080/video_feed")
	})

	t.Run("lists emotions in order", func(t *testing.T) {
		t.Parallel()

		state := PanelState{Emotions: []string{"happy", "sad"}}
		lines := (&PanelView{}).Render(state, 60)

		var items []string
		for _, line := range lines {
			if i := strings.Index(line, "• "); i >= 0 {
				items = append(items, strings.TrimSpace(strings.TrimSuffix(line[i+len("• "):], BoxVertical)))
			}
		}
		assert.Equal(t, []string{"happy", "sad"}, items)
	})

	t.Run("renders sentinel entry", func(t *testing.T) {
		t.Parallel()

		state := PanelState{Emotions: []string{"No emotions detected"}}
		out := strings.Join((&PanelView{}).Render(state, 60), "\n")
		assert.Contains(t, out, "• No emotions detected")
	})

	t.Run("minimum width", func(t *testing.T) {
		t.Parallel()

		lines := (&PanelView{}).Render(PanelState{}, 5)
		require.NotEmpty(t, lines)
		assert.Equal(t, 30, VisibleLen(lines[0]))
	})
}

func TestLogView_Append(t *testing.T) {
	t.Parallel()

	v := NewLogView(3)
	for i := 1; i <= 5; i++ {
		v.Append(fmt.Sprintf("line %d", i))
	}
	assert.Equal(t, []string{"line 3", "line 4", "line 5"}, v.Lines())

	v.Clear()
	assert.Empty(t, v.Lines())
}

func TestLogView_DefaultSize(t *testing.T) {
	t.Parallel()

	v := NewLogView(0)
	assert.Equal(t, 500, v.maxLines)
}

func TestLogView_Write(t *testing.T) {
	t.Parallel()

	v := NewLogView(10)

	n, err := v.Write([]byte("WARN: first\nINFO: sec"))
	require.NoError(t, err)
	assert.Equal(t, len("WARN: first\nINFO: sec"), n)
	assert.Equal(t, []string{"WARN: first"}, v.Lines())

	_, err = v.Write([]byte("ond\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"WARN: first", "INFO: second"}, v.Lines())
}

func TestLogView_Render(t *testing.T) {
	t.Parallel()

	v := NewLogView(10)
	for i := 1; i <= 6; i++ {
		v.Append(fmt.Sprintf("line %d", i))
	}

	lines := v.Render(40, 4)
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "Diagnostics")
	assert.Equal(t, []string{"line 3", "line 4", "line 5", "line 6"}, lines[1:5])
	assert.Contains(t, lines[5], "6 lines")
}

func TestLogView_RenderPadsShortBuffer(t *testing.T) {
	t.Parallel()

	v := NewLogView(10)
	v.Append("only")

	lines := v.Render(40, 3)
	require.Len(t, lines, 5)
	assert.Equal(t, "only", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "", lines[3])
	assert.Contains(t, lines[4], "1 lines")
}
