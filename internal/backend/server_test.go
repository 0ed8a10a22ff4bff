package backend

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/emocam/emocam/internal/detector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer starts the backend behind httptest with a fast frame rate.
func newTestServer(t *testing.T, d Detector) (*Server, *httptest.Server) {
	t.Helper()

	s, err := NewServer(&Config{
		FrameInterval: 5 * time.Millisecond,
		Detector:      d,
		Assets:        fstest.MapFS{"index.html": {Data: []byte("<h1>index</h1>")}},
	})
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.StopCapture()
	})
	return s, ts
}

func post(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", nil)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeEmotions(t *testing.T, url string) []string {
	t.Helper()
	resp := get(t, url+detector.PathEmotions)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body detector.EmotionsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Emotions
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	_, err := NewServer(nil)
	assert.ErrorContains(t, err, "config is required")

	_, err = NewServer(&Config{Port: -1})
	assert.ErrorContains(t, err, "invalid port")

	s, err := NewServer(&Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultFrameInterval, s.frameInterval)
	assert.NotNil(t, s.detector)
	assert.False(t, s.Streaming())
	assert.Empty(t, s.ListenAddr())
}

func TestServer_StartStopContract(t *testing.T) {
	t.Parallel()

	s, ts := newTestServer(t, NewScript([]string{"happy", "sad"}))

	resp := post(t, ts.URL+detector.PathStart)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var status detector.StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "Stream started", status.Status)
	assert.True(t, s.Streaming())

	resp = post(t, ts.URL+detector.PathStop)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "Stream stopped", status.Status)
	assert.False(t, s.Streaming())
}

func TestServer_EmotionsBeforeStart(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, NewScript([]string{"happy"}))

	resp := get(t, ts.URL+detector.PathEmotions)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"emotions":[]}`, string(body))
}

func TestServer_EmotionsFollowCapture(t *testing.T) {
	t.Parallel()

	s, ts := newTestServer(t, NewScript([]string{"happy", "sad"}))

	post(t, ts.URL+detector.PathStart)
	require.Eventually(t, func() bool { return s.Frames() > 0 }, 2*time.Second, time.Millisecond)
	assert.Equal(t, []string{"happy", "sad"}, decodeEmotions(t, ts.URL))
}

func TestServer_StopFreezesLastEmotions(t *testing.T) {
	t.Parallel()

	s, ts := newTestServer(t, NewScript([]string{"surprise"}))

	post(t, ts.URL+detector.PathStart)
	require.Eventually(t, func() bool { return len(s.Emotions()) == 1 }, 2*time.Second, time.Millisecond)
	post(t, ts.URL+detector.PathStop)

	frames := s.Frames()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, frames, s.Frames(), "capture continued after stop")
	assert.Equal(t, []string{"surprise"}, decodeEmotions(t, ts.URL))
}

func TestServer_RepeatedStartKeepsOneCaptureLoop(t *testing.T) {
	t.Parallel()

	s, ts := newTestServer(t, nil)

	post(t, ts.URL+detector.PathStart)
	s.mu.RLock()
	done := s.captureDone
	s.mu.RUnlock()

	post(t, ts.URL+detector.PathStart)
	s.mu.RLock()
	assert.Equal(t, done, s.captureDone)
	s.mu.RUnlock()
}

func TestServer_MethodRestrictions(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, nil)

	resp := post(t, ts.URL+detector.PathEmotions)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp = get(t, ts.URL+detector.PathStart)
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Index(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, nil)

	resp := get(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "index")
}

func TestServer_FailNext(t *testing.T) {
	t.Parallel()

	s, ts := newTestServer(t, nil)
	s.FailNext(detector.PathStart, http.StatusInternalServerError)

	resp := post(t, ts.URL+detector.PathStart)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, s.Streaming(), "faulted request must not reach the handler")

	resp = post(t, ts.URL+detector.PathStart)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, s.Streaming())
	assert.Equal(t, 2, s.Requests(detector.PathStart))
}

func TestServer_InjectFaultBody(t *testing.T) {
	t.Parallel()

	s, ts := newTestServer(t, nil)
	s.InjectFault(detector.PathEmotions, Fault{Body: "<html>not json</html>"})

	resp := get(t, ts.URL+detector.PathEmotions)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<html>not json</html>", string(body))
}

func TestServer_RecordsSession(t *testing.T) {
	t.Parallel()

	s, ts := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodGet, ts.URL+detector.PathEmotions, nil)
	require.NoError(t, err)
	req.Header.Set(detector.HeaderSessionID, "session-42")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "session-42", s.LastSession())
}

func TestServer_VideoFeed(t *testing.T) {
	t.Parallel()

	s, ts := newTestServer(t, NewScript([]string{"happy"}))
	s.StartCapture()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+detector.PathVideoFeed, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/x-mixed-replace", mediaType)
	assert.Equal(t, "frame", params["boundary"])

	reader := multipart.NewReader(resp.Body, params["boundary"])
	for i := 0; i < 2; i++ {
		part, err := reader.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", part.Header.Get("Content-Type"))

		data, err := io.ReadAll(part)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "\xff\xd8"), "part is not a JPEG")
	}
}

func TestServer_Lifecycle(t *testing.T) {
	t.Parallel()

	s, err := NewServer(&Config{Host: "127.0.0.1", Port: 0, FrameInterval: 5 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start(ctx) }()

	require.Eventually(t, func() bool { return s.ListenAddr() != "" }, 2*time.Second, time.Millisecond)

	resp, err := http.Post("http://"+s.ListenAddr()+detector.PathStart, "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, s.Streaming())

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.False(t, s.Streaming())
}

func TestServer_StopBeforeStart(t *testing.T) {
	t.Parallel()

	s, err := NewServer(&Config{})
	require.NoError(t, err)
	assert.NoError(t, s.Stop())
}
