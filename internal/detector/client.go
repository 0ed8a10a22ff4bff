// Package detector provides an HTTP client for the emotion-detection backend.
// The backend exposes three JSON endpoints that begin and end server-side
// capture and report the currently detected emotions, plus an MJPEG video feed.
package detector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Endpoint paths on the detection backend.
const (
	PathStart     = "/start"
	PathStop      = "/stop"
	PathEmotions  = "/emotions"
	PathVideoFeed = "/video_feed"
)

// Headers attached to every request.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderSessionID = "X-Session-ID"
)

// StatusResponse is the body returned by /start and /stop.
type StatusResponse struct {
	Status string `json:"status"`
}

// EmotionsResponse is the body returned by /emotions.
type EmotionsResponse struct {
	Emotions []string `json:"emotions"`
}

// Client talks to a detection backend over HTTP.
type Client struct {
	// baseURL is the backend root (e.g., "http://localhost:8080")
	baseURL string

	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

// DefaultTimeout bounds each request when no option overrides it.
const DefaultTimeout = 10 * time.Second

// NewClient creates a new Client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the base URL of the backend.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// VideoFeedURL returns the MJPEG feed location for display.
func (c *Client) VideoFeedURL() string {
	return c.baseURL + PathVideoFeed
}

// Start asks the backend to begin capture and detection.
func (c *Client) Start(ctx context.Context) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.do(ctx, "start", http.MethodPost, PathStart, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stop asks the backend to end capture and detection.
func (c *Client) Stop(ctx context.Context) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.do(ctx, "stop", http.MethodPost, PathStop, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Emotions fetches the current detected-emotion snapshot.
// A body without an "emotions" array is a decode failure.
func (c *Client) Emotions(ctx context.Context) (*EmotionsResponse, error) {
	var raw struct {
		Emotions *[]string `json:"emotions"`
	}
	if err := c.do(ctx, "emotions", http.MethodGet, PathEmotions, &raw); err != nil {
		return nil, err
	}
	if raw.Emotions == nil {
		return nil, &RequestError{Op: "emotions", Kind: KindDecode, Err: errors.New(`response has no "emotions" array`)}
	}
	return &EmotionsResponse{Emotions: *raw.Emotions}, nil
}

// do performs one request and decodes the JSON body into out.
func (c *Client) do(ctx context.Context, op, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return &RequestError{Op: op, Kind: KindNetwork, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if sessionID := SessionIDFrom(ctx); sessionID != "" {
		req.Header.Set(HeaderSessionID, sessionID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Op: op, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Op: op, Kind: KindNetwork, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{
			Op:   op,
			Kind: KindDecode,
			Err:  fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &RequestError{Op: op, Kind: KindDecode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

type sessionKey struct{}

// WithSessionID returns a context whose requests carry the X-Session-ID header.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

// SessionIDFrom returns the session ID stored by WithSessionID, if any.
func SessionIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// ErrorKind classifies request failures.
type ErrorKind int

const (
	// KindNetwork means the request could not be sent or no response arrived.
	KindNetwork ErrorKind = iota
	// KindDecode means a response arrived but was not the expected JSON.
	KindDecode
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// RequestError is returned by every Client call that fails.
type RequestError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s failure: %v", e.Op, e.Kind, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is a network failure.
func IsNetworkError(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Kind == KindNetwork
}

// IsDecodeError reports whether err is a decode failure.
func IsDecodeError(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Kind == KindDecode
}

// IsTimeout reports whether err was caused by a request timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
