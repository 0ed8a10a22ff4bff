package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"strconv"
	"sync"
	"time"

	"github.com/emocam/emocam/internal/detector"
	"github.com/emocam/emocam/internal/logging"
	"github.com/emocam/emocam/web"
	"github.com/gorilla/mux"
)

// Status strings returned by /start and /stop.
const (
	StatusStarted = "Stream started"
	StatusStopped = "Stream stopped"
)

// FrameBoundary separates JPEG parts in the video feed.
const FrameBoundary = "frame"

// Defaults for Config fields left zero.
const (
	DefaultPort          = 8080
	DefaultFrameInterval = 100 * time.Millisecond
)

// Config holds server configuration options.
type Config struct {
	Host string
	// Port 0 picks a free port; see ListenAddr.
	Port          int
	FrameInterval time.Duration
	Detector      Detector
	// Assets serves GET /. Defaults to the embedded index page.
	Assets fs.FS
}

// Fault is a canned response returned instead of the next real one.
type Fault struct {
	Status int
	Body   string
}

// Server is the development backend.
type Server struct {
	host          string
	port          int
	frameInterval time.Duration
	detector      Detector
	router        *mux.Router
	log           *logging.Logger

	// HTTP server
	server   *http.Server
	listener net.Listener
	closing  chan struct{}

	mu          sync.RWMutex
	streaming   bool
	frame       int
	emotions    []string
	jpeg        []byte
	captureStop context.CancelFunc
	captureDone chan struct{}
	faults      map[string]Fault
	requests    map[string]int
	lastSession string
	started     bool
}

// NewServer creates a new Server instance.
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if cfg.Port < 0 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}

	s := &Server{
		host:          cfg.Host,
		port:          cfg.Port,
		frameInterval: cfg.FrameInterval,
		detector:      cfg.Detector,
		log:           logging.With("component", "backend"),
		closing:       make(chan struct{}),
		emotions:      []string{},
		faults:        make(map[string]Fault),
		requests:      make(map[string]int),
	}
	if s.frameInterval <= 0 {
		s.frameInterval = DefaultFrameInterval
	}
	if s.detector == nil {
		s.detector = DefaultScript()
	}

	assets := cfg.Assets
	if assets == nil {
		assets = web.GetAssets("")
	}
	s.router = s.routes(assets)

	return s, nil
}

func (s *Server) routes(assets fs.FS) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc(detector.PathStart, s.handleStart).Methods(http.MethodPost)
	r.HandleFunc(detector.PathStop, s.handleStop).Methods(http.MethodPost)
	r.HandleFunc(detector.PathEmotions, s.handleEmotions).Methods(http.MethodGet)
	r.HandleFunc(detector.PathVideoFeed, s.handleVideoFeed).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(http.FileServer(http.FS(assets))).Methods(http.MethodGet)
	r.Use(s.track)
	return r
}

// Handler returns the routed handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens and serves until ctx is cancelled or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.New("server already started")
	}

	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	// No write timeout: the video feed is a long-lived response.
	s.server = &http.Server{
		Handler:     s.router,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}
	s.started = true
	s.mu.Unlock()

	s.log.Info("backend listening", "addr", listener.Addr().String())

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			if err := s.Stop(); err != nil {
				s.log.Warn("failed to stop backend", "error", err)
			}
		case <-stopped:
		}
	}()

	err = s.server.Serve(listener)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Stop ends capture, closes open video feeds and shuts the server down.
func (s *Server) Stop() error {
	s.StopCapture()

	s.mu.Lock()
	if !s.started || s.server == nil {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	server := s.server
	close(s.closing)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// ListenAddr returns the actual address the server is listening on.
// Returns empty string if not started.
func (s *Server) ListenAddr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// StartCapture begins the capture loop. It is a no-op while capturing.
func (s *Server) StartCapture() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streaming {
		return
	}
	s.streaming = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.captureStop = cancel
	s.captureDone = done

	go s.captureLoop(ctx, done)
	s.log.Info("capture started")
}

// StopCapture ends the capture loop and waits for it to exit. The last
// detected emotions are kept.
func (s *Server) StopCapture() {
	s.mu.Lock()
	if !s.streaming {
		s.mu.Unlock()
		return
	}
	s.streaming = false
	s.captureStop()
	done := s.captureDone
	s.mu.Unlock()

	<-done
	s.log.Info("capture stopped")
}

func (s *Server) captureLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.frameInterval)
	defer ticker.Stop()

	for {
		s.capture()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// capture grabs one frame: detect, then render.
func (s *Server) capture() {
	s.mu.Lock()
	s.frame++
	n := s.frame
	s.mu.Unlock()

	emotions := s.detector.Detect(n)
	if emotions == nil {
		emotions = []string{}
	}
	jpg, err := RenderFrame(n, emotions)
	if err != nil {
		s.log.Warn("failed to render frame", "frame", n, "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.streaming {
		return
	}
	s.emotions = emotions
	if jpg != nil {
		s.jpeg = jpg
	}
}

// Streaming reports whether capture is running.
func (s *Server) Streaming() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streaming
}

// Emotions returns the emotions of the latest captured frame.
func (s *Server) Emotions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.emotions))
	copy(out, s.emotions)
	return out
}

// Frames returns how many frames have been captured.
func (s *Server) Frames() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

// InjectFault makes the next request to path return f instead.
func (s *Server) InjectFault(path string, f Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[path] = f
}

// FailNext makes the next request to path fail with status.
func (s *Server) FailNext(path string, status int) {
	s.InjectFault(path, Fault{Status: status, Body: http.StatusText(status)})
}

// Requests returns how many requests reached path.
func (s *Server) Requests(path string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requests[path]
}

// LastSession returns the most recent X-Session-ID seen.
func (s *Server) LastSession() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSession
}

// track counts requests and serves injected faults.
func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests[r.URL.Path]++
		if id := r.Header.Get(detector.HeaderSessionID); id != "" {
			s.lastSession = id
		}
		fault, faulted := s.faults[r.URL.Path]
		delete(s.faults, r.URL.Path)
		s.mu.Unlock()

		s.log.Debug("request", "method", r.Method, "path", r.URL.Path,
			"request_id", r.Header.Get(detector.HeaderRequestID))

		if faulted {
			status := fault.Status
			if status == 0 {
				status = http.StatusOK
			}
			w.WriteHeader(status)
			io.WriteString(w, fault.Body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.StartCapture()
	writeJSON(w, detector.StatusResponse{Status: StatusStarted})
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.StopCapture()
	writeJSON(w, detector.StatusResponse{Status: StatusStopped})
}

func (s *Server) handleEmotions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, detector.EmotionsResponse{Emotions: s.Emotions()})
}

// handleVideoFeed streams captured frames as MJPEG until the client goes
// away or the server stops. Nothing is sent while capture is stopped.
func (s *Server) handleVideoFeed(w http.ResponseWriter, r *http.Request) {
	mw := multipart.NewWriter(w)
	if err := mw.SetBoundary(FrameBoundary); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+FrameBoundary)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	if flusher != nil {
		flusher.Flush()
	}

	ticker := time.NewTicker(s.frameInterval)
	defer ticker.Stop()

	sent := -1
	for {
		s.mu.RLock()
		jpg, n, live := s.jpeg, s.frame, s.streaming
		s.mu.RUnlock()

		if live && jpg != nil && n != sent {
			part, err := mw.CreatePart(textproto.MIMEHeader{
				"Content-Type":   {"image/jpeg"},
				"Content-Length": {strconv.Itoa(len(jpg))},
			})
			if err != nil {
				return
			}
			if _, err := part.Write(jpg); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
			sent = n
		}

		select {
		case <-r.Context().Done():
			return
		case <-s.closing:
			return
		case <-ticker.C:
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
