// Package backend provides a scripted development backend that speaks the
// same HTTP contract as the emotion-detection server.
//
// It performs no detection. Emotions come from a Detector, normally a Script
// that cycles through fixed frames, and the video feed is a synthetic MJPEG
// stream. It exists so the controller, CLI and TUI can be exercised without a
// webcam.
//
// # Endpoints
//
//   - POST /start - begin capture, returns {"status":"Stream started"}
//   - POST /stop - end capture, returns {"status":"Stream stopped"}
//   - GET /emotions - returns {"emotions":[...]} from the latest frame
//   - GET /video_feed - multipart/x-mixed-replace MJPEG, boundary "frame"
//   - GET / - embedded index page
//
// Stopping capture freezes the last detected emotions; /emotions keeps
// returning them until capture starts again.
package backend
