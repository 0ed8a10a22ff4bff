package testutil

import (
	"github.com/emocam/emocam/internal/backend"
	"github.com/emocam/emocam/internal/config"
)

// Sample frames. Callers must not modify them.
var (
	HappyFrame = []string{"happy"}
	CrowdFrame = []string{"happy", "sad", "surprise"}
	EmptyFrame = []string{}
)

// SampleScript returns a detector cycling through HappyFrame, CrowdFrame and
// EmptyFrame. Returns a new script each time to prevent test interference.
func SampleScript() *backend.Script {
	return backend.NewScript(HappyFrame, CrowdFrame, EmptyFrame)
}

// ConstantScript returns a detector that reports the same emotions for
// every frame.
func ConstantScript(emotions ...string) *backend.Script {
	if emotions == nil {
		emotions = []string{}
	}
	return backend.NewScript(emotions)
}

// SampleConfig returns the default configuration aimed at backendURL.
func SampleConfig(backendURL string) config.Config {
	cfg := config.DefaultConfig()
	cfg.Backend.URL = backendURL
	return cfg
}
