// Package testutil provides shared test utilities for emocam.
//
// This package consolidates common test helpers, fixtures, and assertions
// used across the emocam codebase to keep test patterns consistent.
//
// # Fixtures
//
// The fixtures.go file provides sample detection data:
//
//   - HappyFrame, CrowdFrame, EmptyFrame - single-frame emotion lists
//   - SampleScript() - a backend.Script cycling through those frames
//   - SampleConfig() - a config.Config pointed at a given backend URL
//
// # Environment Helpers
//
// The env.go file provides test environment setup:
//
//   - SetupTestDir(t) - creates a temp directory with .emocam structure
//   - WriteTestFile(t, base, path, content) - writes a file in test dir
//   - StartBackend(t, detector) - runs the development backend over httptest
//   - Eventually(t, cond) - polls a condition with the package timeouts
//
// # Assertions
//
// The assertions.go file provides custom test assertions:
//
//   - AssertProjection(t, ui, state) - checks buttons and video panel
//   - AssertStreaming(t, ui), AssertStopped(t, ui) - projection shortcuts
//   - AssertRendered(t, items, emotions) - checks a rendered emotion list
//   - AssertNoEmotions(t, items) - checks for the sentinel entry
//
// # Usage
//
// Import the package in your test files:
//
//	import "github.com/emocam/emocam/internal/testutil"
//
// Then use the helpers:
//
//	func TestSomething(t *testing.T) {
//	    srv, url := testutil.StartBackend(t, testutil.SampleScript())
//	    // ... run test ...
//	    testutil.AssertRendered(t, items, testutil.HappyFrame)
//	}
package testutil
