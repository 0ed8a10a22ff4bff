// tui-demo is a manual test program for verifying TUI rendering.
// Run with: go run ./cmd/tui-demo
//
// It prints the panel in each controller state, then runs the interactive
// panel against an in-process scripted backend so the buttons, the emotion
// list and the diagnostics pane can be exercised without a camera.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/emocam/emocam/internal/backend"
	"github.com/emocam/emocam/internal/controller"
	"github.com/emocam/emocam/internal/detector"
	"github.com/emocam/emocam/internal/logging"
	"github.com/emocam/emocam/internal/tui"
	"golang.org/x/sync/errgroup"
)

func main() {
	fmt.Println("TUI Demo - Panel Rendering Test")
	fmt.Println("===============================")
	fmt.Println()
	printStaticFrames()

	fmt.Println()
	fmt.Println("Next: the interactive panel against a scripted backend.")
	fmt.Println("Press 's' to start, 'x' to stop, 'l' for diagnostics, 'q' to quit.")
	fmt.Println("Press Enter to start...")
	fmt.Scanln()

	if err := runDemo(); err != nil {
		fmt.Fprintf(os.Stderr, "Demo error: %v\n", err)
		os.Exit(1)
	}
}

// printStaticFrames renders the panel for each state without raw mode.
func printStaticFrames() {
	panel := &tui.PanelView{}
	frames := []struct {
		title string
		state controller.State
		items []string
	}{
		{"Stopped, before the first tick", controller.StateStopped, nil},
		{"Streaming, faces in view", controller.StateStreaming, []string{"happy", "surprise"}},
		{"Streaming, nobody in view", controller.StateStreaming, controller.RenderItems(nil)},
		{"Stopped, last list kept", controller.StateStopped, []string{"sad"}},
	}

	for _, f := range frames {
		p := f.state.Projection()
		state := tui.PanelState{
			Backend:      "http://localhost:8080",
			StartEnabled: p.StartEnabled,
			StopEnabled:  p.StopEnabled,
			VideoVisible: p.VideoVisible,
			VideoURL:     "http://localhost:8080" + detector.PathVideoFeed,
			Emotions:     f.items,
		}
		fmt.Println(f.title + ":")
		for _, line := range panel.Render(state, 60) {
			fmt.Println(line)
		}
		fmt.Println()
	}
}

func runDemo() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := backend.NewServer(&backend.Config{
		Host:          "127.0.0.1",
		FrameInterval: 500 * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("failed to create backend: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})

	for srv.ListenAddr() == "" {
		time.Sleep(10 * time.Millisecond)
	}

	client := detector.NewClient("http://" + srv.ListenAddr())
	ui := tui.NewTUI(os.Stdout)
	ui.SetBackend(client.BaseURL())
	ui.SetVideoURL(client.VideoFeedURL())

	logging.SetLevel(logging.LevelDebug)
	logging.SetOutput(ui.LogWriter())
	defer logging.SetOutput(os.Stderr)

	ctrl := controller.New(client, ui)
	defer ctrl.Close()

	g.Go(func() error {
		defer cancel()
		return tui.NewRunner(ui, ctrl).Run(gctx)
	})

	return g.Wait()
}
