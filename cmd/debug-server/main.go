// Standalone development backend with scripted detections.
// Run with: go run ./cmd/debug-server
// Then point emocam at it: emocam watch --backend http://localhost:8080
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emocam/emocam/internal/backend"
	"github.com/emocam/emocam/internal/logging"
	"github.com/emocam/emocam/web"
	"golang.org/x/sync/errgroup"
)

func main() {
	host := flag.String("host", "localhost", "address to listen on")
	port := flag.Int("port", backend.DefaultPort, "port to listen on (0 picks a free port)")
	interval := flag.Duration("frame-interval", backend.DefaultFrameInterval, "time between captured frames")
	autostart := flag.Bool("autostart", false, "start capturing without waiting for POST /start")
	verbose := flag.Bool("v", false, "log every request")
	flag.Parse()

	if *verbose {
		logging.SetLevel(logging.LevelDebug)
	}

	// Check if web/dist exists so edits show up without a rebuild
	if stat, err := os.Stat("./web/dist"); err != nil || !stat.IsDir() {
		fmt.Fprintln(os.Stderr, "Using embedded index page.")
	} else {
		fmt.Println("Using live assets from ./web/dist")
	}

	srv, err := backend.NewServer(&backend.Config{
		Host:          *host,
		Port:          *port,
		FrameInterval: *interval,
		Assets:        web.GetAssets("./web/dist"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create server: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		// Wait for the listener so the printed address is the real one.
		for srv.ListenAddr() == "" {
			select {
			case <-gctx.Done():
				return nil
			case <-time.After(10 * time.Millisecond):
			}
		}
		addr := srv.ListenAddr()
		if *autostart {
			srv.StartCapture()
		}
		fmt.Printf("Backend running on http://%s\n", addr)
		fmt.Println("\nTest with:")
		fmt.Printf("  curl -X POST http://%s/start\n", addr)
		fmt.Printf("  curl http://%s/emotions\n", addr)
		fmt.Printf("  curl -X POST http://%s/stop\n", addr)
		return nil
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\nShut down.")
}
