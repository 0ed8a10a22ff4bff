package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/emocam/emocam/internal/controller"
	"github.com/emocam/emocam/internal/logging"
	"github.com/spf13/cobra"
)

var (
	emotionsFollow   bool
	emotionsInterval time.Duration
)

// stopTimeout bounds the final /stop request after a follow run is interrupted.
const stopTimeout = 5 * time.Second

var emotionsCmd = &cobra.Command{
	Use:   "emotions",
	Short: "Print the currently detected emotions",
	Long: `Fetch the emotions detected in the latest frame and print one per line.
An empty snapshot prints "No emotions detected".

With --follow the stream is started, the list is polled every interval and
printed again whenever it changes. Interrupting the command stops the stream.

Example:
  emocam emotions
  emocam emotions --follow
  emocam emotions -f --interval 500ms`,
	Args: cobra.NoArgs,
	RunE: runEmotions,
}

func init() {
	emotionsCmd.Flags().BoolVarP(&emotionsFollow, "follow", "f", false, "start the stream and keep printing changes")
	emotionsCmd.Flags().DurationVar(&emotionsInterval, "interval", 0, "poll interval for --follow (default 1s)")
	rootCmd.AddCommand(emotionsCmd)
}

func runEmotions(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd, map[string]string{"poll.interval": "interval"})
	if err != nil {
		return err
	}
	client := newClient(cfg)
	out := cmd.OutOrStdout()

	if !emotionsFollow {
		resp, err := client.Emotions(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch emotions: %w", err)
		}
		for _, item := range controller.RenderItems(resp.Emotions) {
			fmt.Fprintln(out, item)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	printer := newLinePrinter(out, client.VideoFeedURL())
	ctrl := controller.New(client, printer,
		controller.WithPollInterval(cfg.Poll.Interval),
		controller.WithLogger(logging.With("component", "controller")),
	)
	defer ctrl.Close()

	if err := ctrl.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := ctrl.Stop(stopCtx); err != nil {
		return err
	}
	fmt.Fprintln(out, "Stream stopped")
	return nil
}

// linePrinter is a controller.UI for plain output. It prints the emotion list
// when it changes and announces the video feed when it becomes visible.
type linePrinter struct {
	out      io.Writer
	videoURL string
	now      func() time.Time

	mu      sync.Mutex
	visible bool
	last    []string
}

func newLinePrinter(out io.Writer, videoURL string) *linePrinter {
	return &linePrinter{out: out, videoURL: videoURL, now: time.Now}
}

// SetStartEnabled is a no-op; plain output has no buttons.
func (p *linePrinter) SetStartEnabled(bool) {}

// SetStopEnabled is a no-op; plain output has no buttons.
func (p *linePrinter) SetStopEnabled(bool) {}

func (p *linePrinter) SetVideoVisible(visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if visible && !p.visible {
		fmt.Fprintf(p.out, "Video feed: %s\n", p.videoURL)
	}
	p.visible = visible
}

func (p *linePrinter) ReplaceEmotions(items []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last != nil && slices.Equal(p.last, items) {
		return
	}
	p.last = slices.Clone(items)
	fmt.Fprintf(p.out, "[%s] %s\n", p.now().Format("15:04:05"), strings.Join(items, ", "))
}
