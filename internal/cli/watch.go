package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/emocam/emocam/internal/controller"
	"github.com/emocam/emocam/internal/logging"
	"github.com/emocam/emocam/internal/tui"
	"github.com/spf13/cobra"
)

var watchOpenBrowser bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the interactive control panel",
	Long: `Show the Start and Stop buttons, the video display panel and the list of
detected emotions in the terminal.

While streaming, the emotion list is refreshed every poll interval. Diagnostics
are collected in a separate pane instead of being written over the panel.

Keys:
  s  start the stream      x  stop the stream
  r  refresh emotions      o  open the video feed in a browser
  l  toggle diagnostics    q  quit

Example:
  emocam watch
  emocam watch --open-browser`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchOpenBrowser, "open-browser", false, "open the video feed in a browser whenever the stream starts")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd, map[string]string{"display.open_browser": "open-browser"})
	if err != nil {
		return err
	}

	t := tui.NewTUI(cmd.OutOrStdout())
	if !t.Interactive() {
		return errors.New("watch needs an interactive terminal; use 'emocam emotions --follow' instead")
	}

	client := newClient(cfg)
	t.SetBackend(client.BaseURL())
	t.SetVideoURL(client.VideoFeedURL())

	// Diagnostics go to the log pane while the panel owns the screen.
	logging.SetOutput(t.LogWriter())
	defer logging.SetOutput(os.Stderr)

	ctrl := controller.New(client, t,
		controller.WithPollInterval(cfg.Poll.Interval),
		controller.WithLogger(logging.With("component", "controller")),
	)
	defer ctrl.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := tui.NewRunner(t, ctrl, tui.WithOpenOnStart(cfg.Display.OpenBrowser))
	runErr := runner.Run(ctx)
	logging.SetOutput(os.Stderr)

	if ctrl.State() == controller.StateStreaming {
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		if err := ctrl.Stop(stopCtx); err != nil {
			logging.Warn("failed to stop stream on exit", "error", err)
		}
	}

	return runErr
}
