package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the video stream",
	Long: `Ask the backend to start capturing and print its status reply.

This is a one-shot request. Use 'emocam watch' for the interactive panel or
'emocam emotions --follow' to poll the detected emotions.

Example:
  emocam start
  emocam start --backend http://camera.local:8080`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	client := newClient(cfg)
	resp, err := client.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start stream: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, statusLine(resp.Status, "started"))
	fmt.Fprintf(out, "  Video feed: %s\n", client.VideoFeedURL())
	return nil
}

// statusLine prefers the backend's wording and falls back when it sent none.
func statusLine(status, fallback string) string {
	if status != "" {
		return status
	}
	return "Stream " + fallback
}
