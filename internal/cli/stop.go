package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the video stream",
	Long: `Ask the backend to stop capturing and print its status reply.

The last detected emotions remain available from the backend until the
stream is started again.

Example:
  emocam stop`,
	Args: cobra.NoArgs,
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	resp, err := newClient(cfg).Stop(ctx)
	if err != nil {
		return fmt.Errorf("failed to stop stream: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), statusLine(resp.Status, "stopped"))
	return nil
}
