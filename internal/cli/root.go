package cli

import (
	"fmt"
	"os"

	"github.com/emocam/emocam/internal/config"
	"github.com/emocam/emocam/internal/detector"
	"github.com/emocam/emocam/internal/logging"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	flagBackend  string
	flagLogLevel string
	flagDir      string
)

var rootCmd = &cobra.Command{
	Use:   "emocam",
	Short: "Control a webcam emotion-detection stream",
	Long: `emocam starts and stops the video stream of an emotion-detection
backend and shows the emotions it currently detects, refreshed once a second.

Settings are read from .emocam/config.yaml, .emocam/.env and EMOCAM_*
environment variables; flags override all of them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("emocam version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "detection backend URL (default "+config.DefaultBackendURL+")")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "directory containing .emocam/ (default current directory)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// basePath returns the directory holding .emocam/.
func basePath() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return cwd, nil
}

// loadConfig loads configuration for cmd, with its flags bound on top, and
// applies the logging settings. extra maps config keys to local flag names.
func loadConfig(cmd *cobra.Command, extra map[string]string) (*config.Config, error) {
	base, err := basePath()
	if err != nil {
		return nil, err
	}

	loader := config.NewLoader(base)
	bindings := map[string]string{
		"backend.url": "backend",
		"log.level":   "log-level",
	}
	for key, name := range extra {
		bindings[key] = name
	}
	for key, name := range bindings {
		if err := loader.BindFlag(key, cmd.Flag(name)); err != nil {
			return nil, fmt.Errorf("failed to bind flag: %w", err)
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	configureLogging(cfg.Log)
	logging.Debug("config loaded", "dir", base, "backend", cfg.Backend.URL, "interval", cfg.Poll.Interval)
	return cfg, nil
}

func configureLogging(cfg config.Log) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		level = logging.LevelWarn
	}
	logging.SetLevel(level)
	logging.Default().SetTimestamps(cfg.Timestamps)
}

func newClient(cfg *config.Config) *detector.Client {
	return detector.NewClient(cfg.Backend.URL, detector.WithTimeout(cfg.Backend.RequestTimeout))
}
