package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/emocam/emocam/internal/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize .emocam/ directory structure",
	Long: `Creates the .emocam/ directory with a default configuration file.

This command sets up:
  - config.yaml with the backend URL, poll interval and logging settings
  - .env placeholder for EMOCAM_* overrides
  - .gitignore keeping .env out of version control`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config.yaml")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	base, err := basePath()
	if err != nil {
		return err
	}

	configPath := config.ConfigPath(base)
	existed := fileExists(configPath)
	if existed && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	cfg := config.DefaultConfig()
	if flagBackend != "" {
		cfg.Backend.URL = flagBackend
	}
	if err := config.SaveConfig(base, &cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := writeIfMissing(config.EnvFilePath(base), envTemplate); err != nil {
		return err
	}
	if err := writeIfMissing(filepath.Join(dir, ".gitignore"), ".env\n"); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if existed {
		fmt.Fprintf(out, "Overwrote %s\n", configPath)
	} else {
		fmt.Fprintf(out, "Initialized %s/ directory\n", config.Dir)
	}
	return nil
}

const envTemplate = `# Environment overrides for emocam, for example:
# EMOCAM_BACKEND_URL=http://localhost:8080
# EMOCAM_LOG_LEVEL=debug
`

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func writeIfMissing(path, content string) error {
	if fileExists(path) {
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
