package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"golden/internal/config"
	"golden/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	repoDir    string
	diffBase   string
}

// cfg is resolved once per invocation by loadConfig.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "golden",
	Short: "Maintain the golden file of expected screenshot URLs",
	Long: "golden builds, reads and compares golden.json: the versioned record of\n" +
		"expected screenshots per page and browser variant used to catch visual regressions.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.configPath, "config", "", "Config file (YAML or JSON)")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&rootFlags.logFormat, "log-format", "", "Log format: text or json")
	f.StringVar(&rootFlags.repoDir, "repo", "", "Repository root holding the golden file")
	f.StringVar(&rootFlags.diffBase, "diff-base", "", "Revision, branch or tag to compare against")

	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(baselineCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	c := config.Default()
	if rootFlags.configPath != "" {
		loaded, err := config.LoadFromPath(rootFlags.configPath)
		if err != nil {
			return err
		}
		c = loaded
	}
	if rootFlags.logLevel != "" {
		c.LogLevel = rootFlags.logLevel
	}
	if rootFlags.logFormat != "" {
		c.LogFormat = rootFlags.logFormat
	}
	if rootFlags.repoDir != "" {
		c.RepoDir = rootFlags.repoDir
	}
	if rootFlags.diffBase != "" {
		c.BaseRev = rootFlags.diffBase
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	level, _ := logging.ParseLevel(c.LogLevel)
	logging.Init(level, c.LogFormat, cmd.ErrOrStderr())
	cfg = c
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
