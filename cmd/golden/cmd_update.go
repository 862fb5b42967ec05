package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"golden/internal/golden"
	"golden/internal/manifest"
)

var updateFlags struct {
	manifestPath  string
	outputPath    string
	diffReportURL string
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rewrite the golden file from captured test-case results",
	Long: `Builds a fresh golden file from the manifest written by the screenshot capture
step (one page per test case, one screenshot per browser variant), stamps the diff
report URL and replaces the golden file atomically.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	f := updateCmd.Flags()
	f.StringVarP(&updateFlags.manifestPath, "manifest", "m", "", "Captured test-case results, YAML or JSON (required)")
	f.StringVarP(&updateFlags.outputPath, "output", "o", "", "Golden file to write (default: golden_path under the repo)")
	f.StringVar(&updateFlags.diffReportURL, "diff-report-url", "", "URL of the generated diff report")

	_ = updateCmd.MarkFlagRequired("manifest")
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	m, err := manifest.LoadFromPath(updateFlags.manifestPath)
	if err != nil {
		return err
	}

	out := updateFlags.outputPath
	if out == "" {
		out = localPath(cfg, cfg.GoldenPath)
	}

	store := golden.FromTestCases(m.TestCases)
	if err := store.WriteToDisk(cmd.Context(), out, updateFlags.diffReportURL); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n\nDONE updating %q!\n\n", out)
	return nil
}
