package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"golden/internal/format"
)

var errGoldenDiffers = errors.New("golden file differs from baseline")

var diffFlags struct {
	markdown bool
	maxURL   int
	exitCode bool
}

var diffCmd = &cobra.Command{
	Use:   "diff [golden-path]",
	Short: "Compare the local golden file against the baseline at the diff base",
	Long: `Loads the golden file at the diff base and the local copy concurrently and lists
pages and screenshots that were added, removed or changed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiff,
}

func init() {
	f := diffCmd.Flags()
	f.BoolVar(&diffFlags.markdown, "markdown", false, "Render a Markdown table")
	f.IntVar(&diffFlags.maxURL, "max-url", 0, "Truncate URLs to this many characters (0 = no limit)")
	f.BoolVar(&diffFlags.exitCode, "exit-code", false, "Fail when the golden file differs from the baseline")
}

func runDiff(cmd *cobra.Command, args []string) error {
	rel := goldenArg(cfg, args)
	result, err := newLoader(cfg).Diff(cmd.Context(), rel, localPath(cfg, rel))
	if err != nil {
		return fmt.Errorf("diff %s against %s: %w", rel, cfg.DiffBase(), err)
	}

	out := cmd.OutOrStdout()
	if result.Empty() {
		fmt.Fprintf(out, "%s matches %s (%d screenshots)\n", rel, cfg.DiffBase(), result.Unchanged)
		return nil
	}
	fmt.Fprintf(out, "%s vs %s\n", rel, cfg.DiffBase())
	fmt.Fprintln(out, format.ComparisonTable(result, tableOptions(diffFlags.markdown, diffFlags.maxURL)))
	if diffFlags.exitCode {
		return errGoldenDiffers
	}
	return nil
}
