package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"golden/internal/format"
	"golden/internal/golden"
)

var showFlags struct {
	markdown bool
	maxURL   int
}

var showCmd = &cobra.Command{
	Use:   "show [golden-path]",
	Short: "List pages and screenshots of the local golden file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	f := showCmd.Flags()
	f.BoolVar(&showFlags.markdown, "markdown", false, "Render a Markdown table")
	f.IntVar(&showFlags.maxURL, "max-url", 0, "Truncate URLs to this many characters (0 = no limit)")
}

func runShow(cmd *cobra.Command, args []string) error {
	path := localPath(cfg, goldenArg(cfg, args))
	store, err := golden.ReadFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, format.RecordTable(store.Records(), tableOptions(showFlags.markdown, showFlags.maxURL)))
	if u, ok := store.DiffReportURL(); ok && u != "" {
		fmt.Fprintf(out, "Diff report: %s\n", u)
	}
	return nil
}
