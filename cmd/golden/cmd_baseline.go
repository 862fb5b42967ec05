package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var baselineFlags struct {
	outputPath string
}

var baselineCmd = &cobra.Command{
	Use:   "baseline [golden-path]",
	Short: "Print the golden file as it exists at the diff base",
	Long: `Fetches the baseline branch history and prints the golden file at the diff base
in canonical form. With -o, writes it to a file instead, keeping its diffReportUrl.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBaseline,
}

func init() {
	baselineCmd.Flags().StringVarP(&baselineFlags.outputPath, "output", "o", "", "Write the baseline to this file instead of stdout")
}

func runBaseline(cmd *cobra.Command, args []string) error {
	rel := goldenArg(cfg, args)
	store, err := newLoader(cfg).FromBaseline(cmd.Context(), rel)
	if err != nil {
		return fmt.Errorf("baseline %s at %s: %w", rel, cfg.DiffBase(), err)
	}

	if baselineFlags.outputPath != "" {
		report, _ := store.DiffReportURL()
		if err := store.WriteToDisk(cmd.Context(), baselineFlags.outputPath, report); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote baseline %s@%s to %s\n", rel, cfg.DiffBase(), baselineFlags.outputPath)
		return nil
	}

	data, err := store.Bytes()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
