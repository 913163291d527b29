package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/reasonlab/epistress/internal/report"
)

func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <dir>",
		Short: "Compare all result files in a directory against the baseline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := report.LoadDir(args[0])
			if err != nil {
				return err
			}
			return report.Write(os.Stdout, results)
		},
	}
}
