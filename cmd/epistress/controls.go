package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reasonlab/epistress/internal/controls"
)

func controlsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "controls",
		Short: "Run the negative controls that validate harness integrity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !controls.Run(os.Stdout) {
				return fmt.Errorf("negative controls failed")
			}
			return nil
		},
	}
}
