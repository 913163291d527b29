// Package main provides the epistress binary entry point.
//
// Epistress measures how pressure deforms the structure of model
// reasoning: it extracts epistemic checkpoints from annotated
// transcripts, computes structural metrics, and compares reasoning
// topology across perturbation variants.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	appName    = "epistress"
	appVersion = "0.1.0"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Epistemic stress harness",
		Long: `Epistress runs reasoning tasks under perturbation (confidence
incentives, authority framing, token budgets) and measures how the
epistemic structure of the output deforms relative to a baseline.

Transcripts are annotated with checkpoint markers such as
[ASSUME: ...], [BRANCH: ...] and [SELECT: ...]; the harness extracts
these, computes structural metrics, and compares topology across
variants.`,
	}

	cmd.AddCommand(
		extractCmd(),
		compareCmd(),
		suiteCmd(),
		controlsCmd(),
		serveCmd(),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, appVersion)
		},
	}
}
