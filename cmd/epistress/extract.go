package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/reasonlab/epistress/internal/extract"
	"github.com/reasonlab/epistress/internal/metrics"
	"github.com/reasonlab/epistress/internal/schema"
	"github.com/reasonlab/epistress/internal/transcript"
)

func extractCmd() *cobra.Command {
	var (
		variant string
		output  string
		explain bool
	)

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract checkpoints and metrics from an annotated text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := loadAnnotatedText(args[0])
			if err != nil {
				return err
			}

			checkpoints := extract.ParseCheckpoints(text)
			result := &schema.Result{
				Variant:     variant,
				RawText:     text,
				Checkpoints: checkpoints,
				Metrics:     metrics.Compute(text, checkpoints),
			}

			if output != "" {
				if err := schema.SaveResult(result, output); err != nil {
					return err
				}
				fmt.Printf("Saved: %s\n", output)
			} else {
				out, err := json.MarshalIndent(result.Metrics, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
			}

			if explain {
				fmt.Println()
				for _, e := range metrics.Explain(result.Metrics) {
					fmt.Printf("  %s\n", e.Text)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "baseline", "Variant label for the result")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the full result JSON to this path")
	cmd.Flags().BoolVar(&explain, "explain", false, "Print metric explanations")
	return cmd
}

// loadAnnotatedText reads a transcript file, flattening known container
// formats (markdown, HTML, PDF, DOCX) so the checkpoint markers inside
// them are scannable. Unrecognized extensions are read as plain text.
func loadAnnotatedText(path string) (string, error) {
	loader, err := transcript.ForFile(path)
	if err != nil {
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return "", rerr
		}
		return string(data), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	ts, err := loader.Load(f, filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("load transcript %s: %w", path, err)
	}
	return ts.Text, nil
}
