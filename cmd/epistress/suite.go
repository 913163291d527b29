package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/reasonlab/epistress/internal/config"
	"github.com/reasonlab/epistress/internal/extract"
	"github.com/reasonlab/epistress/internal/metrics"
	"github.com/reasonlab/epistress/internal/runner"
	"github.com/reasonlab/epistress/internal/schema"
	"github.com/reasonlab/epistress/internal/suite"
)

func suiteCmd() *cobra.Command {
	var (
		runnerName string
		model      string
		sourceDir  string
		outputDir  string
		suitePath  string
	)

	cmd := &cobra.Command{
		Use:   "suite <prompt>",
		Short: "Run the full perturbation suite against a prompt",
		Long: `Runs every perturbation in the suite against the prompt, extracts
checkpoints from each response, and writes one result file per variant.
The prompt argument is literal text, or a path to a file containing it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSuite(suitePath)
			if err != nil {
				return err
			}

			run, err := resolveRunner(runnerName, model, sourceDir)
			if err != nil {
				return err
			}

			prompt := args[0]
			if data, err := os.ReadFile(prompt); err == nil {
				prompt = string(data)
			}

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return err
			}

			fmt.Printf("Runner: %s\n", run.Name())
			fmt.Printf("Suite: v%s (%d perturbations)\n", s.Version, len(s.Perturbations))
			fmt.Printf("Output: %s\n\n", outputDir)

			failed := 0
			for _, p := range s.Perturbations {
				fmt.Printf("  [%d] %s... ", p.Index, p.Key)

				cfg := runner.VariantConfig{
					SystemSuffix: p.SystemSuffix,
					MaxTokens:    p.MaxTokens,
				}
				text, err := run.Run(cmd.Context(), prompt, p.Key, cfg)
				if err != nil {
					fmt.Printf("FAIL (%s)\n", err)
					failed++
					continue
				}

				checkpoints := extract.ParseCheckpoints(text)
				result := &schema.Result{
					Variant:     p.Key,
					RawText:     text,
					Checkpoints: checkpoints,
					Metrics:     metrics.Compute(text, checkpoints),
				}
				outfile := filepath.Join(outputDir, p.Key+".json")
				if err := schema.SaveResult(result, outfile); err != nil {
					fmt.Printf("FAIL (%s)\n", err)
					failed++
					continue
				}
				fmt.Printf("OK (%d checkpoints)\n", result.Metrics.TotalCheckpoints)
			}

			fmt.Printf("\nDone. Results in %s/\n", outputDir)
			if failed == len(s.Perturbations) {
				return fmt.Errorf("all %d variants failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&runnerName, "runner", "local", "Runner: local, anthropic, or openai")
	cmd.Flags().StringVar(&model, "model", "", "Model identifier (runner-specific)")
	cmd.Flags().StringVar(&sourceDir, "source-dir", "", "Transcript directory for the local runner")
	cmd.Flags().StringVar(&outputDir, "output-dir", "./results", "Directory for result files")
	cmd.Flags().StringVar(&suitePath, "suite", "", "Suite definition YAML (default: built-in v0 suite)")
	return cmd
}

func loadSuite(path string) (*suite.Suite, error) {
	if path == "" {
		return suite.Default(), nil
	}
	return suite.Load(path)
}

// resolveRunner builds the requested runner, taking API keys and default
// models from the environment.
func resolveRunner(name, model, sourceDir string) (runner.Runner, error) {
	cfg := config.Load()

	switch name {
	case "local":
		return runner.NewLocalRunner(sourceDir), nil
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
		}
		if model == "" {
			model = cfg.AnthropicModel
		}
		return runner.NewAnthropicRunner(cfg.AnthropicAPIKey, model), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		if model == "" {
			model = cfg.OpenAIModel
		}
		return runner.NewOpenAIRunner(cfg.OpenAIAPIKey, model), nil
	default:
		return nil, fmt.Errorf("unknown runner: %s", name)
	}
}
