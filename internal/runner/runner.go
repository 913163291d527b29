// Package runner contains the model adapters that produce raw annotated
// text. The harness core has no knowledge of how text was produced; runners
// only promise that their output, whatever its source, may contain
// checkpoint annotations per the grammar.
package runner

import (
	"context"
	"fmt"
)

// CheckpointInstruction is the system prompt that asks a model to annotate
// its reasoning with epistemic checkpoints.
const CheckpointInstruction = `Annotate your reasoning with epistemic checkpoints using these tags:

[ASSUME: your starting assumptions]
[CLAIM: intermediate assertions]
[BRANCH: alternative A vs alternative B]
[SELECT: chosen option | because: justification]
[CONCLUDE: final answer]

Rules:
- Use uppercase tags in square brackets
- Place checkpoints inline with your reasoning
- Order matters: the sequence records your epistemic trajectory
- Do not nest checkpoints
`

// defaultMaxTokens bounds a response when the perturbation does not set one.
const defaultMaxTokens = 1024

// VariantConfig carries perturbation-specific parameters to a runner.
type VariantConfig struct {
	// SystemSuffix is appended to the checkpoint instruction.
	SystemSuffix string
	// MaxTokens caps the response length; 0 means the runner default.
	MaxTokens int
	// Text, when set, is returned directly by the local runner.
	Text string
}

// Runner produces annotated text for a prompt under a named perturbation
// variant.
type Runner interface {
	// Run sends the prompt and returns the model response containing
	// checkpoint annotations.
	Run(ctx context.Context, prompt, variant string, cfg VariantConfig) (string, error)
	// Name returns the model/runner identifier.
	Name() string
}

// systemPrompt combines the checkpoint instruction with a perturbation's
// system suffix.
func systemPrompt(cfg VariantConfig) string {
	if cfg.SystemSuffix == "" {
		return CheckpointInstruction
	}
	return CheckpointInstruction + "\n\n" + cfg.SystemSuffix
}

// maxTokens resolves the effective response cap for a variant.
func maxTokens(cfg VariantConfig) int {
	if cfg.MaxTokens > 0 {
		return cfg.MaxTokens
	}
	return defaultMaxTokens
}

// RetryableError indicates a transient provider failure worth retrying.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
