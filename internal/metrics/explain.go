package metrics

import (
	"fmt"

	"github.com/reasonlab/epistress/internal/schema"
)

// Explanation pairs a metric name with a human-readable reading of its value.
type Explanation struct {
	Metric string
	Text   string
}

// Explain renders each metric value as a sentence for CLI output. Order is
// stable so repeated runs print identically.
func Explain(m schema.Metrics) []Explanation {
	return []Explanation{
		{"commitment_latency", fmt.Sprintf(
			"Commitment latency is %.2f, the fraction of checkpoints before the first SELECT or CONCLUDE. Lower values indicate earlier commitment.",
			m.CommitmentLatency)},
		{"assume_count", fmt.Sprintf(
			"ASSUME count is %d, representing explicit starting assumptions.", m.AssumeCount)},
		{"claim_count", fmt.Sprintf(
			"CLAIM count is %d, capturing intermediate assertions.", m.ClaimCount)},
		{"branch_count", fmt.Sprintf(
			"Branch count is %d, the number of BRANCH checkpoints that record alternatives.", m.BranchCount)},
		{"select_count", fmt.Sprintf(
			"SELECT count is %d, the number of explicit choice points.", m.SelectCount)},
		{"conclude_count", fmt.Sprintf(
			"CONCLUDE count is %d, the number of final conclusions.", m.ConcludeCount)},
		{"total_checkpoints", fmt.Sprintf(
			"Total checkpoints is %d, the total number of annotated checkpoints.", m.TotalCheckpoints)},
		{"tokens_per_checkpoint", fmt.Sprintf(
			"Tokens per checkpoint is %.1f, a rough density estimate based on an approximate word count multiplied by %.1f. Higher values mean more justification per checkpoint.",
			m.TokensPerCheckpoint, tokenFactor)},
		{"claim_select_ratio", fmt.Sprintf(
			"CLAIM/SELECT ratio is %.2f, comparing intermediate claims to selections. Higher values imply more justificatory steps per commitment.",
			m.ClaimSelectRatio)},
		{"total_tokens", fmt.Sprintf(
			"Total tokens is %d, a rough estimate derived from word count.", m.TotalTokens)},
	}
}
