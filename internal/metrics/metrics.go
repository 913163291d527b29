// Package metrics computes the core measurement set from a checkpoint
// sequence and its source text. Every function here is pure: same inputs,
// bit-identical outputs, no error paths. Degenerate cases (empty sequences,
// zero denominators) resolve to documented fallback values instead of
// failing.
package metrics

import (
	"math"
	"strings"

	"github.com/reasonlab/epistress/internal/schema"
)

// tokenFactor converts a whitespace word count into an approximate token
// count. A rough proxy, not tokenizer-exact; consumers should treat
// total_tokens as an estimate.
const tokenFactor = 1.3

// EstimateTokens returns the approximate token count of text.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	return int(math.Round(float64(words) * tokenFactor))
}

// CommitmentLatency is the fractional position of the first SELECT or
// CONCLUDE checkpoint. 0.0 means immediate commitment, 1.0 means the
// sequence never commits. The empty sequence is 0.0 by convention.
func CommitmentLatency(cps []schema.Checkpoint) float64 {
	if len(cps) == 0 {
		return 0.0
	}
	for i, cp := range cps {
		if cp.Type == schema.TypeSelect || cp.Type == schema.TypeConclude {
			return float64(i) / float64(len(cps))
		}
	}
	return 1.0
}

// CountByType tallies checkpoints of one type.
func CountByType(cps []schema.Checkpoint, t schema.CheckpointType) int {
	n := 0
	for _, cp := range cps {
		if cp.Type == t {
			n++
		}
	}
	return n
}

// ClaimSelectRatio compares intermediate claims to selections. When there
// are no SELECT checkpoints the ratio is 0.0 regardless of claim count:
// an explicit degenerate-case policy, not an error.
func ClaimSelectRatio(cps []schema.Checkpoint) float64 {
	selects := CountByType(cps, schema.TypeSelect)
	if selects == 0 {
		return 0.0
	}
	return float64(CountByType(cps, schema.TypeClaim)) / float64(selects)
}

// TokensPerCheckpoint is the estimated token count divided by the number of
// checkpoints; 0.0 for the empty sequence.
func TokensPerCheckpoint(text string, cps []schema.Checkpoint) float64 {
	if len(cps) == 0 {
		return 0.0
	}
	return float64(EstimateTokens(text)) / float64(len(cps))
}

// Compute derives the full metric set from one text and its parsed
// checkpoint sequence.
func Compute(text string, cps []schema.Checkpoint) schema.Metrics {
	return schema.Metrics{
		CommitmentLatency:   CommitmentLatency(cps),
		AssumeCount:         CountByType(cps, schema.TypeAssume),
		ClaimCount:          CountByType(cps, schema.TypeClaim),
		BranchCount:         CountByType(cps, schema.TypeBranch),
		SelectCount:         CountByType(cps, schema.TypeSelect),
		ConcludeCount:       CountByType(cps, schema.TypeConclude),
		TotalCheckpoints:    len(cps),
		TotalTokens:         EstimateTokens(text),
		TokensPerCheckpoint: TokensPerCheckpoint(text, cps),
		ClaimSelectRatio:    ClaimSelectRatio(cps),
	}
}
