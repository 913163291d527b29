// Package topology compares two checkpoint sequences by the ordered shape
// of their type labels. Checkpoint content is irrelevant here: only the
// label sequence defines the topology being measured.
package topology

import (
	"errors"
	"fmt"

	"github.com/reasonlab/epistress/internal/schema"
)

// ErrEmptyBaseline is returned when a depth ratio is requested against an
// empty baseline and a non-empty variant. No numeric fallback is meaningful
// for that division, so it is the one error condition in the core.
var ErrEmptyBaseline = errors.New("depth ratio undefined: empty baseline with non-empty variant")

// TypeSequence extracts the ordered type labels from a checkpoint sequence.
func TypeSequence(cps []schema.Checkpoint) []schema.CheckpointType {
	types := make([]schema.CheckpointType, len(cps))
	for i, cp := range cps {
		types[i] = cp.Type
	}
	return types
}

// NodeOverlap is the Jaccard similarity of the sets of distinct checkpoint
// types present in each sequence. Counts do not weight the result: a type
// is either present or absent. Two empty sequences overlap fully by
// convention.
func NodeOverlap(a, b []schema.CheckpointType) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	inA := typeSet(a)
	inB := typeSet(b)

	intersection := 0
	union := 0
	for _, t := range schema.CheckpointTypes {
		switch {
		case inA[t] && inB[t]:
			intersection++
			union++
		case inA[t] || inB[t]:
			union++
		}
	}
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func typeSet(seq []schema.CheckpointType) map[schema.CheckpointType]bool {
	set := make(map[schema.CheckpointType]bool, len(schema.CheckpointTypes))
	for _, t := range seq {
		set[t] = true
	}
	return set
}

// SequenceSimilarity is one minus the normalized Levenshtein distance
// between the two label sequences, each checkpoint type treated as a single
// symbol. 1.0 means identical ordering; two empty sequences are identical.
func SequenceSimilarity(a, b []schema.CheckpointType) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	maxLen := max(len(a), len(b))
	return 1.0 - float64(editDistance(a, b))/float64(maxLen)
}

// editDistance is the classic single-symbol substitution/insertion/deletion
// edit distance over two label sequences. Sequences are short (tens of
// elements), so the full DP table is fine.
func editDistance(a, b []schema.CheckpointType) int {
	m, n := len(a), len(b)
	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			sub := d[i-1][j-1]
			if a[i-1] != b[j-1] {
				sub++
			}
			d[i][j] = min(sub, d[i][j-1]+1, d[i-1][j]+1)
		}
	}
	return d[m][n]
}

// DepthRatio is len(variant)/len(baseline), an approximation of relative
// reasoning depth. Both empty means the sequences match trivially (1.0).
func DepthRatio(baseline, variant []schema.Checkpoint) (float64, error) {
	if len(baseline) == 0 {
		if len(variant) == 0 {
			return 1.0, nil
		}
		return 0, fmt.Errorf("%w (variant has %d checkpoints)", ErrEmptyBaseline, len(variant))
	}
	return float64(len(variant)) / float64(len(baseline)), nil
}

// Compare computes the full topology metric set for a variant sequence
// against a baseline sequence.
func Compare(baseline, variant []schema.Checkpoint) (schema.TopologyMetrics, error) {
	depth, err := DepthRatio(baseline, variant)
	if err != nil {
		return schema.TopologyMetrics{}, err
	}

	seqBase := TypeSequence(baseline)
	seqVar := TypeSequence(variant)

	return schema.TopologyMetrics{
		NodeOverlap:        NodeOverlap(seqBase, seqVar),
		SequenceSimilarity: SequenceSimilarity(seqBase, seqVar),
		DepthRatio:         depth,
	}, nil
}
