// Package report renders cross-variant comparisons of persisted run results.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/reasonlab/epistress/internal/schema"
	"github.com/reasonlab/epistress/internal/suite"
	"github.com/reasonlab/epistress/internal/topology"
)

// LoadDir loads every *.json result in dir, sorted by filename so the
// output is stable across runs.
func LoadDir(dir string) ([]*schema.Result, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no result files found in %s", dir)
	}
	sort.Strings(paths)

	results := make([]*schema.Result, 0, len(paths))
	for _, p := range paths {
		r, err := schema.LoadResult(p)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", p, err)
		}
		results = append(results, r)
	}
	return results, nil
}

// SplitBaseline picks the result whose variant is the baseline key and
// returns it alongside the remaining variants. When no baseline is present
// the first result stands in, and fallback reports that.
func SplitBaseline(results []*schema.Result) (baseline *schema.Result, variants []*schema.Result, fallback bool) {
	for _, r := range results {
		if r.Variant == suite.BaselineKey {
			baseline = r
		} else {
			variants = append(variants, r)
		}
	}
	if baseline == nil {
		return results[0], results[1:], true
	}
	return baseline, variants, false
}

// metricRow is one line of the comparison table. Integer and float metrics
// format differently, so each row carries its own formatter.
type metricRow struct {
	name   string
	format func(m schema.Metrics) string
}

func intRow(name string, get func(schema.Metrics) int) metricRow {
	return metricRow{name, func(m schema.Metrics) string { return fmt.Sprintf("%15d", get(m)) }}
}

func floatRow(name string, get func(schema.Metrics) float64) metricRow {
	return metricRow{name, func(m schema.Metrics) string { return fmt.Sprintf("%15.2f", get(m)) }}
}

var metricRows = []metricRow{
	floatRow("commitment_latency", func(m schema.Metrics) float64 { return m.CommitmentLatency }),
	intRow("branch_count", func(m schema.Metrics) int { return m.BranchCount }),
	intRow("total_checkpoints", func(m schema.Metrics) int { return m.TotalCheckpoints }),
	intRow("assume_count", func(m schema.Metrics) int { return m.AssumeCount }),
	intRow("claim_count", func(m schema.Metrics) int { return m.ClaimCount }),
	intRow("select_count", func(m schema.Metrics) int { return m.SelectCount }),
	floatRow("tokens_per_checkpoint", func(m schema.Metrics) float64 { return m.TokensPerCheckpoint }),
	floatRow("claim_select_ratio", func(m schema.Metrics) float64 { return m.ClaimSelectRatio }),
	intRow("total_tokens", func(m schema.Metrics) int { return m.TotalTokens }),
}

// Write renders the metric table for all results, then topology deltas of
// each variant against the baseline.
func Write(w io.Writer, results []*schema.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to compare")
	}

	baseline, variants, fallback := SplitBaseline(results)
	if fallback {
		fmt.Fprintln(os.Stderr, "No baseline found. First result used as baseline.")
	}

	ordered := append([]*schema.Result{baseline}, variants...)

	var header strings.Builder
	fmt.Fprintf(&header, "%-25s", "Metric")
	for _, r := range ordered {
		fmt.Fprintf(&header, "%15s", r.Variant)
	}
	fmt.Fprintln(w, header.String())
	fmt.Fprintln(w, strings.Repeat("-", header.Len()))

	for _, row := range metricRows {
		fmt.Fprintf(w, "%-25s", row.name)
		for _, r := range ordered {
			fmt.Fprint(w, row.format(r.Metrics))
		}
		fmt.Fprintln(w)
	}

	if len(variants) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Topology (vs baseline):")
	fmt.Fprintf(w, "%-25s %15s %15s %15s\n", "Variant", "node_overlap", "seq_similarity", "depth_ratio")
	fmt.Fprintln(w, strings.Repeat("-", 70))

	for _, v := range variants {
		topo, err := topology.Compare(baseline.Checkpoints, v.Checkpoints)
		if err != nil {
			return fmt.Errorf("topology for %s: %w", v.Variant, err)
		}
		fmt.Fprintf(w, "%-25s %15.3f %15.3f %15.3f\n",
			v.Variant, topo.NodeOverlap, topo.SequenceSimilarity, topo.DepthRatio)
	}
	return nil
}
