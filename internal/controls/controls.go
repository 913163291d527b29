// Package controls holds the built-in negative controls. They must pass
// before any harness measurement is trusted: each one feeds a known input
// through the extraction and comparison pipeline and checks the output
// against a fixed expectation.
package controls

import (
	"fmt"
	"io"
	"strings"

	"github.com/reasonlab/epistress/internal/extract"
	"github.com/reasonlab/epistress/internal/metrics"
	"github.com/reasonlab/epistress/internal/topology"
)

// Control A: a trivial factual query. Sane extraction shows no branching
// and an early commitment.
const trivialText = `[ASSUME: user asks a simple factual question]

The capital of France is Paris.

[SELECT: Paris | because: well-established geographical fact]

[CONCLUDE: The capital of France is Paris.]
`

// Control B: gibberish with no checkpoint structure at all.
const gibberishText = `Flurble gax mentrip wobzang kleep. Vornish platch sneedle. Quambo
frizzle tung yelb norquat. Bixly wompus tren jazzle flicknort
spangdoodle wub.
`

// Control C: the same text extracted twice must compare as identical.
const identicalText = `[ASSUME: nodes may behave arbitrarily, network is partially synchronous]

Byzantine consensus requires f < n/3.

[CLAIM: rotating-leader BFT balances coordination with fault tolerance]

[BRANCH: single leader vs rotating leader]

[SELECT: rotating leader | because: avoids single point of failure]

[CLAIM: quorum certificates ensure safety]

[CONCLUDE: use rotating-leader BFT with quorum certificates]
`

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

// Run executes all negative controls, writing a report to w. It returns
// true only when every control passes.
func Run(w io.Writer) bool {
	allPassed := true

	fmt.Fprintln(w, "NEGATIVE CONTROLS")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	if !runTrivial(w) {
		allPassed = false
	}
	if !runGibberish(w) {
		allPassed = false
	}
	if !runIdentical(w) {
		allPassed = false
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	if allPassed {
		fmt.Fprintln(w, "ALL CONTROLS PASSED: harness measurements are reliable.")
	} else {
		fmt.Fprintln(w, "CONTROLS FAILED: harness may be producing unreliable results.")
	}
	return allPassed
}

func runTrivial(w io.Writer) bool {
	fmt.Fprintln(w, "\nControl A: trivial factual query")

	cps := extract.ParseCheckpoints(trivialText)
	m := metrics.Compute(trivialText, cps)

	branchOK := m.BranchCount == 0
	earlySelect := m.CommitmentLatency <= 0.5

	fmt.Fprintf(w, "  branch_count = %d (expect 0): %s\n", m.BranchCount, passFail(branchOK))
	fmt.Fprintf(w, "  commitment_latency = %.2f (expect <= 0.5): %s\n", m.CommitmentLatency, passFail(earlySelect))

	ok := branchOK && earlySelect
	fmt.Fprintf(w, "  Control A: %s\n", passFail(ok))
	return ok
}

func runGibberish(w io.Writer) bool {
	fmt.Fprintln(w, "\nControl B: nonsense prompt")

	cps := extract.ParseCheckpoints(gibberishText)
	m := metrics.Compute(gibberishText, cps)

	ok := m.TotalCheckpoints == 0
	fmt.Fprintf(w, "  total_checkpoints = %d (expect 0): %s\n", m.TotalCheckpoints, passFail(ok))
	fmt.Fprintf(w, "  Control B: %s\n", passFail(ok))
	return ok
}

func runIdentical(w io.Writer) bool {
	fmt.Fprintln(w, "\nControl C: identical prompt twice")

	first := extract.ParseCheckpoints(identicalText)
	second := extract.ParseCheckpoints(identicalText)

	topo, err := topology.Compare(first, second)
	if err != nil {
		fmt.Fprintf(w, "  topology comparison failed: %s\n", err)
		fmt.Fprintf(w, "  Control C: %s\n", passFail(false))
		return false
	}

	overlapOK := topo.NodeOverlap == 1.0
	seqOK := topo.SequenceSimilarity == 1.0
	depthOK := topo.DepthRatio == 1.0

	fmt.Fprintf(w, "  node_overlap = %.3f (expect 1.0): %s\n", topo.NodeOverlap, passFail(overlapOK))
	fmt.Fprintf(w, "  sequence_similarity = %.3f (expect 1.0): %s\n", topo.SequenceSimilarity, passFail(seqOK))
	fmt.Fprintf(w, "  depth_ratio = %.3f (expect 1.0): %s\n", topo.DepthRatio, passFail(depthOK))

	ok := overlapOK && seqOK && depthOK
	fmt.Fprintf(w, "  Control C: %s\n", passFail(ok))
	return ok
}
