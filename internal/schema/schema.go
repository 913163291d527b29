// Package schema defines the versioned record types produced by the harness
// and their JSON serialization. Everything else depends on this package.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SpecVersion is written into every Result record. Loading a record with a
// different version fails rather than guessing at field semantics.
const SpecVersion = "0.1"

// CheckpointType is one of the five epistemic checkpoint tags.
type CheckpointType string

const (
	TypeAssume   CheckpointType = "ASSUME"
	TypeClaim    CheckpointType = "CLAIM"
	TypeBranch   CheckpointType = "BRANCH"
	TypeSelect   CheckpointType = "SELECT"
	TypeConclude CheckpointType = "CONCLUDE"
)

// CheckpointTypes lists all valid types in canonical order.
var CheckpointTypes = []CheckpointType{
	TypeAssume, TypeClaim, TypeBranch, TypeSelect, TypeConclude,
}

// Checkpoint is one parsed [TAG: content] annotation. Index is the zero-based
// position among all checkpoints found in the source text.
type Checkpoint struct {
	Index int            `json:"index"`
	Type  CheckpointType `json:"type"`
	Text  string         `json:"text"`
}

// Metrics holds the core measurements derived from one checkpoint sequence
// and one token estimate. All fields are pure functions of their inputs.
type Metrics struct {
	CommitmentLatency   float64 `json:"commitment_latency"`
	AssumeCount         int     `json:"assume_count"`
	ClaimCount          int     `json:"claim_count"`
	BranchCount         int     `json:"branch_count"`
	SelectCount         int     `json:"select_count"`
	ConcludeCount       int     `json:"conclude_count"`
	TotalCheckpoints    int     `json:"total_checkpoints"`
	TotalTokens         int     `json:"total_tokens"`
	TokensPerCheckpoint float64 `json:"tokens_per_checkpoint"`
	ClaimSelectRatio    float64 `json:"claim_select_ratio"`
}

// TopologyMetrics holds baseline-relative structural comparison results.
// DepthRatio is directional (variant over baseline); the other two are
// symmetric in their arguments.
type TopologyMetrics struct {
	NodeOverlap        float64 `json:"node_overlap"`
	SequenceSimilarity float64 `json:"sequence_similarity"`
	DepthRatio         float64 `json:"depth_ratio"`
}

// Result is the persisted unit: one harness run against one variant.
type Result struct {
	Version     string       `json:"version"`
	Variant     string       `json:"variant"`
	RawText     string       `json:"raw_text"`
	Checkpoints []Checkpoint `json:"checkpoints"`
	Metrics     Metrics      `json:"metrics"`
}

// VersionError reports a Result record whose schema version this build does
// not understand.
type VersionError struct {
	Path    string
	Version string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unrecognized schema version %q in %s (expected %q)", e.Version, e.Path, SpecVersion)
}

// SaveResult serializes a Result to versioned, indented JSON at path,
// creating parent directories as needed. The write is one-shot: a temp file
// is renamed into place so a partial document is never observed.
func SaveResult(result *Result, path string) error {
	out := *result
	out.Version = SpecVersion
	if out.Checkpoints == nil {
		out.Checkpoints = []Checkpoint{}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".result-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write result: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close result: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename result: %w", err)
	}
	return nil
}

// LoadResult reads a Result record from path. Unknown fields are ignored for
// forward compatibility; an unrecognized version is an explicit error.
func LoadResult(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read result: %w", err)
	}

	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", path, err)
	}
	if r.Version != SpecVersion {
		return nil, &VersionError{Path: path, Version: r.Version}
	}
	return &r, nil
}
