package schema

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func sampleResult() *Result {
	return &Result{
		Variant: "baseline",
		RawText: "[ASSUME: x] some reasoning [CONCLUDE: done]",
		Checkpoints: []Checkpoint{
			{Index: 0, Type: TypeAssume, Text: "x"},
			{Index: 1, Type: TypeConclude, Text: "done"},
		},
		Metrics: Metrics{
			CommitmentLatency:   0.5,
			AssumeCount:         1,
			ConcludeCount:       1,
			TotalCheckpoints:    2,
			TotalTokens:         8,
			TokensPerCheckpoint: 4.0,
			ClaimSelectRatio:    0.0,
		},
	}
}

func TestSaveLoadResult_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "baseline.json")

	want := sampleResult()
	if err := SaveResult(want, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadResult(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.Version != SpecVersion {
		t.Errorf("expected version %q, got %q", SpecVersion, got.Version)
	}
	if got.Variant != want.Variant {
		t.Errorf("expected variant %q, got %q", want.Variant, got.Variant)
	}
	if got.RawText != want.RawText {
		t.Errorf("raw_text mismatch: got %q", got.RawText)
	}
	if !reflect.DeepEqual(got.Checkpoints, want.Checkpoints) {
		t.Errorf("checkpoints mismatch: got %+v, want %+v", got.Checkpoints, want.Checkpoints)
	}
	if got.Metrics != want.Metrics {
		t.Errorf("metrics mismatch: got %+v, want %+v", got.Metrics, want.Metrics)
	}
}

func TestSaveResult_EmptyCheckpointsSerializeAsArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")

	r := &Result{Variant: "control_b_nonsense", RawText: "gibberish"}
	if err := SaveResult(r, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"checkpoints": []`) {
		t.Errorf("expected empty checkpoints array in output, got:\n%s", data)
	}
}

func TestLoadResult_RejectsUnknownVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "future.json")

	doc := map[string]any{
		"version":     "9.9",
		"variant":     "baseline",
		"raw_text":    "",
		"checkpoints": []any{},
		"metrics":     map[string]any{},
	}
	data, _ := json.Marshal(doc)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := LoadResult(path)
	if err == nil {
		t.Fatal("expected error for unrecognized version")
	}
	var verr *VersionError
	if !errors.As(err, &verr) {
		t.Fatalf("expected VersionError, got %T: %v", err, err)
	}
	if verr.Version != "9.9" {
		t.Errorf("expected reported version %q, got %q", "9.9", verr.Version)
	}
}

func TestLoadResult_IgnoresUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "forward.json")

	doc := `{
		"version": "0.1",
		"variant": "baseline",
		"raw_text": "",
		"checkpoints": [],
		"metrics": {"total_checkpoints": 0},
		"some_future_field": {"nested": true}
	}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	r, err := LoadResult(path)
	if err != nil {
		t.Fatalf("expected unknown fields to be ignored, got error: %v", err)
	}
	if r.Variant != "baseline" {
		t.Errorf("expected variant %q, got %q", "baseline", r.Variant)
	}
}

func TestLoadResult_MissingFile(t *testing.T) {
	_, err := LoadResult(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
