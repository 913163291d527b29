package extract

import (
	"reflect"
	"testing"

	"github.com/reasonlab/epistress/internal/schema"
)

func TestParseCheckpoints_BasicSequence(t *testing.T) {
	text := "[ASSUME: x] [BRANCH: a vs b] [SELECT: a | because: faster] [CONCLUDE: done]"
	cps := ParseCheckpoints(text)

	if len(cps) != 4 {
		t.Fatalf("expected 4 checkpoints, got %d", len(cps))
	}

	wantTypes := []schema.CheckpointType{
		schema.TypeAssume, schema.TypeBranch, schema.TypeSelect, schema.TypeConclude,
	}
	for i, want := range wantTypes {
		if cps[i].Type != want {
			t.Errorf("checkpoint %d: expected type %s, got %s", i, want, cps[i].Type)
		}
		if cps[i].Index != i {
			t.Errorf("checkpoint %d: expected index %d, got %d", i, i, cps[i].Index)
		}
	}
	if cps[2].Text != "a | because: faster" {
		t.Errorf("expected SELECT content preserved verbatim, got %q", cps[2].Text)
	}
}

func TestParseCheckpoints_Deterministic(t *testing.T) {
	text := "[ASSUME: start]\n\nsome prose\n\n[CLAIM: middle]\n[CONCLUDE: end]"
	first := ParseCheckpoints(text)
	second := ParseCheckpoints(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parsing is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestParseCheckpoints_EmptyContent(t *testing.T) {
	for _, text := range []string{"[CONCLUDE]", "[CONCLUDE: ]", "[CONCLUDE:]"} {
		cps := ParseCheckpoints(text)
		if len(cps) != 1 {
			t.Fatalf("%q: expected 1 checkpoint, got %d", text, len(cps))
		}
		if cps[0].Type != schema.TypeConclude {
			t.Errorf("%q: expected CONCLUDE, got %s", text, cps[0].Type)
		}
		if cps[0].Text != "" {
			t.Errorf("%q: expected empty content, got %q", text, cps[0].Text)
		}
	}
}

func TestParseCheckpoints_ContentTrimmed(t *testing.T) {
	cps := ParseCheckpoints("[CLAIM:   padded content  ]")
	if len(cps) != 1 {
		t.Fatalf("expected 1 checkpoint, got %d", len(cps))
	}
	if cps[0].Text != "padded content" {
		t.Errorf("expected trimmed content, got %q", cps[0].Text)
	}
}

func TestParseCheckpoints_MalformedSkipped(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"lowercase tag", "[assume: x]"},
		{"mixed case tag", "[Assume: x]"},
		{"unknown tag", "[GUESS: maybe]"},
		{"missing colon with content", "[SELECT fast path]"},
		{"bare brackets", "[just some bracketed text]"},
		{"unclosed bracket", "[ASSUME: never terminated"},
	}
	for _, tc := range cases {
		if got := ParseCheckpoints(tc.text); len(got) != 0 {
			t.Errorf("%s: expected 0 checkpoints for %q, got %d", tc.name, tc.text, len(got))
		}
	}
}

func TestParseCheckpoints_MalformedDoesNotBreakScan(t *testing.T) {
	text := "[wrong: skip] [ASSUME: keep] [ALSO WRONG] [CONCLUDE: keep too]"
	cps := ParseCheckpoints(text)
	if len(cps) != 2 {
		t.Fatalf("expected 2 checkpoints, got %d", len(cps))
	}
	if cps[0].Type != schema.TypeAssume || cps[0].Index != 0 {
		t.Errorf("unexpected first checkpoint: %+v", cps[0])
	}
	if cps[1].Type != schema.TypeConclude || cps[1].Index != 1 {
		t.Errorf("unexpected second checkpoint: %+v", cps[1])
	}
}

func TestParseCheckpoints_NoAnnotations(t *testing.T) {
	text := "Flurble gax mentrip wobzang kleep. Vornish platch sneedle."
	if got := ParseCheckpoints(text); len(got) != 0 {
		t.Errorf("expected empty sequence for gibberish, got %d checkpoints", len(got))
	}
}

func TestParseCheckpoints_EmptyInput(t *testing.T) {
	cps := ParseCheckpoints("")
	if len(cps) != 0 {
		t.Errorf("expected empty sequence, got %d", len(cps))
	}
}

func TestParseCheckpoints_BracketInContentTruncates(t *testing.T) {
	// Content cannot contain an unescaped ]; the checkpoint ends at the
	// first one. Documented truncation behavior.
	cps := ParseCheckpoints("[CLAIM: uses arr[0] indexing]")
	if len(cps) != 1 {
		t.Fatalf("expected 1 checkpoint, got %d", len(cps))
	}
	if cps[0].Text != "uses arr[0" {
		t.Errorf("expected content truncated at first ], got %q", cps[0].Text)
	}
}

func TestParseCheckpoints_InterleavedProse(t *testing.T) {
	text := `[ASSUME: Byzantine faults, partial sync]

Distributed consensus typically requires synchrony assumptions.

[CLAIM: f < n/3 enables BFT]

[BRANCH: leader-based vs leaderless]

Leader-based approaches offer simpler coordination.

[SELECT: rotating-leader BFT | because: avoids single-leader stalls]

[CONCLUDE: implement rotating-leader BFT]`

	cps := ParseCheckpoints(text)
	want := []schema.CheckpointType{
		schema.TypeAssume, schema.TypeClaim, schema.TypeBranch,
		schema.TypeSelect, schema.TypeConclude,
	}
	if len(cps) != len(want) {
		t.Fatalf("expected %d checkpoints, got %d", len(want), len(cps))
	}
	for i, w := range want {
		if cps[i].Type != w {
			t.Errorf("checkpoint %d: expected %s, got %s", i, w, cps[i].Type)
		}
	}
}
