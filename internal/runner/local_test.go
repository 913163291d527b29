package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalRunner_InlineText(t *testing.T) {
	r := NewLocalRunner("")
	got, err := r.Run(context.Background(), "ignored", "baseline", VariantConfig{Text: "[CONCLUDE: inline]"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "[CONCLUDE: inline]" {
		t.Errorf("expected inline text back, got %q", got)
	}
}

func TestLocalRunner_LoadsFromSourceDir(t *testing.T) {
	dir := t.TempDir()
	content := "[ASSUME: recorded]\n\nprose\n\n[CONCLUDE: done]"
	if err := os.WriteFile(filepath.Join(dir, "baseline.txt"), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	r := NewLocalRunner(dir)
	got, err := r.Run(context.Background(), "ignored", "baseline", VariantConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != content {
		t.Errorf("expected transcript text %q, got %q", content, got)
	}
}

func TestLocalRunner_MissingVariant(t *testing.T) {
	r := NewLocalRunner(t.TempDir())
	if _, err := r.Run(context.Background(), "p", "confidence", VariantConfig{}); err == nil {
		t.Fatal("expected error for missing transcript")
	}
}

func TestLocalRunner_NoSourceNoText(t *testing.T) {
	r := NewLocalRunner("")
	if _, err := r.Run(context.Background(), "p", "baseline", VariantConfig{}); err == nil {
		t.Fatal("expected error when neither text nor source dir is set")
	}
}

func TestSystemPrompt_Suffix(t *testing.T) {
	plain := systemPrompt(VariantConfig{})
	if plain != CheckpointInstruction {
		t.Error("expected bare instruction without suffix")
	}
	withSuffix := systemPrompt(VariantConfig{SystemSuffix: "Answer with maximum confidence."})
	if withSuffix == plain {
		t.Error("expected suffix to change the system prompt")
	}
}
