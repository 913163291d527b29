package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reasonlab/epistress/internal/transcript"
)

// LocalRunner loads pre-recorded annotated transcripts instead of calling a
// model. Useful for replaying captured sessions and for manual annotation.
type LocalRunner struct {
	sourceDir string
}

// NewLocalRunner creates a runner that resolves variants against sourceDir.
// sourceDir may be empty if every call supplies cfg.Text directly.
func NewLocalRunner(sourceDir string) *LocalRunner {
	return &LocalRunner{sourceDir: sourceDir}
}

// Run returns cfg.Text when set; otherwise it looks for a transcript named
// after the variant in the source directory, trying each supported format.
func (r *LocalRunner) Run(ctx context.Context, prompt, variant string, cfg VariantConfig) (string, error) {
	if cfg.Text != "" {
		return cfg.Text, nil
	}
	if r.sourceDir == "" {
		return "", fmt.Errorf("local runner requires either inline text or a source directory")
	}

	// Fixed probe order so a variant recorded in two formats resolves
	// deterministically.
	for _, ext := range []string{".txt", ".md", ".markdown", ".html", ".htm", ".pdf", ".docx"} {
		path := filepath.Join(r.sourceDir, variant+ext)
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		loader, lerr := transcript.ForFile(path)
		if lerr != nil {
			f.Close()
			continue
		}
		ts, lerr := loader.Load(f, filepath.Base(path))
		f.Close()
		if lerr != nil {
			return "", fmt.Errorf("load transcript %s: %w", path, lerr)
		}
		return ts.Text, nil
	}

	return "", fmt.Errorf("no transcript found for variant %q in %s", variant, r.sourceDir)
}

func (r *LocalRunner) Name() string {
	return "local"
}
