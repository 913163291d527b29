// Package transcript loads pre-recorded model transcripts from disk and
// flattens them to the plain annotated text the harness consumes. Chat
// exports arrive in several formats; whatever the container, the checkpoint
// annotations inside survive flattening verbatim.
package transcript

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Transcript is one loaded response: a display title and the flattened
// annotated text.
type Transcript struct {
	Title string
	Text  string
}

// Loader converts raw transcript bytes into a Transcript.
type Loader interface {
	Load(r io.Reader, filename string) (*Transcript, error)
}

// SupportedExtensions lists transcript file extensions the harness can read.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate loader for a filename.
func ForFile(filename string) (Loader, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return &TextLoader{}, nil
	case ".md", ".markdown":
		return &MarkdownLoader{}, nil
	case ".html", ".htm":
		return &HTMLLoader{}, nil
	case ".pdf":
		return &PDFLoader{FallbackPdftotext: true}, nil
	case ".docx":
		return &DOCXLoader{}, nil
	default:
		return nil, fmt.Errorf("unsupported transcript format: %s", filepath.Ext(filename))
	}
}

// IsSupportedExtension checks if a filename has a readable extension.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// titleFromFilename strips the directory and extension to produce a default
// transcript title.
func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// joinParagraphs assembles flattened paragraphs with blank-line separators,
// skipping empties.
func joinParagraphs(paragraphs []string) string {
	var sb strings.Builder
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(p)
	}
	return sb.String()
}
