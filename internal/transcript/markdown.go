package transcript

import (
	"bytes"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownLoader handles Markdown transcripts using goldmark. Headings and
// block text are flattened in document order; inline formatting is dropped
// but the text, including checkpoint annotations, is preserved.
type MarkdownLoader struct{}

func (l *MarkdownLoader) Load(r io.Reader, filename string) (*Transcript, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	title := titleFromFilename(filename)
	var paragraphs []string

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			heading := string(node.Text(src))
			if heading == "" {
				continue
			}
			// First top-level heading doubles as the transcript title.
			if node.Level == 1 && len(paragraphs) == 0 {
				title = heading
			}
			paragraphs = append(paragraphs, heading)
		default:
			if t := blockText(n, src); t != "" {
				paragraphs = append(paragraphs, t)
			}
		}
	}

	return &Transcript{Title: title, Text: joinParagraphs(paragraphs)}, nil
}

// blockText gets the raw text content of a goldmark AST node. Blocks that
// carry source lines (paragraphs, code blocks) are read from the source
// directly; container blocks (lists, quotes) recurse into their children.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return string(bytes.TrimSpace(buf.Bytes()))
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, src); t != "" {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(t)
		}
	}
	return string(bytes.TrimSpace(buf.Bytes()))
}
