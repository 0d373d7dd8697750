// Package snippet turns articles and source files into the code snippets that get reviewed.
package snippet

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/snipreview/pkg/langdetect"
)

// Snippet is one unit of code submitted for review.
type Snippet struct {
	// ID identifies the snippet within a run: "<path>#<index>".
	ID string `json:"id"`

	// Path is the file the snippet came from ("-" for standard input).
	Path string `json:"path"`

	// Index is the zero-based position of the snippet within its file.
	Index int `json:"index"`

	// Language is the normalized language tag.
	Language string `json:"language"`

	// Source is the snippet text without the surrounding fence.
	Source string `json:"-"`

	// StartLine is the 1-based line in Path where Source begins, or 0 if unknown.
	StartLine int `json:"startLine"`
}

// FileLine converts a zero-based line index within the snippet to a 1-based line in the file.
// It returns 0 when the snippet's position in the file is unknown.
func (s *Snippet) FileLine(index int) int {
	if s.StartLine == 0 {
		return 0
	}
	return s.StartLine + index
}

// NewID builds the snippet identifier for the index-th snippet of path.
func NewID(path string, index int) string {
	return fmt.Sprintf("%s#%d", path, index)
}

// Extractor pulls fenced code blocks out of Markdown articles.
type Extractor struct {
	md goldmark.Markdown
}

// NewExtractor creates an Extractor that parses GitHub Flavored Markdown.
func NewExtractor() *Extractor {
	return &Extractor{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

//nolint:gochecknoglobals // stateless shared extractor
var defaultExtractor = NewExtractor()

// Extract returns one Snippet per fenced code block in markdown, in document order,
// using a shared GFM extractor.
func Extract(ctx context.Context, path string, markdown []byte) ([]Snippet, error) {
	return defaultExtractor.Extract(ctx, path, markdown)
}

// Extract returns one Snippet per fenced code block in markdown, in document order.
//
// The language is the normalized first word of the fence's info string. Untagged
// fences are classified with langdetect.Detect.
func (e *Extractor) Extract(ctx context.Context, path string, markdown []byte) ([]Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract cancelled: %w", err)
	}

	doc := e.md.Parser().Parse(text.NewReader(markdown), parser.WithContext(parser.NewContext()))

	var snippets []Snippet
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if err := ctx.Err(); err != nil {
			return ast.WalkStop, fmt.Errorf("extract cancelled: %w", err)
		}

		source, startLine := blockSource(block, markdown)

		language := langdetect.Normalize(string(block.Language(markdown)))
		if language == "" {
			language = langdetect.Detect(source)
		}

		index := len(snippets)
		snippets = append(snippets, Snippet{
			ID:        NewID(path, index),
			Path:      path,
			Index:     index,
			Language:  language,
			Source:    source,
			StartLine: startLine,
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return snippets, fmt.Errorf("walk %s: %w", path, err)
	}

	return snippets, nil
}

// blockSource joins the content lines of a fenced block and locates the first of them.
// The trailing newline before the closing fence is dropped.
func blockSource(block *ast.FencedCodeBlock, markdown []byte) (string, int) {
	lines := block.Lines()

	var buf strings.Builder
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(markdown))
	}

	startLine := 0
	switch {
	case lines.Len() > 0:
		startLine = lineAt(markdown, lines.At(0).Start)
	case block.Info != nil:
		startLine = lineAt(markdown, block.Info.Segment.Start) + 1
	}

	return strings.TrimSuffix(buf.String(), "\n"), startLine
}

// lineAt returns the 1-based line containing byte offset.
func lineAt(content []byte, offset int) int {
	offset = min(max(offset, 0), len(content))
	return bytes.Count(content[:offset], []byte("\n")) + 1
}

// FromFile wraps a whole source file as a single snippet.
func FromFile(path string, content []byte) Snippet {
	source := string(content)
	return Snippet{
		ID:        NewID(path, 0),
		Path:      path,
		Index:     0,
		Language:  langdetect.FromFilename(path, source),
		Source:    source,
		StartLine: 1,
	}
}

// IsMarkdown reports whether path names a Markdown article.
func IsMarkdown(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}

// FromContent dispatches on the file type: Markdown articles yield their fenced
// blocks, any other file becomes one snippet. A non-empty language overrides
// whatever was detected.
func FromContent(ctx context.Context, path string, content []byte, language string) ([]Snippet, error) {
	var snippets []Snippet
	if IsMarkdown(path) {
		var err error
		snippets, err = Extract(ctx, path, content)
		if err != nil {
			return nil, err
		}
	} else {
		snippets = []Snippet{FromFile(path, content)}
	}

	if forced := langdetect.Normalize(language); forced != "" {
		for i := range snippets {
			snippets[i].Language = forced
		}
	}
	return snippets, nil
}
