// Package markdown reads .md documents and reduces them to searchable text.
package markdown

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/ports/driven"
	"github.com/custodia-labs/medlens/internal/textenc"
)

// Ensure Normaliser implements the interface.
var _ driven.DocumentNormaliser = (*Normaliser)(nil)

var (
	codeFence     = regexp.MustCompile("(?m)^[ \\t]*```.*$")
	inlineCode    = regexp.MustCompile("`([^`]+)`")
	images        = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	links         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	emphasis      = regexp.MustCompile(`(\*\*|__|\*)`)
	blockquote    = regexp.MustCompile(`(?m)^>\s*`)
	horizontal    = regexp.MustCompile(`(?m)^[ \t]*[-*_]{3,}[ \t]*$`)
	tableDivider  = regexp.MustCompile(`(?m)^[ \t]*\|?([ \t]*:?-+:?[ \t]*\|)+[ \t]*:?-*:?[ \t]*$`)
	listMarker    = regexp.MustCompile(`(?m)^[ \t]*([-*+]|\d+\.)[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".md"}
}

// Normalise reads the file and strips Markdown syntax, keeping all prose.
func (n *Normaliser) Normalise(ctx context.Context, file domain.SourceFile) (*domain.DocumentRecord, error) {
	if file.Path == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, _, err := textenc.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, file.Name, err)
	}

	return &domain.DocumentRecord{
		ID:       uuid.New().String(),
		Filename: file.Name,
		Path:     file.Path,
		Content:  stripMarkdown(raw),
		Pages:    1,
	}, nil
}

// stripMarkdown removes formatting markers. Code, link text, image alt
// text and table cells are kept since drug names can appear in any of them.
func stripMarkdown(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = codeFence.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "$1")
	content = images.ReplaceAllString(content, "$1")
	content = links.ReplaceAllString(content, "$1")
	content = headings.ReplaceAllString(content, "")
	content = horizontal.ReplaceAllString(content, "")
	content = tableDivider.ReplaceAllString(content, "")
	content = listMarker.ReplaceAllString(content, "")
	content = emphasis.ReplaceAllString(content, "")
	content = blockquote.ReplaceAllString(content, "")
	content = stripTablePipes(content)
	content = multiNewlines.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

// stripTablePipes turns "| a | b |" rows into "a  b".
func stripTablePipes(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "|") {
			continue
		}
		cells := strings.Split(strings.Trim(trimmed, "|"), "|")
		for j, c := range cells {
			cells[j] = strings.TrimSpace(c)
		}
		lines[i] = strings.Join(cells, "  ")
	}
	return strings.Join(lines, "\n")
}
