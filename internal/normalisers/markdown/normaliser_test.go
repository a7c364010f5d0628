package markdown

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/ports/driven"
)

func writeFile(t *testing.T, name, content string) domain.SourceFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return domain.SourceFile{Path: path, Name: name, Kind: domain.SourceDocumentFile}
}

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".md"}, New().SupportedExtensions())
}

func TestNormalise_Success(t *testing.T) {
	file := writeFile(t, "guide.md", "# Antibiotics\n\n**Augmentin** treats bacterial infections.\n")

	doc, err := New().Normalise(context.Background(), file)

	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "guide.md", doc.Filename)
	assert.Equal(t, file.Path, doc.Path)
	assert.Equal(t, "Antibiotics\n\nAugmentin treats bacterial infections.", doc.Content)
	assert.Equal(t, 1, doc.Pages)
}

func TestNormalise_EmptyContent(t *testing.T) {
	doc, err := New().Normalise(context.Background(), writeFile(t, "empty.md", ""))

	require.NoError(t, err)
	assert.Empty(t, doc.Content)
}

func TestNormalise_Errors(t *testing.T) {
	_, err := New().Normalise(context.Background(), domain.SourceFile{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing := domain.SourceFile{Path: filepath.Join(t.TempDir(), "gone.md"), Name: "gone.md"}
	_, err = New().Normalise(context.Background(), missing)
	assert.ErrorIs(t, err, domain.ErrSourceUnreadable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New().Normalise(ctx, domain.SourceFile{Path: "/x.md"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "headings removed",
			input:    "# Title\n## Subtitle\n### Third",
			expected: "Title\nSubtitle\nThird",
		},
		{
			name:     "emphasis removed",
			input:    "This is **bold** and *italic* and __strong__",
			expected: "This is bold and italic and strong",
		},
		{
			name:     "links converted",
			input:    "Click [here](https://example.com)",
			expected: "Click here",
		},
		{
			name:     "image alt text kept",
			input:    "See ![Panadol box](box.png) here",
			expected: "See Panadol box here",
		},
		{
			name:     "code fences removed, code kept",
			input:    "Before\n```text\nPanadol 500mg\n```\nAfter",
			expected: "Before\n\nPanadol 500mg\n\nAfter",
		},
		{
			name:     "inline code kept",
			input:    "Use `Brufen` here",
			expected: "Use Brufen here",
		},
		{
			name:     "blockquotes cleaned",
			input:    "> This is a quote",
			expected: "This is a quote",
		},
		{
			name:     "list markers removed",
			input:    "- Item 1\n* Item 2\n+ Item 3",
			expected: "Item 1\nItem 2\nItem 3",
		},
		{
			name:     "numbered list markers removed",
			input:    "1. First\n2. Second",
			expected: "First\nSecond",
		},
		{
			name:     "horizontal rules collapse",
			input:    "Above\n\n---\n\nBelow",
			expected: "Above\n\nBelow",
		},
		{
			name:     "tables flattened",
			input:    "| Name | Uses |\n|------|:----:|\n| Panadol | Pain |",
			expected: "Name  Uses\n\nPanadol  Pain",
		},
		{
			name:     "windows line endings",
			input:    "# Calpol\r\nFor fever",
			expected: "Calpol\nFor fever",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stripMarkdown(tc.input))
		})
	}
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.DocumentNormaliser = (*Normaliser)(nil)
}
