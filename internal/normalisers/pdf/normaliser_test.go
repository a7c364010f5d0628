package pdf

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/ports/driven"
	"github.com/custodia-labs/medlens/internal/logger"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error

	name string
	args []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	return m.output, m.err
}

var formulary = domain.SourceFile{
	Path: "/data/formulary.pdf",
	Name: "formulary.pdf",
	Kind: domain.SourceDocumentFile,
}

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.Equal(t, "pdftotext", normaliser.binary)
	assert.IsType(t, execRunner{}, normaliser.runner)
}

func TestNewWithBinary(t *testing.T) {
	assert.Equal(t, "/opt/poppler/bin/pdftotext", NewWithBinary("/opt/poppler/bin/pdftotext").binary)
	assert.Equal(t, "pdftotext", NewWithBinary("").binary)
}

func TestNewWithRunner(t *testing.T) {
	runner := &mockRunner{output: []byte("test output")}
	normaliser := NewWithRunner(runner)
	require.NotNil(t, normaliser)
	assert.Equal(t, runner, normaliser.runner)
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".pdf"}, New().SupportedExtensions())
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.DocumentNormaliser = (*Normaliser)(nil)
}

func TestNormalise_ConcatenatesPages(t *testing.T) {
	runner := &mockRunner{output: []byte("Page one mentions Panadol.\n\fPage two covers dosage.\n\f")}
	normaliser := NewWithRunner(runner)

	doc, err := normaliser.Normalise(context.Background(), formulary)

	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "formulary.pdf", doc.Filename)
	assert.Equal(t, "/data/formulary.pdf", doc.Path)
	assert.Equal(t, "Page one mentions Panadol.\nPage two covers dosage.\n", doc.Content)
	assert.Equal(t, 2, doc.Pages)

	assert.Equal(t, "pdftotext", runner.name)
	assert.Equal(t, []string{"-enc", "UTF-8", "/data/formulary.pdf", "-"}, runner.args)
}

func TestNormalise_UniqueIDs(t *testing.T) {
	normaliser := NewWithRunner(&mockRunner{output: []byte("text\f")})

	a, err := normaliser.Normalise(context.Background(), formulary)
	require.NoError(t, err)
	b, err := normaliser.Normalise(context.Background(), formulary)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestNormalise_RunnerError(t *testing.T) {
	runner := &mockRunner{err: errors.New("pdftotext crashed")}
	normaliser := NewWithRunner(runner)

	result, err := normaliser.Normalise(context.Background(), formulary)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrSourceUnreadable)
	assert.Contains(t, err.Error(), "pdftotext failed")
	assert.Contains(t, err.Error(), "formulary.pdf")
}

func TestNormalise_ToolNotFound(t *testing.T) {
	normaliser := NewWithRunner(&mockRunner{err: ErrPDFToolNotFound})

	_, err := normaliser.Normalise(context.Background(), formulary)

	assert.ErrorIs(t, err, domain.ErrSourceUnreadable)
	assert.ErrorIs(t, err, ErrPDFToolNotFound)
}

func TestNormalise_InvalidUTF8(t *testing.T) {
	normaliser := NewWithRunner(&mockRunner{output: []byte{0xff, 0xfe, 0xfd}})

	_, err := normaliser.Normalise(context.Background(), formulary)

	assert.ErrorIs(t, err, domain.ErrSourceUnreadable)
}

func TestNormalise_EmptyPath(t *testing.T) {
	result, err := New().Normalise(context.Background(), domain.SourceFile{})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := execRunner{}.Run(context.Background(), "medlens-no-such-pdftotext")

	assert.ErrorIs(t, err, ErrPDFToolNotFound)
}

func TestSplitPages(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "no form feed", text: "single", want: []string{"single"}},
		{name: "trailing form feed", text: "a\fb\f", want: []string{"a", "b"}},
		{name: "empty middle page", text: "a\f\fc\f", want: []string{"a", "", "c"}},
		{name: "empty output", text: "", want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitPages(tt.text))
		})
	}
}

func TestErrPDFToolNotFound(t *testing.T) {
	assert.Contains(t, ErrPDFToolNotFound.Error(), "pdftotext")
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

func TestCheckAvailable(t *testing.T) {
	tests := []struct {
		name    string
		binary  string
		found   bool
		wantErr bool
	}{
		{name: "configured binary found", binary: "/opt/poppler/bin/pdftotext", found: true},
		{name: "configured binary missing", binary: "/opt/poppler/bin/pdftotext", wantErr: true},
		{name: "default binary", binary: "", found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normaliser := NewWithBinary(tt.binary)
			var looked string
			normaliser.lookPath = func(name string) (string, error) {
				looked = name
				if !tt.found {
					return "", errors.New("not found")
				}
				return name, nil
			}

			err := normaliser.CheckAvailable()

			want := tt.binary
			if want == "" {
				want = domain.DefaultPdftotext
			}
			assert.Equal(t, want, looked)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPDFToolNotFound)
				assert.Contains(t, err.Error(), want)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalise_ToolNotFoundWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)
	normaliser := NewWithRunner(&mockRunner{err: ErrPDFToolNotFound})

	for i := 0; i < 3; i++ {
		_, err := normaliser.Normalise(context.Background(), formulary)
		require.Error(t, err)
	}

	assert.Equal(t, 1, strings.Count(buf.String(), "PDF documents are skipped"))
	assert.Contains(t, buf.String(), "brew install poppler")
}

// Integration test - only runs if pdftotext is available.
func TestNormalise_Integration(t *testing.T) {
	if err := New().CheckAvailable(); err != nil {
		t.Skip("pdftotext not available, skipping integration test")
	}

	// This test would require a real PDF file.
	t.Skip("integration test requires sample PDF file")
}
