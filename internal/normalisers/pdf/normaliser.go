// Package pdf extracts document text with the poppler pdftotext tool.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/ports/driven"
	"github.com/custodia-labs/medlens/internal/logger"
	"github.com/custodia-labs/medlens/internal/textenc"
)

// Ensure Normaliser implements the interface.
var _ driven.DocumentNormaliser = (*Normaliser)(nil)

// ErrPDFToolNotFound is returned when pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// pageBreak separates pages in pdftotext output.
const pageBreak = "\f"

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPDFToolNotFound, name)
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

// Normaliser handles PDF documents.
type Normaliser struct {
	runner   CommandRunner
	binary   string
	lookPath func(string) (string, error)

	// warnMissing reports a missing pdftotext once per normaliser.
	warnMissing sync.Once
}

// New creates a PDF normaliser that runs pdftotext from PATH.
func New() *Normaliser {
	return NewWithBinary(domain.DefaultPdftotext)
}

// NewWithBinary creates a PDF normaliser that runs the given pdftotext binary.
func NewWithBinary(binary string) *Normaliser {
	if binary == "" {
		binary = domain.DefaultPdftotext
	}
	return &Normaliser{runner: execRunner{}, binary: binary, lookPath: exec.LookPath}
}

// NewWithRunner creates a PDF normaliser with a custom command runner.
func NewWithRunner(runner CommandRunner) *Normaliser {
	return &Normaliser{runner: runner, binary: domain.DefaultPdftotext, lookPath: exec.LookPath}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Normalise extracts the text of every page and concatenates the pages in order.
func (n *Normaliser) Normalise(ctx context.Context, file domain.SourceFile) (*domain.DocumentRecord, error) {
	if file.Path == "" {
		return nil, domain.ErrInvalidInput
	}

	out, err := n.runner.Run(ctx, n.binary, "-enc", "UTF-8", file.Path, "-")
	if err != nil {
		if errors.Is(err, ErrPDFToolNotFound) {
			n.warnMissing.Do(func() {
				logger.Warn("%s not found, PDF documents are skipped\n%s", n.binary, InstallInstructions())
			})
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrSourceUnreadable, file.Name, err)
		}
		return nil, fmt.Errorf("%w: %s: pdftotext failed: %v", domain.ErrSourceUnreadable, file.Name, err)
	}

	text, err := textenc.Decode(out, textenc.UTF8)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, file.Name, err)
	}

	pages := splitPages(text)
	return &domain.DocumentRecord{
		ID:       uuid.New().String(),
		Filename: file.Name,
		Path:     file.Path,
		Content:  strings.Join(pages, ""),
		Pages:    len(pages),
	}, nil
}

// splitPages splits pdftotext output on form feeds. pdftotext ends every
// page, including the last, with a form feed, so a trailing empty part is dropped.
func splitPages(text string) []string {
	pages := strings.Split(text, pageBreak)
	if len(pages) > 1 && pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}

// CheckAvailable checks that the configured pdftotext binary can be found.
func (n *Normaliser) CheckAvailable() error {
	if _, err := n.lookPath(n.binary); err != nil {
		return fmt.Errorf("%w: %s", ErrPDFToolNotFound, n.binary)
	}
	return nil
}

// InstallInstructions returns platform-specific installation instructions.
func InstallInstructions() string {
	return `pdftotext is required for PDF documents. Install poppler:
  macOS:          brew install poppler
  Ubuntu/Debian:  sudo apt install poppler-utils
  Fedora:         sudo dnf install poppler-utils
  Windows:        choco install poppler`
}
