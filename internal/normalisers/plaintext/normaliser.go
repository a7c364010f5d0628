// Package plaintext reads .txt documents.
package plaintext

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/ports/driven"
	"github.com/custodia-labs/medlens/internal/logger"
	"github.com/custodia-labs/medlens/internal/textenc"
)

// Ensure Normaliser implements the interface.
var _ driven.DocumentNormaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".txt"}
}

// Normalise reads the file as UTF-8, falling back to Latin-1.
func (n *Normaliser) Normalise(ctx context.Context, file domain.SourceFile) (*domain.DocumentRecord, error) {
	if file.Path == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, enc, err := textenc.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, file.Name, err)
	}
	if enc != textenc.UTF8 {
		logger.Debug("Read %s as %s", file.Name, enc)
	}

	return &domain.DocumentRecord{
		ID:       uuid.New().String(),
		Filename: file.Name,
		Path:     file.Path,
		Content:  content,
		Pages:    1,
	}, nil
}
