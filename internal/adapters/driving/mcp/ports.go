package mcp

import (
	"github.com/custodia-labs/medlens/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Resolver resolves typed queries and OCR text.
	Resolver driving.ResolverService

	// Text classifies free text. Optional: classify_text is not registered without it.
	Text driving.TextAnalyser

	// Corpus exposes the loaded corpus. Optional: list_medicines and the
	// resources are not registered without it.
	Corpus driving.CorpusService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Resolver == nil {
		return ErrMissingResolverService
	}
	return nil
}
