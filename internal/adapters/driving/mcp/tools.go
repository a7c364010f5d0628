package mcp

import (
	"context"
	"errors"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

// ResolveInput is the input schema for the resolve_medicine tool.
type ResolveInput struct {
	Query string `json:"query" jsonschema:"a medicine name or a question mentioning one, e.g. 'what is panadol'"`
}

// ResolveOutput is the output schema for the resolve_medicine tool.
type ResolveOutput struct {
	Query     string              `json:"query"`
	Candidate string              `json:"candidate"`
	Resolved  bool                `json:"resolved"`
	Match     *domain.MatchResult `json:"match"`
	Source    string              `json:"source,omitempty"`
}

// OCRInput is the input schema for the resolve_ocr_text tool.
type OCRInput struct {
	RawText    string  `json:"raw_text" jsonschema:"text recognised from a photo of a medicine package"`
	Confidence float64 `json:"confidence,omitempty" jsonschema:"the OCR engine's own confidence, 0 to 1"`
}

// OCROutput is the output schema for the resolve_ocr_text tool.
type OCROutput struct {
	Analysis   domain.OCRAnalysis `json:"analysis"`
	Resolution ResolveOutput      `json:"resolution"`
}

// ClassifyInput is the input schema for the classify_text tool.
type ClassifyInput struct {
	Text string `json:"text" jsonschema:"free text to score for medicine-related content"`
}

// ListMedicinesInput is the empty input schema for the list_medicines tool.
type ListMedicinesInput struct{}

// ListMedicinesOutput is the output schema for the list_medicines tool.
type ListMedicinesOutput struct {
	Names []string `json:"names"`
	Count int      `json:"count"`
}

var errEmptyInput = errors.New("input text is empty")

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_medicine",
		Description: "Resolve a typed medicine name or question to a single medicine record from the local corpus",
	}, s.handleResolve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_ocr_text",
		Description: "Extract a medicine name from OCR text of a package photo and resolve it against the local corpus",
	}, s.handleResolveOCR)

	if s.ports.Text != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "classify_text",
			Description: "Score how likely a piece of text describes a medicine",
		}, s.handleClassify)
	}

	if s.ports.Corpus != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_medicines",
			Description: "List the distinct medicine names in the tabular corpus",
		}, s.handleListMedicines)
	}
}

func (s *Server) handleResolve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveInput,
) (*mcp.CallToolResult, ResolveOutput, error) {
	if input.Query == "" {
		return nil, ResolveOutput{}, errEmptyInput
	}

	res, err := s.ports.Resolver.Resolve(ctx, input.Query)
	if err != nil {
		return nil, ResolveOutput{}, err
	}
	return nil, toResolveOutput(res), nil
}

func (s *Server) handleResolveOCR(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OCRInput,
) (*mcp.CallToolResult, OCROutput, error) {
	if input.RawText == "" {
		return nil, OCROutput{}, errEmptyInput
	}

	res, err := s.ports.Resolver.ResolveOCR(ctx, domain.OCRText{
		RawText:    input.RawText,
		Confidence: input.Confidence,
	})
	if err != nil {
		return nil, OCROutput{}, err
	}
	return nil, OCROutput{
		Analysis:   res.Analysis,
		Resolution: toResolveOutput(&res.Resolution),
	}, nil
}

func (s *Server) handleClassify(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyInput,
) (*mcp.CallToolResult, domain.Likelihood, error) {
	return nil, s.ports.Text.Classify(input.Text), nil
}

func (s *Server) handleListMedicines(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListMedicinesInput,
) (*mcp.CallToolResult, ListMedicinesOutput, error) {
	names, err := s.ports.Corpus.MedicineNames(ctx)
	if err != nil {
		return nil, ListMedicinesOutput{}, err
	}
	sort.Strings(names)
	return nil, ListMedicinesOutput{Names: names, Count: len(names)}, nil
}

func toResolveOutput(res *domain.Resolution) ResolveOutput {
	out := ResolveOutput{
		Query:     res.Query,
		Candidate: res.Candidate,
		Resolved:  res.Resolved(),
		Match:     res.Match,
	}
	if res.Match != nil {
		out.Source = res.Match.Source.String()
	}
	return out
}
