package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for medlens resources.
	uriScheme = "medlens://"
)

// corpusInfo is the JSON body of the corpus resource.
type corpusInfo struct {
	DataDir    string         `json:"data_dir"`
	Medicines  int            `json:"medicines"`
	Documents  []documentInfo `json:"documents"`
	NameColumn string         `json:"name_column,omitempty"`
	Seeded     bool           `json:"seeded"`
	Loaded     bool           `json:"loaded"`
	LoadedAt   time.Time      `json:"loaded_at"`
}

type documentInfo struct {
	Filename string `json:"filename"`
	URI      string `json:"uri"`
	Pages    int    `json:"pages"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.Corpus == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "corpus",
		Name:        "corpus",
		Description: "Summary of the loaded medicine corpus",
		MIMEType:    "application/json",
	}, s.handleCorpusResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{filename}",
		Name:        "document-content",
		Description: "Full text of a corpus document",
		MIMEType:    "text/plain",
	}, s.handleDocumentContentResource)
}

// handleCorpusResource summarises the current corpus snapshot.
func (s *Server) handleCorpusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	corpus, err := s.ports.Corpus.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}

	stats := corpus.Stats()
	info := corpusInfo{
		DataDir:    s.ports.Corpus.DataDir(),
		Medicines:  stats.Medicines,
		Documents:  make([]documentInfo, len(corpus.Documents)),
		NameColumn: stats.NameColumn,
		Seeded:     stats.Seeded,
		Loaded:     s.ports.Corpus.IsLoaded(),
		LoadedAt:   stats.LoadedAt,
	}
	for i := range corpus.Documents {
		info.Documents[i] = documentInfo{
			Filename: corpus.Documents[i].Filename,
			URI:      documentURI(corpus.Documents[i].Filename),
			Pages:    corpus.Documents[i].Pages,
		}
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling corpus: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentContentResource returns the extracted text of one document.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	filename := extractFilename(req.Params.URI)
	if filename == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	corpus, err := s.ports.Corpus.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}

	for i := range corpus.Documents {
		if corpus.Documents[i].Filename == filename {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      req.Params.URI,
					MIMEType: "text/plain",
					Text:     corpus.Documents[i].Content,
				}},
			}, nil
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

const documentsPrefix = uriScheme + "documents/"

// documentURI builds the resource URI of a document, escaping the filename.
func documentURI(filename string) string {
	return documentsPrefix + url.PathEscape(filename)
}

// extractFilename extracts the filename from a URI like medlens://documents/{filename}.
// The filename segment is unescaped; it may not contain a path separator.
func extractFilename(uri string) string {
	if !strings.HasPrefix(uri, documentsPrefix) {
		return ""
	}
	name, err := url.PathUnescape(strings.TrimPrefix(uri, documentsPrefix))
	if err != nil || strings.Contains(name, "/") {
		return ""
	}
	return name
}
