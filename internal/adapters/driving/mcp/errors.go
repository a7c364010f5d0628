// Package mcp provides an MCP (Model Context Protocol) server adapter for medlens.
// It lets AI assistants resolve medicine names against the local corpus.
package mcp

import "errors"

// ErrMissingResolverService is returned when the resolver service is not provided.
var ErrMissingResolverService = errors.New("mcp: resolver service is required")
