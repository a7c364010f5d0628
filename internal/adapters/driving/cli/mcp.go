package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medlens/internal/adapters/driving/mcp"
	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/logger"
)

var (
	mcpHTTPAddr string
	mcpWatch    bool
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --http to serve over HTTP instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Tools: resolve_medicine, resolve_ocr_text, classify_text, list_medicines.
Resources: medlens://corpus, medlens://documents/{filename}.

Examples:
  # Stdio mode (default, for Claude Desktop)
  medlens mcp

  # HTTP mode, reloading the corpus when files change
  medlens mcp --http localhost:8080 --watch

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "medlens": {
        "command": "/path/to/medlens",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve over HTTP on this address instead of stdio")
	mcpCmd.Flags().BoolVar(&mcpWatch, "watch", false, "reload the corpus when files in the data directory change")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	if resolverService == nil {
		return errors.New("resolver service not configured")
	}

	ports := &mcp.Ports{
		Resolver: resolverService,
		Text:     textService,
		Corpus:   corpusService,
	}
	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if mcpWatch && corpusService != nil {
		if reloadService == nil {
			reloadService = newReloadService()
		}
		reloadService.OnReload(func(c *domain.Corpus) {
			logger.Info("Corpus reloaded: %d medicines, %d documents", len(c.Medicines), len(c.Documents))
		})
		go func() {
			if err := reloadService.Watch(ctx); err != nil {
				logger.Warn("Corpus watch stopped: %v", err)
			}
		}()
	}

	if mcpHTTPAddr != "" {
		cmd.Printf("MCP server listening on http://%s\n", mcpHTTPAddr)
		return server.RunHTTP(ctx, mcpHTTPAddr)
	}

	// Stdout carries the protocol; keep stderr quiet unless asked.
	if !verbose {
		logger.SetQuiet(true)
	}
	return server.Run(ctx)
}
