package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	resolveJSON      bool
	resolveThreshold int
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <query>",
	Short: "Resolve a medicine name or question",
	Long: `Resolves a typed query to a single medicine record.

Filler words are stripped first, so "what is panadol" and "Panadol" resolve
alike. The medicine tables are searched first; documents are only searched
when no confident table match exists.`,
	Example: `  medlens resolve panadol
  medlens resolve "tell me about brufen" --json
  medlens resolve flagl --threshold 60`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "output the resolution as JSON")
	resolveCmd.Flags().IntVar(&resolveThreshold, "threshold", 0,
		"minimum table match score, 0-100 (overrides match.tabular_threshold)")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if resolverService == nil {
		return errors.New("resolver service not configured")
	}

	query := strings.Join(args, " ")
	res, err := resolverService.Resolve(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}

	if resolveJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	writeResolution(cmd.OutOrStdout(), res)
	return nil
}
