package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/services"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent resolutions",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", services.DefaultHistoryLimit, "maximum number of entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	records, err := historyService.Recent(cmd.Context(), historyLimit)
	if errors.Is(err, domain.ErrHistoryUnavailable) {
		cmd.Println("History is disabled.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No resolutions yet.")
		return nil
	}
	out := cmd.OutOrStdout()
	for i := range records {
		fmt.Fprintln(out, formatHistoryRecord(&records[i]))
	}
	return nil
}

func formatHistoryRecord(r *domain.ResolutionRecord) string {
	when := r.CreatedAt.Local().Format("2006-01-02 15:04:05")
	if !r.Resolved {
		return fmt.Sprintf("%s  %q -> no match", when, r.Query)
	}
	return fmt.Sprintf("%s  %q -> %s (%s, %s)", when, r.Query, r.BrandName, formatConfidence(r.Confidence), r.Source)
}
