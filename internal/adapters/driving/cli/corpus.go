package cli

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "List the medicine names in the corpus",
	Args:  cobra.NoArgs,
	RunE:  runNames,
}

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Show what the corpus contains",
	Long: `Loads the data directory and reports the number of medicine records and
documents, the column used for names, and whether sample data is in use.`,
	Args: cobra.NoArgs,
	RunE: runCorpus,
}

func init() {
	rootCmd.AddCommand(namesCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runNames(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	names, err := corpusService.MedicineNames(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing names: %w", err)
	}
	sort.Strings(names)
	out := cmd.OutOrStdout()
	for _, n := range names {
		fmt.Fprintln(out, n)
	}
	return nil
}

func runCorpus(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	corpus, err := corpusService.Snapshot(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	stats := corpus.Stats()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Data directory: %s\n", corpusService.DataDir())
	fmt.Fprintf(out, "Medicines:      %d\n", stats.Medicines)
	fmt.Fprintf(out, "Documents:      %d\n", stats.Documents)
	fmt.Fprintf(out, "Loaded:         %s\n", yesNo(corpusService.IsLoaded()))
	for i := range corpus.Documents {
		fmt.Fprintf(out, "  %s (%d pages)\n", corpus.Documents[i].Filename, corpus.Documents[i].Pages)
	}
	if pdfCheck != nil {
		if err := pdfCheck(); err != nil {
			fmt.Fprintf(out, "PDF text:       unavailable (%v)\n", err)
		} else {
			fmt.Fprintln(out, "PDF text:       available")
		}
	}
	if stats.NameColumn != "" {
		fmt.Fprintf(out, "Name column:    %s\n", stats.NameColumn)
	}
	if stats.Seeded {
		fmt.Fprintln(out, "Sample data:    yes (no readable sources in the data directory)")
	}
	fmt.Fprintf(out, "Loaded at:      %s\n", stats.LoadedAt.Format(time.RFC3339))
	return nil
}
