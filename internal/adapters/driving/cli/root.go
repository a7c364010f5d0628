// Package cli provides the medlens command-line interface.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medlens/internal/core/ports/driving"
	"github.com/custodia-labs/medlens/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Global flags.
var (
	verbose       bool
	dataDirFlag   string
	configDirFlag string
	noHistory     bool
)

// Services used by the commands. They are wired from configuration before a
// command runs, unless already set (tests inject mocks).
var (
	corpusService   driving.CorpusService
	resolverService driving.ResolverService
	textService     driving.TextAnalyser
	historyService  driving.HistoryService
	settingsService driving.SettingsService
	reloadService   driving.ReloadService

	// pdfCheck reports whether PDF text extraction is available.
	pdfCheck func() error

	// closers are released after the command finishes.
	closers []io.Closer
)

// Commands annotate how much they need wired. Unannotated commands get every service.
const (
	wiringAnnotation = "wiring"
	wiringNone       = "none"
	wiringSettings   = "settings"
)

var rootCmd = &cobra.Command{
	Use:   "medlens",
	Short: "Resolve noisy medicine names against a local corpus",
	Long: `medlens resolves a typed medicine query or OCR text from a package photo
to a single medicine record.

The corpus is read from the data directory (~/.medlens/data by default):
CSV and Excel files are medicine tables, PDF, text and Markdown files are
free-text documents. An empty directory falls back to built-in sample data.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		switch cmd.Annotations[wiringAnnotation] {
		case wiringNone:
			return nil
		case wiringSettings:
			if settingsService != nil {
				return nil
			}
			_, err := wireSettings()
			return err
		default:
			if resolverService != nil {
				return nil
			}
			return wireServices(cmd)
		}
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeServices()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "print progress and diagnostic messages")
	flags.StringVar(&dataDirFlag, "data-dir", "", "corpus directory (default ~/.medlens/data)")
	flags.StringVar(&configDirFlag, "config-dir", "", "configuration directory (default ~/.medlens)")
	flags.BoolVar(&noHistory, "no-history", false, "do not persist resolutions to the history database")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func closeServices() error {
	var firstErr error
	for _, c := range closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	closers = nil
	return firstErr
}
