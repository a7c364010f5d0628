package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure matching thresholds, the data directory and other options.

Settings are stored in ~/.medlens/config.toml (see --config-dir).`,
	Annotations: map[string]string{wiringAnnotation: wiringSettings},
	Args:        cobra.NoArgs,
	RunE:        runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Annotations: map[string]string{wiringAnnotation: wiringSettings},
	Args:        cobra.NoArgs,
	RunE:        runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save it to the config file.

The new value is rejected if it leaves the settings invalid, for example a
threshold outside 0-100. Run 'medlens settings keys' to list the keys.`,
	Example: `  medlens settings set match.tabular_threshold 75
  medlens settings set data.dir ~/formulary
  medlens settings set history.enabled false`,
	Annotations: map[string]string{wiringAnnotation: wiringSettings},
	Args:        cobra.ExactArgs(2),
	RunE:        runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:         "keys",
	Short:       "List setting keys",
	Annotations: map[string]string{wiringAnnotation: wiringSettings},
	Args:        cobra.NoArgs,
	RunE:        runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'medlens settings set <key> <value>' to fix the configuration.")
		return nil
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Data]")
	if settings.DataDir == "" {
		cmd.Println("  Directory: (default)")
	} else {
		cmd.Printf("  Directory: %s\n", settings.DataDir)
	}
	cmd.Println()

	m := settings.Match
	cmd.Println("[Match]")
	cmd.Printf("  Tabular threshold:        %d\n", m.TabularThreshold)
	cmd.Printf("  Short-circuit confidence: %.2f\n", m.ShortCircuitConfidence)
	cmd.Printf("  Document threshold:       %d\n", m.DocumentThreshold)
	cmd.Printf("  Context window:           %d before, %d after\n", m.WindowBefore, m.WindowAfter)
	cmd.Printf("  Snippet length:           %d\n", m.SnippetLength)
	cmd.Println()

	cmd.Println("[OCR]")
	cmd.Printf("  Medicine threshold: %.2f\n", settings.OCR.MedicineThreshold)
	cmd.Println()

	cmd.Println("[PDF]")
	cmd.Printf("  pdftotext: %s\n", settings.Pdftotext)
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Enabled: %s\n", yesNo(settings.HistoryEnabled))
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Debounce: %s\n", settings.WatchDebounce)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%w\nvalid keys: %s", err, strings.Join(settingsService.Keys(), ", "))
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	out := cmd.OutOrStdout()
	for _, k := range settingsService.Keys() {
		fmt.Fprintln(out, k)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
