package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medlens/internal/adapters/driven/config/file"
	"github.com/custodia-labs/medlens/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/medlens/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/medlens/internal/connectors/filesystem"
	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/ports/driven"
	"github.com/custodia-labs/medlens/internal/core/ports/driving"
	"github.com/custodia-labs/medlens/internal/core/services"
	"github.com/custodia-labs/medlens/internal/logger"
	"github.com/custodia-labs/medlens/internal/normalisers/markdown"
	"github.com/custodia-labs/medlens/internal/normalisers/pdf"
	"github.com/custodia-labs/medlens/internal/normalisers/plaintext"
	"github.com/custodia-labs/medlens/internal/tabular/csv"
	"github.com/custodia-labs/medlens/internal/tabular/xlsx"
)

// dataSubdir is the corpus directory inside the config directory.
const dataSubdir = "data"

// watchDebounce is the configured reload debounce, kept for the watch commands.
var watchDebounce = domain.DefaultWatchDebounce

// wireSettings opens the config store and sets the settings service.
// It returns the resolved config directory.
func wireSettings() (string, error) {
	configDir := configDirFlag
	if configDir == "" {
		dir, err := file.DefaultConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolving config directory: %w", err)
		}
		configDir = dir
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return "", fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("Config: %s", store.Path())
	settingsService = services.NewSettingsService(store)
	return configDir, nil
}

// wireServices builds every service from the config file and global flags.
func wireServices(cmd *cobra.Command) error {
	configDir, err := wireSettings()
	if err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	if err := applyFlagOverrides(cmd, settings); err != nil {
		return err
	}

	dataDir := dataDirFlag
	if dataDir == "" {
		dataDir = settings.DataDir
	}
	if dataDir == "" {
		dataDir = filepath.Join(configDir, dataSubdir)
	}
	logger.Debug("Data directory: %s", dataDir)

	pdfNormaliser := pdf.NewWithBinary(settings.Pdftotext)
	corpus := services.NewCorpusService(
		dataDir,
		filesystem.NewScanner(),
		[]driven.TabularReader{csv.New(), xlsx.New()},
		[]driven.DocumentNormaliser{pdfNormaliser, plaintext.New(), markdown.New()},
	)
	text := services.NewTextService(settings.OCR.MedicineThreshold)
	resolver := services.NewResolverService(
		corpus,
		services.NewTabularMatcher(settings.Match.TabularThreshold),
		services.NewDocumentMatcher(settings.Match),
		text,
		settings.Match.ShortCircuitConfidence,
	)

	history := openHistory(filepath.Join(configDir, dataSubdir), settings.HistoryEnabled && !noHistory)
	resolver.SetHistoryStore(history)
	closers = append(closers, history)

	corpusService = corpus
	textService = text
	resolverService = resolver
	historyService = services.NewHistoryService(history)
	watchDebounce = settings.WatchDebounce
	pdfCheck = pdfNormaliser.CheckAvailable
	return nil
}

// openHistory opens the SQLite history database. When persistence is off or
// the database cannot be opened, history is kept in memory for this run only.
func openHistory(dir string, persist bool) driven.HistoryStore {
	if !persist {
		return memory.NewHistoryStore()
	}
	store, err := sqlite.NewStore(dir)
	if err != nil {
		logger.Warn("History disabled: %v", err)
		return memory.NewHistoryStore()
	}
	return store
}

// applyFlagOverrides copies command flags that shadow config values.
func applyFlagOverrides(cmd *cobra.Command, settings *domain.Settings) error {
	if f := cmd.Flags().Lookup("threshold"); f != nil && f.Changed {
		settings.Match.TabularThreshold = resolveThreshold
		if err := settings.Match.Validate(); err != nil {
			return fmt.Errorf("--threshold: %w", err)
		}
	}
	return nil
}

// newReloadService builds a reload service over a filesystem watcher.
func newReloadService() driving.ReloadService {
	watcher := filesystem.NewWatcher()
	closers = append(closers, watcher)
	return services.NewReloadService(corpusService, watcher, watchDebounce)
}
