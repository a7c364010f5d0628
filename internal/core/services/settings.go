package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/ports/driven"
	"github.com/custodia-labs/medlens/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDataDir           = "data.dir"
	keyTabularThreshold  = "match.tabular_threshold"
	keyShortCircuit      = "match.short_circuit_confidence"
	keyDocumentThreshold = "match.document_threshold"
	keyWindowBefore      = "match.window_before"
	keyWindowAfter       = "match.window_after"
	keySnippetLength     = "match.snippet_length"
	keyMedicineThreshold = "ocr.medicine_threshold"
	keyPdftotext         = "pdf.pdftotext"
	keyHistoryEnabled    = "history.enabled"
	keyWatchDebounceMS   = "watch.debounce_ms"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
	kindBool
)

var settingsKeys = map[string]keyKind{
	keyDataDir:           kindString,
	keyTabularThreshold:  kindInt,
	keyShortCircuit:      kindFloat,
	keyDocumentThreshold: kindInt,
	keyWindowBefore:      kindInt,
	keyWindowAfter:       kindInt,
	keySnippetLength:     kindInt,
	keyMedicineThreshold: kindFloat,
	keyPdftotext:         kindString,
	keyHistoryEnabled:    kindBool,
	keyWatchDebounceMS:   kindInt,
}

// SettingsService maps the flat config store onto domain.Settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Unset keys take their defaults; a stored
// value that fails validation is reported rather than silently replaced.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		DataDir: s.getString(keyDataDir, defaults.DataDir),
		Match: domain.MatchSettings{
			TabularThreshold:       s.getInt(keyTabularThreshold, defaults.Match.TabularThreshold),
			ShortCircuitConfidence: s.getFloat(keyShortCircuit, defaults.Match.ShortCircuitConfidence),
			DocumentThreshold:      s.getInt(keyDocumentThreshold, defaults.Match.DocumentThreshold),
			WindowBefore:           s.getInt(keyWindowBefore, defaults.Match.WindowBefore),
			WindowAfter:            s.getInt(keyWindowAfter, defaults.Match.WindowAfter),
			SnippetLength:          s.getInt(keySnippetLength, defaults.Match.SnippetLength),
		},
		OCR: domain.OCRSettings{
			MedicineThreshold: s.getFloat(keyMedicineThreshold, defaults.OCR.MedicineThreshold),
		},
		Pdftotext:      s.getString(keyPdftotext, defaults.Pdftotext),
		HistoryEnabled: s.getBool(keyHistoryEnabled, defaults.HistoryEnabled),
		WatchDebounce: time.Duration(
			s.getInt(keyWatchDebounceMS, int(defaults.WatchDebounce/time.Millisecond))) * time.Millisecond,
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Save validates and persists every setting.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key string
		val any
	}{
		{keyDataDir, settings.DataDir},
		{keyTabularThreshold, settings.Match.TabularThreshold},
		{keyShortCircuit, settings.Match.ShortCircuitConfidence},
		{keyDocumentThreshold, settings.Match.DocumentThreshold},
		{keyWindowBefore, settings.Match.WindowBefore},
		{keyWindowAfter, settings.Match.WindowAfter},
		{keySnippetLength, settings.Match.SnippetLength},
		{keyMedicineThreshold, settings.OCR.MedicineThreshold},
		{keyPdftotext, settings.Pdftotext},
		{keyHistoryEnabled, settings.HistoryEnabled},
		{keyWatchDebounceMS, int(settings.WatchDebounce / time.Millisecond)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.val); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value according to the key's type and persists it.
// The resulting settings must still validate.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingsKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	var err error
	switch kind {
	case kindInt:
		parsed, err = strconv.Atoi(strings.TrimSpace(value))
	case kindFloat:
		parsed, err = strconv.ParseFloat(strings.TrimSpace(value), 64)
	case kindBool:
		parsed, err = strconv.ParseBool(strings.TrimSpace(value))
	default:
		parsed = value
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	previous, existed := s.configStore.Get(key)
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if _, err := s.Get(); err != nil {
		s.restore(key, previous, existed)
		return err
	}
	return nil
}

// Keys lists the recognised settings keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingsKeys))
	for k := range settingsKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (s *SettingsService) restore(key string, previous any, existed bool) {
	if existed {
		_ = s.configStore.Set(key, previous)
		return
	}
	// A store without delete: fall back to the default value.
	_ = s.configStore.Set(key, defaultValue(key))
}

func defaultValue(key string) any {
	d := domain.DefaultSettings()
	switch key {
	case keyTabularThreshold:
		return d.Match.TabularThreshold
	case keyShortCircuit:
		return d.Match.ShortCircuitConfidence
	case keyDocumentThreshold:
		return d.Match.DocumentThreshold
	case keyWindowBefore:
		return d.Match.WindowBefore
	case keyWindowAfter:
		return d.Match.WindowAfter
	case keySnippetLength:
		return d.Match.SnippetLength
	case keyMedicineThreshold:
		return d.OCR.MedicineThreshold
	case keyPdftotext:
		return d.Pdftotext
	case keyHistoryEnabled:
		return d.HistoryEnabled
	case keyWatchDebounceMS:
		return int(d.WatchDebounce / time.Millisecond)
	default:
		return d.DataDir
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
