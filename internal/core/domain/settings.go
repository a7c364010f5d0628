package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// Default tuning values. Each encodes how far a signal is trusted.
const (
	// DefaultTabularThreshold is the minimum ratio (0-100) for a tabular match.
	DefaultTabularThreshold = 70

	// DefaultShortCircuitConfidence is the tabular confidence above which
	// document search is skipped entirely.
	DefaultShortCircuitConfidence = 0.85

	// DefaultDocumentThreshold is the partial-ratio score (0-100) a document
	// window must exceed.
	DefaultDocumentThreshold = 60

	// DefaultWindowBefore is how many characters precede a document hit.
	DefaultWindowBefore = 200

	// DefaultWindowAfter is how many characters follow a document hit.
	DefaultWindowAfter = 500

	// DefaultSnippetLength bounds the document text copied into Uses.
	DefaultSnippetLength = 300

	// DefaultMedicineThreshold is the likelihood confidence that marks text as medicine-related.
	DefaultMedicineThreshold = 0.30

	// DefaultPdftotext is the pdftotext binary looked up on PATH.
	DefaultPdftotext = "pdftotext"

	// DefaultWatchDebounce coalesces bursts of file events before a reload.
	DefaultWatchDebounce = 500 * time.Millisecond
)

// MatchSettings tunes the matchers and the resolution coordinator.
type MatchSettings struct {
	TabularThreshold       int
	ShortCircuitConfidence float64
	DocumentThreshold      int
	WindowBefore           int
	WindowAfter            int
	SnippetLength          int
}

// OCRSettings tunes OCR post-processing.
type OCRSettings struct {
	MedicineThreshold float64
}

// Settings holds every tunable medlens reads from configuration.
type Settings struct {
	// DataDir is the corpus directory. Empty means ~/.medlens/data.
	DataDir string

	Match MatchSettings
	OCR   OCRSettings

	// Pdftotext is the binary name or path used for PDF extraction.
	Pdftotext string

	// HistoryEnabled turns resolution history persistence on.
	HistoryEnabled bool

	// WatchDebounce is the quiet period before a watched change triggers a reload.
	WatchDebounce time.Duration
}

// DefaultMatchSettings returns the built-in matcher tuning.
func DefaultMatchSettings() MatchSettings {
	return MatchSettings{
		TabularThreshold:       DefaultTabularThreshold,
		ShortCircuitConfidence: DefaultShortCircuitConfidence,
		DocumentThreshold:      DefaultDocumentThreshold,
		WindowBefore:           DefaultWindowBefore,
		WindowAfter:            DefaultWindowAfter,
		SnippetLength:          DefaultSnippetLength,
	}
}

// DefaultSettings returns settings populated with built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Match:          DefaultMatchSettings(),
		OCR:            OCRSettings{MedicineThreshold: DefaultMedicineThreshold},
		Pdftotext:      DefaultPdftotext,
		HistoryEnabled: true,
		WatchDebounce:  DefaultWatchDebounce,
	}
}

// Validate checks every threshold is within its scale.
func (m MatchSettings) Validate() error {
	if m.TabularThreshold < 0 || m.TabularThreshold > 100 {
		return fmt.Errorf("%w: tabular threshold %d outside 0-100", ErrInvalidInput, m.TabularThreshold)
	}
	if m.DocumentThreshold < 0 || m.DocumentThreshold > 100 {
		return fmt.Errorf("%w: document threshold %d outside 0-100", ErrInvalidInput, m.DocumentThreshold)
	}
	if m.ShortCircuitConfidence < 0 || m.ShortCircuitConfidence > 1 {
		return fmt.Errorf("%w: short-circuit confidence %.2f outside 0-1", ErrInvalidInput, m.ShortCircuitConfidence)
	}
	if m.WindowBefore < 0 || m.WindowAfter < 0 {
		return fmt.Errorf("%w: context window bounds must not be negative", ErrInvalidInput)
	}
	if m.SnippetLength <= 0 {
		return fmt.Errorf("%w: snippet length must be positive", ErrInvalidInput)
	}
	return nil
}

// Validate checks all settings.
func (s Settings) Validate() error {
	if err := s.Match.Validate(); err != nil {
		return err
	}
	if s.OCR.MedicineThreshold < 0 || s.OCR.MedicineThreshold > 1 {
		return fmt.Errorf("%w: medicine threshold %.2f outside 0-1", ErrInvalidInput, s.OCR.MedicineThreshold)
	}
	if s.WatchDebounce < 0 {
		return fmt.Errorf("%w: watch debounce must not be negative", ErrInvalidInput)
	}
	return nil
}
