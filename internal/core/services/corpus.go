package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/ports/driven"
	"github.com/custodia-labs/medlens/internal/core/ports/driving"
	"github.com/custodia-labs/medlens/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// CorpusService loads the corpus from a data directory and publishes it as
// an immutable snapshot. Loads are serialised; readers never block.
type CorpusService struct {
	dataDir     string
	scanner     driven.SourceScanner
	readers     map[string]driven.TabularReader
	normalisers map[string]driven.DocumentNormaliser

	current atomic.Pointer[domain.Corpus]
	loadMu  sync.Mutex

	now func() time.Time
}

// NewCorpusService creates a corpus service. Readers and normalisers are
// indexed by the extensions they declare; a later entry wins a clash.
func NewCorpusService(
	dataDir string,
	scanner driven.SourceScanner,
	readers []driven.TabularReader,
	normalisers []driven.DocumentNormaliser,
) *CorpusService {
	s := &CorpusService{
		dataDir:     dataDir,
		scanner:     scanner,
		readers:     make(map[string]driven.TabularReader),
		normalisers: make(map[string]driven.DocumentNormaliser),
		now:         time.Now,
	}
	for _, r := range readers {
		for _, ext := range r.SupportedExtensions() {
			s.readers[ext] = r
		}
	}
	for _, n := range normalisers {
		for _, ext := range n.SupportedExtensions() {
			s.normalisers[ext] = n
		}
	}
	return s
}

// DataDir returns the directory the corpus is loaded from.
func (s *CorpusService) DataDir() string {
	return s.dataDir
}

// Snapshot returns the current corpus, loading it on first use.
func (s *CorpusService) Snapshot(ctx context.Context) (*domain.Corpus, error) {
	if c := s.current.Load(); c != nil {
		return c, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if c := s.current.Load(); c != nil {
		return c, nil
	}
	return s.loadLocked(ctx)
}

// Reload builds a new corpus and swaps it in.
func (s *CorpusService) Reload(ctx context.Context) (*domain.Corpus, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.loadLocked(ctx)
}

// IsLoaded reports whether a snapshot has been published and holds medicine
// records or documents. The sample corpus counts as loaded.
func (s *CorpusService) IsLoaded() bool {
	c := s.current.Load()
	return c != nil && !c.IsEmpty()
}

// MedicineNames returns the distinct match keys of the current corpus.
func (s *CorpusService) MedicineNames(ctx context.Context) ([]string, error) {
	c, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(c.Medicines))
	names := make([]string, 0, len(c.Medicines))
	for _, m := range c.Medicines {
		if m.Key == "" {
			continue
		}
		if _, dup := seen[m.Key]; dup {
			continue
		}
		seen[m.Key] = struct{}{}
		names = append(names, m.Key)
	}
	return names, nil
}

func (s *CorpusService) loadLocked(ctx context.Context) (*domain.Corpus, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.current.Store(c)
	return c, nil
}

// Load builds a corpus from the data directory without publishing it.
// Source problems never surface as errors: unreadable files are skipped
// and an empty or missing directory yields the seed corpus. The only error
// is context cancellation.
func (s *CorpusService) Load(ctx context.Context) (*domain.Corpus, error) {
	logger.Section("Loading corpus")

	files, err := s.scanner.Scan(ctx, s.dataDir)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if os.IsNotExist(err) {
			if mkErr := os.MkdirAll(s.dataDir, 0o755); mkErr != nil {
				logger.Warn("Could not create data directory %s: %v", s.dataDir, mkErr)
			} else {
				logger.Info("Created data directory at %s", s.dataDir)
			}
		} else {
			logger.Warn("Could not scan %s: %v", s.dataDir, err)
		}
		return s.seed(), nil
	}

	var tables []*domain.Table
	var docs []domain.DocumentRecord
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch f.Kind {
		case domain.SourceTabularFile:
			if t := s.readTable(ctx, f); t != nil {
				tables = append(tables, t)
			}
		case domain.SourceDocumentFile:
			if d := s.readDocument(ctx, f); d != nil {
				docs = append(docs, *d)
			}
		}
	}

	corpus, err := buildCorpus(tables, docs, s.now())
	if errors.Is(err, domain.ErrNoCorpus) {
		logger.Info("No dataset files found, using sample data")
		return s.seed(), nil
	}

	logger.Info("Corpus loaded: %d tabular records, %d documents", len(corpus.Medicines), len(corpus.Documents))
	return corpus, nil
}

func (s *CorpusService) seed() *domain.Corpus {
	c := SeedCorpus(s.now())
	logger.Info("Sample corpus created with %d medicines", len(c.Medicines))
	return c
}

func (s *CorpusService) readTable(ctx context.Context, f domain.SourceFile) *domain.Table {
	reader, ok := s.readers[domain.Ext(f.Path)]
	if !ok {
		logger.Debug("No tabular reader for %s", f.Name)
		return nil
	}
	t, err := reader.Read(ctx, f)
	if err != nil {
		logger.Warn("Skipping %s: %v", f.Name, wrapUnreadable(err))
		return nil
	}
	logger.Info("Loaded %s: %d records", f.Name, t.Len())
	return t
}

func (s *CorpusService) readDocument(ctx context.Context, f domain.SourceFile) *domain.DocumentRecord {
	n, ok := s.normalisers[domain.Ext(f.Path)]
	if !ok {
		logger.Debug("No document normaliser for %s", f.Name)
		return nil
	}
	d, err := n.Normalise(ctx, f)
	if err != nil {
		logger.Warn("Skipping %s: %v", f.Name, wrapUnreadable(err))
		return nil
	}
	logger.Info("Extracted text from %s: %d characters", f.Name, len([]rune(d.Content)))
	return d
}

func wrapUnreadable(err error) error {
	if errors.Is(err, domain.ErrSourceUnreadable) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrSourceUnreadable, err)
}

// buildCorpus unions the tables by column name and resolves every row into
// the canonical schema. It returns ErrNoCorpus when there is nothing to search.
func buildCorpus(tables []*domain.Table, docs []domain.DocumentRecord, at time.Time) (*domain.Corpus, error) {
	var columns []string
	seen := make(map[string]struct{})
	rows := 0
	for _, t := range tables {
		rows += t.Len()
		for _, c := range t.Columns {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				columns = append(columns, c)
			}
		}
	}

	if rows == 0 && len(docs) == 0 {
		return nil, domain.ErrNoCorpus
	}

	corpus := &domain.Corpus{
		Documents: docs,
		LoadedAt:  at,
	}
	if rows == 0 {
		return corpus, nil
	}

	nameColumn, fromAlias := domain.ResolveNameColumn(columns)
	if !fromAlias {
		logger.Warn("Using column %q as medicine name", nameColumn)
	}
	corpus.NameColumn = nameColumn

	corpus.Medicines = make([]domain.MedicineRecord, 0, rows)
	for _, t := range tables {
		for _, values := range t.Rows {
			row := make(domain.Row, len(t.Columns))
			for i, c := range t.Columns {
				if i < len(values) {
					row[c] = values[i]
				}
			}
			corpus.Medicines = append(corpus.Medicines, domain.NewMedicineRecord(row, nameColumn))
		}
	}
	return corpus, nil
}
