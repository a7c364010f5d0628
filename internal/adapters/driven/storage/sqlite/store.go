package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/medlens/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/ports/driven"
)

// DatabaseFile is the history database file name inside the data directory.
const DatabaseFile = "history.db"

// Store is the SQLite-backed resolution history.
type Store struct {
	db   *sql.DB
	path string
}

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// NewStore opens (creating if needed) the history database in dataDir.
// If dataDir is empty, defaults to ~/.medlens/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".medlens", "data")
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending up migrations in version order.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_history.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Save inserts a resolution record. Saving an existing ID replaces it.
func (s *Store) Save(ctx context.Context, rec domain.ResolutionRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("%w: resolution record has no id", domain.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO resolutions
			(id, query, candidate, brand_name, confidence, source, resolved, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Query, rec.Candidate, rec.BrandName, rec.Confidence, rec.Source,
		boolToInt(rec.Resolved), rec.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving resolution %s: %w", rec.ID, err)
	}
	return nil
}

// Recent returns up to limit records, newest first. A non-positive limit returns all.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.ResolutionRecord, error) {
	query := `
		SELECT id, query, candidate, brand_name, confidence, source, resolved, created_at
		FROM resolutions
		ORDER BY created_at DESC, id
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying resolutions: %w", err)
	}
	defer rows.Close()

	records := []domain.ResolutionRecord{}
	for rows.Next() {
		var (
			rec      domain.ResolutionRecord
			resolved int
			created  int64
		)
		if err := rows.Scan(&rec.ID, &rec.Query, &rec.Candidate, &rec.BrandName,
			&rec.Confidence, &rec.Source, &resolved, &created); err != nil {
			return nil, fmt.Errorf("scanning resolution: %w", err)
		}
		rec.Resolved = resolved != 0
		rec.CreatedAt = time.Unix(0, created).UTC()
		records = append(records, rec)
	}

	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
