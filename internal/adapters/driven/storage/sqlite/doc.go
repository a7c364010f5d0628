// Package sqlite persists resolution history in a local SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. The schema is managed through versioned migrations in the
// migrations/ directory, applied in order on open.
//
// By default, the database is stored at ~/.medlens/data/history.db.
// The connection runs in WAL mode so concurrent readers never block a writer.
package sqlite
