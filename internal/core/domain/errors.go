package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnreadable indicates a corpus file could not be parsed in any
	// supported encoding. The loader skips such files.
	ErrSourceUnreadable = errors.New("source unreadable")

	// ErrNoCorpus indicates no source produced any records.
	// The loader degrades to the seed corpus instead of returning it.
	ErrNoCorpus = errors.New("no corpus available")

	// ErrHistoryUnavailable indicates resolution history is disabled.
	ErrHistoryUnavailable = errors.New("history unavailable")
)
