package domain

import "time"

// Corpus is an immutable snapshot of everything the resolver searches.
// A reload builds a new Corpus and swaps the reference; it never edits one in place.
type Corpus struct {
	// Medicines holds the tabular records in discovery order.
	Medicines []MedicineRecord

	// Documents holds the unstructured sources in discovery order.
	Documents []DocumentRecord

	// NameColumn is the column the match keys were read from.
	NameColumn string

	// Seeded reports whether the built-in sample data was used.
	Seeded bool

	// LoadedAt is when the snapshot was built.
	LoadedAt time.Time
}

// HasTabular reports whether any tabular records are present.
func (c *Corpus) HasTabular() bool {
	return c != nil && len(c.Medicines) > 0
}

// HasDocuments reports whether any documents are present.
func (c *Corpus) HasDocuments() bool {
	return c != nil && len(c.Documents) > 0
}

// IsEmpty reports whether the corpus has neither records nor documents.
func (c *Corpus) IsEmpty() bool {
	return !c.HasTabular() && !c.HasDocuments()
}

// CorpusStats summarises a snapshot for display.
type CorpusStats struct {
	Medicines  int
	Documents  int
	NameColumn string
	Seeded     bool
	LoadedAt   time.Time
}

// Stats returns a summary of the snapshot.
func (c *Corpus) Stats() CorpusStats {
	if c == nil {
		return CorpusStats{}
	}
	return CorpusStats{
		Medicines:  len(c.Medicines),
		Documents:  len(c.Documents),
		NameColumn: c.NameColumn,
		Seeded:     c.Seeded,
		LoadedAt:   c.LoadedAt,
	}
}
