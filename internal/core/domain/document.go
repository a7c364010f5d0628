package domain

// DocumentRecord is the extracted text of one unstructured document.
// It is immutable after load.
type DocumentRecord struct {
	// ID is the unique identifier assigned at load time.
	ID string

	// Filename is the base name of the source file.
	Filename string

	// Path is the absolute location the text was extracted from.
	Path string

	// Content is the full text, pages concatenated in order.
	Content string

	// Pages is the number of pages the extractor reported (1 for plain text).
	Pages int
}
