// Package normalisers holds the DocumentNormaliser implementations, one
// package per document format. Each normaliser turns a corpus file into a
// domain.DocumentRecord carrying the document's full searchable text.
//
// The corpus loader picks a normaliser by file extension.
package normalisers
