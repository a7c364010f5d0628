// Package domain defines the core business entities for medlens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - MedicineRecord: A canonical row of the tabular corpus
//   - DocumentRecord: The extracted text of one unstructured document
//   - Corpus: An immutable snapshot of both record sets
//   - MatchResult: The output of either matching strategy
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
