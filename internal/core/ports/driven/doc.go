// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SourceScanner: Lists corpus files in the data directory
//   - TabularReader: Parses a structured file into a Table
//   - DocumentNormaliser: Extracts the full text of a document
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SourceWatcher: Change notifications. Without it, the corpus only reloads on restart.
//   - HistoryStore: Resolution history. Without it, nothing is persisted.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
