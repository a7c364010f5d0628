// Package file provides the TOML configuration store read at startup.
//
// Keys are addressed in dot notation ("match.tabular_threshold") and written
// back as nested tables, so a hand-edited config.toml round-trips cleanly.
package file
