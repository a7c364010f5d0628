// Package connectors holds the adapters that discover corpus sources.
//
// The filesystem connector lists and watches the local data directory.
package connectors
