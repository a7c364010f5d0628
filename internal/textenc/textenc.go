// Package textenc decodes corpus files with a primary encoding and a
// fallback. UTF-8 is tried first and rejected on any invalid sequence;
// Latin-1 (ISO-8859-1) accepts every byte and is used as the fallback.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Encoding names a supported text encoding.
type Encoding string

// Supported encodings, in the order they are attempted.
const (
	UTF8   Encoding = "utf-8"
	Latin1 Encoding = "latin-1"
)

// Order is the attempt order for DecodeWithFallback.
var Order = []Encoding{UTF8, Latin1}

// ErrInvalidEncoding indicates the bytes are not valid in the requested encoding.
var ErrInvalidEncoding = errors.New("invalid encoding")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts data from enc to an NFC-normalised Go string.
func Decode(data []byte, enc Encoding) (string, error) {
	switch enc {
	case UTF8:
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: not valid %s", ErrInvalidEncoding, enc)
		}
		return norm.NFC.String(string(data)), nil
	case Latin1:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
		}
		return norm.NFC.String(string(out)), nil
	default:
		return "", fmt.Errorf("%w: unknown encoding %q", ErrInvalidEncoding, enc)
	}
}

// DecodeWithFallback decodes data with each encoding in Order and hands the
// text to parse. The first encoding for which both steps succeed wins; its
// name is returned alongside the parsed value. When every attempt fails the
// last error is returned.
func DecodeWithFallback[T any](data []byte, parse func(string) (T, error)) (T, Encoding, error) {
	var zero T
	var lastErr error
	for _, enc := range Order {
		text, err := Decode(data, enc)
		if err != nil {
			lastErr = err
			continue
		}
		v, err := parse(text)
		if err != nil {
			lastErr = fmt.Errorf("parse as %s: %w", enc, err)
			continue
		}
		return v, enc, nil
	}
	return zero, "", lastErr
}

// ReadFile reads a text file with DecodeWithFallback.
func ReadFile(path string) (string, Encoding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return DecodeWithFallback(data, func(text string) (string, error) { return text, nil })
}
