package domain

import (
	"path/filepath"
	"strings"
)

// SourceFileKind classifies a corpus file by how it is read.
type SourceFileKind int

const (
	// SourceUnknown is a file no reader handles.
	SourceUnknown SourceFileKind = iota

	// SourceTabularFile is a structured file (CSV, spreadsheet).
	SourceTabularFile

	// SourceDocumentFile is an unstructured text document.
	SourceDocumentFile
)

// String returns the kind's name.
func (k SourceFileKind) String() string {
	switch k {
	case SourceTabularFile:
		return "tabular"
	case SourceDocumentFile:
		return "document"
	default:
		return "unknown"
	}
}

var extensionKinds = map[string]SourceFileKind{
	".csv":  SourceTabularFile,
	".xlsx": SourceTabularFile,
	".pdf":  SourceDocumentFile,
	".txt":  SourceDocumentFile,
	".md":   SourceDocumentFile,
}

// KindForPath classifies a path by its extension, case-insensitively.
func KindForPath(path string) SourceFileKind {
	return extensionKinds[Ext(path)]
}

// Ext returns the lower-cased extension of a path, including the dot.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// SourceFile is a corpus file found in the data directory.
type SourceFile struct {
	// Path is the absolute file path.
	Path string

	// Name is the base name.
	Name string

	Kind SourceFileKind

	Size int64
}

// ChangeType represents the type of source file change.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified file.
	ChangeUpdated

	// ChangeDeleted indicates a removed or renamed file.
	ChangeDeleted
)

// String returns the change type's name.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return unknownDescription
	}
}

// SourceChange is a change event for a corpus file.
type SourceChange struct {
	Type ChangeType
	Path string
	Kind SourceFileKind
}
