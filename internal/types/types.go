// Package types defines every cross‑package data structure used by the promptpack CLI.
package types

import "errors"

// ErrDocumentNotFound marks an inclusion path that does not exist on disk.
var ErrDocumentNotFound = errors.New("document not found")

// DirectoryEntry is a single filesystem entry discovered while scanning a tree.
type DirectoryEntry struct {
	Path  string
	Name  string
	IsDir bool
}

// Document is the outcome of reading one inclusion path.
// Exactly one of Content or Err is meaningful: Err is nil on success.
type Document struct {
	Path    string
	Content string
	Err     error
}

// Succeeded reports whether the document was read.
func (document Document) Succeeded() bool {
	return document.Err == nil
}

// Missing reports whether the document failed because the path does not exist.
func (document Document) Missing() bool {
	return errors.Is(document.Err, ErrDocumentNotFound)
}
