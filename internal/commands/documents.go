package commands

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/temirov/promptpack/internal/types"
)

var errInvalidUTF8 = errors.New("content is not valid UTF-8 text")

// CollectDocuments reads every inclusion path in order and returns one Document per path.
// Paths are not filtered by extension.
func CollectDocuments(paths []string) []types.Document {
	documents := make([]types.Document, 0, len(paths))
	for _, path := range paths {
		documents = append(documents, ReadDocument(path))
	}
	return documents
}

// ReadDocument reads a single inclusion path. A path that cannot be stat'ed is reported as
// types.ErrDocumentNotFound; read failures and non UTF-8 content carry their cause.
//
// #nosec G304
func ReadDocument(path string) types.Document {
	if _, statError := os.Stat(path); statError != nil {
		return types.Document{Path: path, Err: fmt.Errorf("%w: %s", types.ErrDocumentNotFound, path)}
	}
	contentBytes, readError := os.ReadFile(path)
	if readError != nil {
		return types.Document{Path: path, Err: readError}
	}
	if !utf8.Valid(contentBytes) {
		return types.Document{Path: path, Err: errInvalidUTF8}
	}
	return types.Document{Path: path, Content: string(contentBytes)}
}
