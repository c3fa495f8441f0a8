// Package commands contains the core logic shared by the pack and task commands:
// rendering the project tree and assembling the prompt.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/promptpack/internal/types"
	"github.com/temirov/promptpack/internal/utils"
)

const (
	branchConnector     = "├── "
	lastBranchConnector = "└── "
	continuationPrefix  = "│   "
	lastSiblingPrefix   = "    "
	directorySuffix     = "/"
	treeLineSeparator   = "\n"

	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// TreeRenderer renders an ASCII listing of a directory tree.
// Directories named in SkipDirectories are neither listed nor descended into at any depth.
// Files are listed only when their name ends with one of Extensions.
type TreeRenderer struct {
	Title           string
	SkipDirectories []string
	Extensions      []string
}

// Render scans rootDirectoryPath recursively and returns the title line followed by one
// line per listed entry, terminated by a newline. Any directory that cannot be read is an error.
func (renderer TreeRenderer) Render(rootDirectoryPath string) (string, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}

	lines := []string{renderer.Title}
	walkError := renderer.walk(absoluteRootPath, utils.EmptyString, &lines)
	if walkError != nil {
		return "", walkError
	}
	return strings.Join(lines, treeLineSeparator) + treeLineSeparator, nil
}

func (renderer TreeRenderer) walk(directoryPath string, prefix string, lines *[]string) error {
	entries, listError := renderer.listEntries(directoryPath)
	if listError != nil {
		return listError
	}
	for index, entry := range entries {
		isLast := index == len(entries)-1
		connector := branchConnector
		childPrefix := prefix + continuationPrefix
		if isLast {
			connector = lastBranchConnector
			childPrefix = prefix + lastSiblingPrefix
		}
		suffix := utils.EmptyString
		if entry.IsDir {
			suffix = directorySuffix
		}
		*lines = append(*lines, prefix+connector+entry.Name+suffix)
		if entry.IsDir {
			if walkError := renderer.walk(entry.Path, childPrefix, lines); walkError != nil {
				return walkError
			}
		}
	}
	return nil
}

// listEntries returns the filtered entries of one directory, directories first,
// each group in case-insensitive name order.
func (renderer TreeRenderer) listEntries(directoryPath string) ([]types.DirectoryEntry, error) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readDirectoryError)
	}

	var entries []types.DirectoryEntry
	for _, directoryEntry := range directoryEntries {
		entryPath := filepath.Join(directoryPath, directoryEntry.Name())
		isDirectory, isRegular := classifyEntry(entryPath, directoryEntry)
		switch {
		case isDirectory:
			if utils.ContainsString(renderer.SkipDirectories, directoryEntry.Name()) {
				continue
			}
		case isRegular:
			if !utils.HasAnySuffix(directoryEntry.Name(), renderer.Extensions) {
				continue
			}
		default:
			continue
		}
		entries = append(entries, types.DirectoryEntry{
			Path:  entryPath,
			Name:  directoryEntry.Name(),
			IsDir: isDirectory,
		})
	}

	sort.SliceStable(entries, func(left, right int) bool {
		if entries[left].IsDir != entries[right].IsDir {
			return entries[left].IsDir
		}
		leftName := strings.ToLower(entries[left].Name)
		rightName := strings.ToLower(entries[right].Name)
		if leftName != rightName {
			return leftName < rightName
		}
		return entries[left].Name < entries[right].Name
	})
	return entries, nil
}

// classifyEntry reports whether the entry is a directory or a regular file, following symlinks.
// Broken symlinks and special files are neither.
func classifyEntry(entryPath string, directoryEntry os.DirEntry) (bool, bool) {
	if directoryEntry.Type()&os.ModeSymlink == 0 {
		return directoryEntry.IsDir(), directoryEntry.Type().IsRegular()
	}
	targetInfo, statError := os.Stat(entryPath)
	if statError != nil {
		return false, false
	}
	return targetInfo.IsDir(), targetInfo.Mode().IsRegular()
}
