// Package utils contains general helper functions used across promptpack.
package utils

import (
	"strings"
	"unicode/utf8"
)

const extensionSeparator = "."

// DeduplicateStrings removes duplicate and blank values from a slice while preserving order.
// The first occurrence of each unique value is kept.
func DeduplicateStrings(values []string) []string {
	encounteredValues := make(map[string]struct{})
	result := make([]string, 0, len(values))
	for _, value := range values {
		trimmedValue := strings.TrimSpace(value)
		if trimmedValue == EmptyString {
			continue
		}
		if _, exists := encounteredValues[trimmedValue]; !exists {
			encounteredValues[trimmedValue] = struct{}{}
			result = append(result, trimmedValue)
		}
	}
	return result
}

// NormalizeExtensions prefixes each extension with a dot when missing and removes duplicates.
// "gd", ".gd" and " .gd " all normalize to ".gd".
func NormalizeExtensions(extensions []string) []string {
	normalized := make([]string, 0, len(extensions))
	for _, extension := range extensions {
		trimmedExtension := strings.TrimSpace(extension)
		if trimmedExtension == EmptyString {
			continue
		}
		if !strings.HasPrefix(trimmedExtension, extensionSeparator) {
			trimmedExtension = extensionSeparator + trimmedExtension
		}
		normalized = append(normalized, trimmedExtension)
	}
	return DeduplicateStrings(normalized)
}

// HasAnySuffix reports whether name ends with one of the provided suffixes.
func HasAnySuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// CountCharacters returns the number of characters (runes) in text, not its byte length.
func CountCharacters(text string) int {
	return utf8.RuneCountInString(text)
}
