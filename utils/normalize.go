package utils

import "strings"

// NormalizeDocument canonicalizes a document number for matching:
// surrounding and embedded spaces are removed and letters upper-cased.
func NormalizeDocument(document string) string {
	return strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(document, " ", "")))
}

// NormalizeDocType canonicalizes a document-type token. Embedded spaces are kept.
func NormalizeDocType(docType string) string {
	return strings.ToLower(strings.TrimSpace(docType))
}

// NormalizePart canonicalizes a part identifier.
func NormalizePart(part string) string {
	return strings.ToUpper(strings.TrimSpace(part))
}

// NormalizeField canonicalizes a value read from a part record.
func NormalizeField(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
