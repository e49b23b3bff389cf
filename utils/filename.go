package utils

import (
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)

// SanitizeFilename replaces every character outside the safe allow-set
// with "-". User-supplied names may carry path separators, spaces and
// arbitrary unicode; archive entries must not.
func SanitizeFilename(filename string) string {
	sanitized := unsafeFilenameChars.ReplaceAllString(filename, "-")
	if sanitized == "" {
		return "file"
	}
	return sanitized
}

// ArchiveEntryName builds the ZIP entry name for an image: the sanitized
// original filename, with the stored file extension appended unless the
// name already ends with it (case-insensitive).
func ArchiveEntryName(originalFilename, extension string) string {
	base := SanitizeFilename(originalFilename)
	if extension == "" {
		return base
	}
	if strings.HasSuffix(strings.ToLower(base), "."+strings.ToLower(extension)) {
		return base
	}
	return base + "." + extension
}
