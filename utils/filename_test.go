package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "safe name untouched", input: "cat_photo-1.png", expected: "cat_photo-1.png"},
		{name: "spaces replaced", input: "my cat.png", expected: "my-cat.png"},
		{name: "path separators replaced", input: "../etc/passwd", expected: "..-etc-passwd"},
		{name: "unicode replaced", input: "写真.jpg", expected: "--.jpg"},
		{name: "empty becomes placeholder", input: "", expected: "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestArchiveEntryName(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		extension string
		expected  string
	}{
		{name: "extension appended", filename: "cat", extension: "png", expected: "cat.png"},
		{name: "extension already present", filename: "cat.png", extension: "png", expected: "cat.png"},
		{name: "extension case-insensitive", filename: "CAT.PNG", extension: "png", expected: "CAT.PNG"},
		{name: "different extension appended", filename: "cat.backup", extension: "png", expected: "cat.backup.png"},
		{name: "no extension known", filename: "cat", extension: "", expected: "cat"},
		{name: "sanitized before append", filename: "my cat", extension: "jpg", expected: "my-cat.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ArchiveEntryName(tt.filename, tt.extension))
		})
	}
}
