package controller

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/imgdose/imgdose-api/http/controller/dto"
)

func TestExtractIDList(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil input", input: nil, expected: []string{}},
		{name: "trims and drops empties", input: []string{" a ", "", "  ", "b"}, expected: []string{"a", "b"}},
		{name: "dedupes preserving order", input: []string{"a", "b", "a", "c", "b"}, expected: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractIDList(tt.input))
		})
	}
}

func TestParseIDList(t *testing.T) {
	valid := uuid.New()
	parsed := parseIDList([]string{valid.String(), "not-a-uuid", ""})
	assert.Equal(t, []uuid.UUID{valid}, parsed)
}

func TestClampPositiveInt(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{name: "valid value", raw: "42", expected: 42},
		{name: "non-numeric falls back", raw: "abc", expected: 20},
		{name: "empty falls back", raw: "", expected: 20},
		{name: "below min clamps", raw: "0", expected: 1},
		{name: "negative clamps", raw: "-5", expected: 1},
		{name: "above max clamps", raw: "1000", expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clampPositiveInt(tt.raw, 20, 1, 100))
		})
	}
}

func TestUploadStatus(t *testing.T) {
	success := dto.UploadResult{Success: true}
	failure := dto.UploadResult{Success: false}

	tests := []struct {
		name       string
		results    []dto.UploadResult
		wantStatus int
		wantOK     bool
	}{
		{name: "all succeed", results: []dto.UploadResult{success, success}, wantStatus: http.StatusOK, wantOK: true},
		{name: "mixed outcome", results: []dto.UploadResult{success, failure}, wantStatus: http.StatusMultiStatus, wantOK: true},
		{name: "all fail", results: []dto.UploadResult{failure, failure}, wantStatus: http.StatusBadRequest, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ok := uploadStatus(tt.results)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func fileHeaderFor(size int64, contentType string) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: "test.png",
		Size:     size,
		Header:   header,
	}
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name        string
		fileHeader  *multipart.FileHeader
		expectError string
	}{
		{name: "valid png", fileHeader: fileHeaderFor(1024, "image/png")},
		{name: "valid svg with charset", fileHeader: fileHeaderFor(1024, "image/svg+xml; charset=utf-8")},
		{name: "empty file", fileHeader: fileHeaderFor(0, "image/png"), expectError: "file is empty"},
		{name: "oversize file", fileHeader: fileHeaderFor(MaxFileBytes+1, "image/png"), expectError: "file exceeds the 10 MiB limit"},
		{name: "disallowed type", fileHeader: fileHeaderFor(1024, "application/pdf"), expectError: `content type "application/pdf" is not allowed`},
		{name: "missing type", fileHeader: fileHeaderFor(1024, ""), expectError: `content type "" is not allowed`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateUpload(tt.fileHeader)
			if tt.expectError == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.expectError)
			}
		})
	}
}

func TestValidateUploadBoundary(t *testing.T) {
	assert.NoError(t, validateUpload(fileHeaderFor(MaxFileBytes, "image/png")))
}

func TestFileExtension(t *testing.T) {
	tests := []struct {
		filename    string
		contentType string
		expected    string
	}{
		{filename: "cat.PNG", contentType: "image/png", expected: "png"},
		{filename: "cat.jpeg", contentType: "image/jpeg", expected: "jpeg"},
		{filename: "cat", contentType: "image/jpeg", expected: "jpg"},
		{filename: "cat", contentType: "image/svg+xml", expected: "svg"},
		{filename: "cat", contentType: "application/octet-stream", expected: ""},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.filename, tt.contentType), func(t *testing.T) {
			assert.Equal(t, tt.expected, fileExtension(tt.filename, tt.contentType))
		})
	}
}
