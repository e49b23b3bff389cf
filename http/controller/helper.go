package controller

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/imgdose/imgdose-api/http/controller/dto"
	"github.com/imgdose/imgdose-api/repository"
)

const (
	// MaxFileBytes caps a single uploaded file at 10 MiB. The client
	// validates too, but the server is authoritative.
	MaxFileBytes int64 = 10 * 1024 * 1024

	// MaxArchiveItems caps one archive request; larger batches are
	// rejected outright, not truncated.
	MaxArchiveItems = 50
)

var allowedContentTypes = map[string]struct{}{
	"image/jpeg":    {},
	"image/png":     {},
	"image/webp":    {},
	"image/gif":     {},
	"image/svg+xml": {},
}

// extensionByContentType fills in the file extension when the uploaded
// filename carries none.
var extensionByContentType = map[string]string{
	"image/jpeg":    "jpg",
	"image/png":     "png",
	"image/webp":    "webp",
	"image/gif":     "gif",
	"image/svg+xml": "svg",
}

// extractIDList trims entries, discards empties and de-duplicates while
// preserving order.
func extractIDList(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	ids := make([]string, 0, len(raw))
	for _, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		ids = append(ids, value)
	}
	return ids
}

// parseIDList converts cleaned id strings to UUIDs. Values that are not
// valid UUIDs cannot match any row and are silently excluded, the same
// way unknown ids are.
func parseIDList(ids []string) []uuid.UUID {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		value, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		parsed = append(parsed, value)
	}
	return parsed
}

// clampPositiveInt parses a query integer, falling back on non-numeric
// input and clamping into [min, max].
func clampPositiveInt(raw string, fallback, min, max int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// uploadStatus maps a result set to the response status: 200 when every
// file stored, 207 for a mixed outcome, 400 when nothing stored.
func uploadStatus(results []dto.UploadResult) (status int, hasSuccess bool) {
	allSuccess := true
	for _, result := range results {
		if result.Success {
			hasSuccess = true
		} else {
			allSuccess = false
		}
	}
	switch {
	case hasSuccess && allSuccess:
		return http.StatusOK, true
	case hasSuccess:
		return http.StatusMultiStatus, true
	default:
		return http.StatusBadRequest, false
	}
}

// paginationFor derives the page envelope from the normalized listing
// params, the number of rows actually returned and the filtered total.
func paginationFor(params repository.ListImagesParams, returned int, total int64) dto.Pagination {
	return dto.Pagination{
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
		HasNext:  int64(params.Offset()+returned) < total,
		HasPrev:  params.Page > 1,
	}
}

func normalizeContentType(raw string) string {
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return mediaType
}

func validateUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size == 0 {
		return fmt.Errorf("file is empty")
	}
	if fileHeader.Size > MaxFileBytes {
		return fmt.Errorf("file exceeds the %d MiB limit", MaxFileBytes/(1024*1024))
	}
	contentType := normalizeContentType(fileHeader.Header.Get("Content-Type"))
	if _, ok := allowedContentTypes[contentType]; !ok {
		return fmt.Errorf("content type %q is not allowed", contentType)
	}
	return nil
}

// fileExtension derives the stored extension from the filename, falling
// back to the content type.
func fileExtension(filename, contentType string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext != "" {
		return strings.ToLower(ext)
	}
	return extensionByContentType[contentType]
}
