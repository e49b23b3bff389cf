package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/imgdose/imgdose-api/config"
	"github.com/imgdose/imgdose-api/http/controller/dto"
	"github.com/imgdose/imgdose-api/infra"
	"github.com/imgdose/imgdose-api/repository"
)

// testController wires a controller whose repository never reaches a
// database; only request paths that stop before the first query may be
// exercised with it.
func testController() *Controller {
	return &Controller{
		Config:     &config.Config{EnvConfig: &config.EnvConfig{}},
		Infra:      &infra.Infra{Logger: silentLogger()},
		Repository: &repository.Repository{ImageRepo: repository.NewImageRepository(nil)},
	}
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func deleteRouter(ctrl *Controller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/images", ctrl.DeleteImages)
	return r
}

func TestDeleteImagesNoIDs(t *testing.T) {
	r := deleteRouter(testController())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodDelete, "/images", dto.IDListRequest{IDs: []string{"", "  "}}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
	assert.Contains(t, w.Body.String(), "No image IDs were provided.")
}

func TestDeleteImagesNoMatches(t *testing.T) {
	r := deleteRouter(testController())

	// None of these can name a row; the lookup short-circuits and the
	// handler answers 404 without touching storage.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodDelete, "/images", dto.IDListRequest{IDs: []string{"not-a-uuid", "also-bad"}}))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
	assert.Contains(t, w.Body.String(), "No matching images were found.")
}

func TestDeleteImagesMalformedBody(t *testing.T) {
	r := deleteRouter(testController())

	req := httptest.NewRequest(http.MethodDelete, "/images", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to parse delete request.")
}

func TestPaginationFor(t *testing.T) {
	tests := []struct {
		name     string
		params   repository.ListImagesParams
		returned int
		total    int64
		expected dto.Pagination
	}{
		{
			name:     "first of two pages",
			params:   repository.ListImagesParams{Page: 1, PageSize: 20},
			returned: 20,
			total:    40,
			expected: dto.Pagination{Total: 40, Page: 1, PageSize: 20, HasNext: true, HasPrev: false},
		},
		{
			name:     "last page exactly full",
			params:   repository.ListImagesParams{Page: 2, PageSize: 20},
			returned: 20,
			total:    40,
			expected: dto.Pagination{Total: 40, Page: 2, PageSize: 20, HasNext: false, HasPrev: true},
		},
		{
			name:     "single short page",
			params:   repository.ListImagesParams{Page: 1, PageSize: 20},
			returned: 5,
			total:    5,
			expected: dto.Pagination{Total: 5, Page: 1, PageSize: 20, HasNext: false, HasPrev: false},
		},
		{
			name:     "page past the end",
			params:   repository.ListImagesParams{Page: 3, PageSize: 20},
			returned: 0,
			total:    40,
			expected: dto.Pagination{Total: 40, Page: 3, PageSize: 20, HasNext: false, HasPrev: true},
		},
		{
			name:     "empty set",
			params:   repository.ListImagesParams{Page: 1, PageSize: 20},
			returned: 0,
			total:    0,
			expected: dto.Pagination{Total: 0, Page: 1, PageSize: 20, HasNext: false, HasPrev: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, paginationFor(tt.params, tt.returned, tt.total))
		})
	}
}
