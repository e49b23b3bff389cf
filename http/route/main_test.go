package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/imgdose/imgdose-api/config"
	"github.com/imgdose/imgdose-api/http/controller"
	"github.com/imgdose/imgdose-api/infra"
	"github.com/imgdose/imgdose-api/repository"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := &controller.Controller{
		Config:     &config.Config{EnvConfig: &config.EnvConfig{}},
		Infra:      &infra.Infra{Logger: infra.InitLoggerClient(&config.EnvConfig{LogLevel: "silent"})},
		Repository: &repository.Repository{},
	}
	return SetupRouter(ctrl)
}

func TestUnknownRouteAnswersEnvelope(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), `"ok":false`)
	assert.Contains(t, w.Body.String(), "Not Found")
}

func TestUnknownMethodAnswersEnvelope(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/images", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}
