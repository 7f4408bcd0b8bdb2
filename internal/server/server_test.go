package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsmesh/cognition/internal/core"
	"github.com/newsmesh/cognition/internal/core/model"
	"github.com/newsmesh/cognition/internal/lookup"
)

type okLookup struct{}

func (okLookup) SearchCompany(ctx context.Context, name string) (lookup.Result, error) {
	return lookup.Result{Validated: true, Confidence: 0.95}, nil
}

func (okLookup) SearchEntity(ctx context.Context, name, typeHint string) (lookup.Result, error) {
	return lookup.Result{Validated: true, Confidence: 0.92}, nil
}

func newTestRouter(responses ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	pipeline := core.NewPipeline(
		&core.MockLLMClient{Responses: responses},
		okLookup{},
		okLookup{},
		core.Options{
			ModelID:               "test-model",
			EntityThreshold:       0.7,
			RelationshipThreshold: 0.7,
			LookupDelay:           time.Millisecond,
		},
	)
	return NewServer(pipeline).SetupRouter()
}

func TestAnalyzeReturnsResult(t *testing.T) {
	router := newTestRouter(`{"entities": []}`)

	body := `{"article_id": "a-1", "title": "t", "content": "Nothing notable.", "source": "wire"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result model.StructuredResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "a-1", result.ArticleID)
	assert.True(t, result.FactCheckPassed)
	assert.Equal(t, "test-model", result.LLMModelUsed)
}

func TestAnalyzeRejectsMissingFields(t *testing.T) {
	router := newTestRouter(`{"entities": []}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"article_id": "a-1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeRejectsInvalidJSON(t *testing.T) {
	router := newTestRouter(`{"entities": []}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{broken`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
