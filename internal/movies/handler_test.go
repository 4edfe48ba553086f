package movies

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"moviehub/internal/auth"
	"moviehub/internal/scraper"
	"moviehub/pkg/models"
)

var testTokens = auth.TokenService{
	Secret:   []byte("test-secret"),
	Issuer:   "moviehub-test",
	Duration: time.Hour,
}

func newTestServer(t *testing.T) (*gin.Engine, *scraper.Store, *atomic.Int32) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, store := newTestRepo(t)

	var runs atomic.Int32
	h := NewHandler(repo, func(ctx context.Context) { runs.Add(1) })

	router := gin.New()
	h.RegisterRoutes(router, auth.AdminOnly(testTokens))
	return router, store, &runs
}

func do(router *gin.Engine, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListDefaultsAndValidation(t *testing.T) {
	router, store, _ := newTestServer(t)
	seedCorpus(t, store)

	w := do(router, http.MethodGet, "/movies", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.Movie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 4)

	w = do(router, http.MethodGet, "/movies?skip=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "skip")

	w = do(router, http.MethodGet, "/movies?limit=-1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "limit")
}

func TestSearchNotFoundIsExplicit(t *testing.T) {
	router, store, _ := newTestServer(t)
	seedCorpus(t, store)

	w := do(router, http.MethodGet, "/movies/search?title=shawshank", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/movies/search?title=zzz-not-there", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "zzz-not-there")

	w = do(router, http.MethodGet, "/movies/search", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "title")
}

func TestFilterValidation(t *testing.T) {
	router, store, _ := newTestServer(t)
	seedCorpus(t, store)

	for _, target := range []string{
		"/movies/filter?min_rating=11",
		"/movies/filter?min_rating=abc",
		"/movies/filter?min_year=1776",
		"/movies/filter?sort_by=popularity",
		"/movies/filter?order=sideways",
	} {
		w := do(router, http.MethodGet, target, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestFilterEmptyIsNotFoundOnBothPaths(t *testing.T) {
	router, store, _ := newTestServer(t)
	seedCorpus(t, store)

	w := do(router, http.MethodGet, "/movies/filter?min_rating=9.9", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// same contract on the discrepancy path
	w = do(router, http.MethodGet, "/movies/filter?min_rating=9.9&sort_by=discrepancy", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestFilterDiscrepancyRanking(t *testing.T) {
	router, store, _ := newTestServer(t)
	seedCorpus(t, store)

	w := do(router, http.MethodGet, "/movies/filter?sort_by=discrepancy", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ranked []RankedMovie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ranked))
	require.Len(t, ranked, 2)
	require.Equal(t, "Inception", ranked[0].Title)
	require.InDelta(t, 15, ranked[0].Discrepancy, 1e-9)
}

func TestExportCSVEndpoint(t *testing.T) {
	router, store, _ := newTestServer(t)
	seedCorpus(t, store)

	w := do(router, http.MethodGet, "/export/csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	require.Contains(t, w.Header().Get("Content-Disposition"), "movies.csv")

	parsed, err := ReadCSV(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	require.Len(t, parsed, 4)
	require.Equal(t, "The Shawshank Redemption", parsed[0].Title)
}

func TestScraperRunRequiresAdminToken(t *testing.T) {
	router, _, runs := newTestServer(t)

	w := do(router, http.MethodPost, "/scraper/run", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, http.MethodPost, "/scraper/run", map[string]string{"Authorization": "Bearer garbage"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, int32(0), runs.Load())
}

func TestScraperRunFireAndForget(t *testing.T) {
	router, _, runs := newTestServer(t)

	token, _, err := testTokens.Sign(auth.RoleAdmin)
	require.NoError(t, err)

	w := do(router, http.MethodPost, "/scraper/run", map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusAccepted, w.Code)

	var ack struct {
		JobID   string `json:"job_id"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	require.NotEmpty(t, ack.JobID)

	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
}
