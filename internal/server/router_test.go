package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"contractor-directory-api/internal/handler"
	"contractor-directory-api/internal/metrics"
	"contractor-directory-api/internal/middleware"
	"contractor-directory-api/internal/models"
	"contractor-directory-api/internal/ratelimit"
	"contractor-directory-api/internal/search"
	"contractor-directory-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubContractors struct{}

func (stubContractors) Search(context.Context, search.Query) (*service.SearchResult, error) {
	return &service.SearchResult{Pagination: search.Pagination{Limit: 10, TotalPages: 0, CurrentPage: 1}}, nil
}

func (stubContractors) Get(context.Context, uuid.UUID) (*models.Contractor, error) {
	return &models.Contractor{FirstName: "Ava"}, nil
}

type stubLocalities struct{}

func (stubLocalities) Lookup(context.Context, string) ([]models.Locality, error) {
	return []models.Locality{{Name: "Parramatta"}}, nil
}

func (stubLocalities) Nearest(context.Context, float64, float64) (*models.Locality, error) {
	return nil, nil
}

// countingLimiter allows limit requests per key and remembers the keys it saw.
type countingLimiter struct {
	mu     sync.Mutex
	limit  int
	counts map[string]int
}

func newCountingLimiter(limit int) *countingLimiter {
	return &countingLimiter{limit: limit, counts: map[string]int{}}
}

func (l *countingLimiter) Allow(_ context.Context, key string) (ratelimit.Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[key]++
	return ratelimit.Decision{
		Allowed:   l.counts[key] <= l.limit,
		Limit:     l.limit,
		Remaining: max(l.limit-l.counts[key], 0),
		ResetAt:   time.Now().Add(time.Minute),
	}, nil
}

func buildTestRouter(t *testing.T, rateLimit gin.HandlerFunc, trustedProxies []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	r, err := NewRouter(Dependencies{
		Contractors:    handler.NewContractorHandler(stubContractors{}, m, zerolog.Nop()),
		Localities:     handler.NewLocalityHandler(stubLocalities{}, zerolog.Nop()),
		RateLimit:      rateLimit,
		Gatherer:       reg,
		Logger:         zerolog.Nop(),
		AllowedOrigins: []string{"https://directory.example.com.au"},
		TrustedProxies: trustedProxies,
	})
	require.NoError(t, err)
	return r
}

func newTestRouter(t *testing.T, rateLimit gin.HandlerFunc) *gin.Engine {
	return buildTestRouter(t, rateLimit, nil)
}

func TestNewRouter_Routes(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		path           string
		expectedStatus int
		contains       string
	}{
		{"/health", http.StatusOK, `"status":"ok"`},
		{"/api/contractors", http.StatusOK, `"success":true`},
		{"/api/contractors/00000000-0000-0000-0000-000000000001", http.StatusOK, `"firstName":"Ava"`},
		{"/api/contractors?limit=-1", http.StatusBadRequest, "Invalid limit parameter"},
		{"/api/localities/geocode?q=Parramatta", http.StatusOK, `"name":"Parramatta"`},
		{"/api/localities/reverse?lat=-40&lon=130", http.StatusNotFound, "no locality found"},
		{"/metrics", http.StatusOK, "contractor_directory_rate_limited_total"},
		{"/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestNewRouter_RateLimitGuardsSearchOnly(t *testing.T) {
	deny := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
	}
	r := newTestRouter(t, deny)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/contractors", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/contractors/00000000-0000-0000-0000-000000000001", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewRouter_CORS(t *testing.T) {
	r := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/contractors", nil)
	req.Header.Set("Origin", "https://directory.example.com.au")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://directory.example.com.au", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/contractors", nil)
	req.Header.Set("Origin", "https://elsewhere.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCorsConfig_Wildcard(t *testing.T) {
	cfg := corsConfig([]string{"https://a.example.com", "*"})
	assert.True(t, cfg.AllowAllOrigins)
	assert.Empty(t, cfg.AllowOrigins)
}

func TestNewRouter_ForwardedForIgnoredWithoutTrustedProxies(t *testing.T) {
	limiter := newCountingLimiter(1)
	r := newTestRouter(t, middleware.RateLimit(limiter, nil, zerolog.Nop()))

	var statuses []int
	for _, forwarded := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		req := httptest.NewRequest(http.MethodGet, "/api/contractors", nil)
		req.RemoteAddr = "9.9.9.9:51000"
		req.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, statuses)
	assert.Equal(t, map[string]int{"9.9.9.9": 3}, limiter.counts)
}

func TestNewRouter_ForwardedForFromTrustedProxy(t *testing.T) {
	limiter := newCountingLimiter(1)
	r := buildTestRouter(t, middleware.RateLimit(limiter, nil, zerolog.Nop()), []string{"10.0.0.0/8"})

	send := func(remoteAddr, forwarded string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/contractors", nil)
		req.RemoteAddr = remoteAddr
		req.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.5:51000", "1.1.1.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.5:51000", "2.2.2.2"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.5:51000", "1.1.1.1"))
	// an untrusted peer cannot borrow another client's quota key
	assert.Equal(t, http.StatusOK, send("9.9.9.9:51000", "2.2.2.2"))
	assert.Equal(t, map[string]int{"1.1.1.1": 2, "2.2.2.2": 1, "9.9.9.9": 1}, limiter.counts)
}

func TestNewRouter_InvalidTrustedProxy(t *testing.T) {
	_, err := NewRouter(Dependencies{TrustedProxies: []string{"not-an-ip"}})
	assert.Error(t, err)
}
