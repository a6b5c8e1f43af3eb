package platform

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("MIGRACOST_TEST_STR", "value")
	t.Setenv("MIGRACOST_TEST_INT", "42")
	t.Setenv("MIGRACOST_TEST_FLOAT", "1.4")
	t.Setenv("MIGRACOST_TEST_BOOL", "true")
	t.Setenv("MIGRACOST_TEST_BAD", "not-a-number")

	assert.Equal(t, "value", GetEnv("MIGRACOST_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("MIGRACOST_TEST_MISSING", "fallback"))

	assert.Equal(t, 42, GetEnvInt("MIGRACOST_TEST_INT", 7))
	assert.Equal(t, 7, GetEnvInt("MIGRACOST_TEST_BAD", 7))

	assert.Equal(t, 1.4, GetEnvFloat("MIGRACOST_TEST_FLOAT", 2.0))
	assert.Equal(t, 2.0, GetEnvFloat("MIGRACOST_TEST_BAD", 2.0))

	assert.True(t, GetEnvBool("MIGRACOST_TEST_BOOL", false))
	assert.False(t, GetEnvBool("MIGRACOST_TEST_BAD", true))
	assert.True(t, GetEnvBool("MIGRACOST_TEST_MISSING", true))
}

func TestAPIKeyMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := APIKeyMiddleware(next)

	// No configured key means the check is skipped.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	t.Setenv("MIGRACOST_API_KEY", "secret")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-API-Key", "wrong")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-API-Key", "secret")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
