package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type loggerStub struct{}

func (l *loggerStub) Warn(string, ...interface{}) {}

func adminRequest(token string, headerValue string) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/capacity", nil)
	if headerValue != "" {
		req.Header.Set("X-Admin-Token", headerValue)
	}
	rec := httptest.NewRecorder()

	AdminAuth(token, &loggerStub{})(next).ServeHTTP(rec, req)
	return rec
}

func TestAdminAuth(t *testing.T) {
	t.Run("valid token passes", func(t *testing.T) {
		rec := adminRequest("secret", "secret")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong token rejected", func(t *testing.T) {
		rec := adminRequest("secret", "guess")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		rec := adminRequest("secret", "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("empty configured token locks admin routes", func(t *testing.T) {
		rec := adminRequest("", "anything")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
