package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simskyeconomy/simsky-core/internal/config"
)

func newTestRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	return NewRateLimiter(&config.RateLimitConfig{
		RequestsPerMinute: requestsPerMinute,
		Burst:             burst,
	})
}

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := newTestRateLimiter(5, 3)

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("allows requests within burst", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			rec := send("203.0.113.10:1234")
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("rejects requests over burst", func(t *testing.T) {
		rec := send("203.0.113.10:1234")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"too many requests, slow down"}`, rec.Body.String())
	})

	t.Run("tracks addresses independently", func(t *testing.T) {
		rec := send("203.0.113.99:5678")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("honors forwarded address", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:80"
		req.Header.Set("X-Forwarded-For", "203.0.113.10")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}
