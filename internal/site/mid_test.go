package site

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/labsite/internal/logging"
)

func TestChainOrder(t *testing.T) {
	var order []int
	mw := func(n int) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, n)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, 0)
	}), mw(1), mw(2), mw(3))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []int{1, 2, 3, 0}, order)
}

func TestStatusWriter(t *testing.T) {
	sw := &statusWriter{ResponseWriter: httptest.NewRecorder()}
	sw.WriteHeader(http.StatusNotFound)
	sw.WriteHeader(http.StatusOK)
	assert.Equal(t, http.StatusNotFound, sw.status)

	sw = &statusWriter{ResponseWriter: httptest.NewRecorder()}
	_, err := sw.Write([]byte("hi"))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, sw.status)
}

func TestLogger_PassesStatus(t *testing.T) {
	h := Logger(logging.Discard())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRecover(t *testing.T) {
	h := Recover(logging.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORS_EmptyOriginDisabled(t *testing.T) {
	h := CORS("")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestOTel(t *testing.T) {
	h := OTel("test")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestNewLimiter(t *testing.T) {
	assert.Nil(t, newLimiter(0, 10))

	l := newLimiter(5, 0)
	if assert.NotNil(t, l) {
		assert.Equal(t, 10, l.Burst())
	}
	assert.Equal(t, 1, newLimiter(0.1, 0).Burst())
}

func TestRateLimit_NilPassesThrough(t *testing.T) {
	h := RateLimit(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
