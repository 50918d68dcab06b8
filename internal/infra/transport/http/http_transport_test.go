package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	context_ "github.com/mkrupp/homecase-sessiongate/internal/infra/context"
	"github.com/mkrupp/homecase-sessiongate/internal/infra/logging"
	http_ "github.com/mkrupp/homecase-sessiongate/internal/infra/transport/http"
)

func TestWrap_PropagatesTraceID(t *testing.T) {
	t.Parallel()

	var seen string

	handler := http_.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = context_.TraceIDFromContext(r.Context())
	}), logging.NewNopLogger())

	req := httptest.NewRequest(http.MethodGet, "/view", nil)
	req.Header.Set(http_.TraceIDHeader, "abc")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rec.Header().Get(http_.TraceIDHeader))
}

func TestWrap_GeneratesTraceID(t *testing.T) {
	t.Parallel()

	handler := http_.Wrap(http.NotFoundHandler(), logging.NewNopLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, rec.Header().Get(http_.TraceIDHeader))
}

func TestWrap_RecoversPanics(t *testing.T) {
	t.Parallel()

	handler := http_.Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), logging.NewNopLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
