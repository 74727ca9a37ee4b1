package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Error(rec, http.StatusBadRequest, "No data found.")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"error": "No data found."}`, rec.Body.String())
}

func TestInternalErrorHidesDetail(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	InternalError(rec)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error": "Internal server error."}`, rec.Body.String())
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	NotFound(rec)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	require.Equal(t, "Not found.", rec.Body.String())
}
