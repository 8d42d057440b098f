package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/protomem/todoit/internal/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONWithHeaders(t *testing.T) {
	w := httptest.NewRecorder()

	err := response.JSONWithHeaders(w, http.StatusCreated, response.JSONObject{"status": "OK"}, http.Header{
		"X-Trace-Id": []string{"abc"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "abc", w.Header().Get("X-Trace-Id"))
	assert.JSONEq(t, `{"status":"OK"}`, w.Body.String())
}

func TestJSONUnsupportedValue(t *testing.T) {
	w := httptest.NewRecorder()

	err := response.JSON(w, http.StatusOK, response.JSONObject{"ch": make(chan int)})
	require.Error(t, err)
	assert.Zero(t, w.Body.Len())
}

func TestMetricsResponseWriter(t *testing.T) {
	t.Run("implicit status", func(t *testing.T) {
		mw := response.NewMetricsResponseWriter(httptest.NewRecorder())

		n, err := mw.Write([]byte("hello"))
		require.NoError(t, err)

		assert.Equal(t, 5, n)
		assert.Equal(t, http.StatusOK, mw.StatusCode)
		assert.Equal(t, 5, mw.BytesCount)
	})

	t.Run("first status wins", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mw := response.NewMetricsResponseWriter(rec)

		mw.WriteHeader(http.StatusNotFound)
		mw.WriteHeader(http.StatusInternalServerError)

		assert.Equal(t, http.StatusNotFound, mw.StatusCode)
		assert.Same(t, rec, mw.Unwrap())
	})
}
