// Copyright (c) 2026 AtharHuda. All rights reserved.

package adhkar

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, handler http.Handler, method, target string) (int, map[string]interface{}) {
	t.Helper()

	request := httptest.NewRequest(method, target, nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	decoded := map[string]interface{}{}
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder.Code, decoded
}

/*
TestCounterEndpoints walks the increment/reset flow over HTTP.
*/
func TestCounterEndpoints(t *testing.T) {
	service, _ := newTestService(t)
	handler := NewHandler(service).Routes()

	status, body := doRequest(t, handler, http.MethodPost, "/after-prayer/45/increment")
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["current"])
	assert.Equal(t, float64(3), data["target"])
	assert.Equal(t, false, data["completed"])

	status, body = doRequest(t, handler, http.MethodPost, "/after-prayer/45/reset")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["data"].(map[string]interface{})["current"])

	status, _ = doRequest(t, handler, http.MethodPost, "/categories/after-prayer/reset")
	assert.Equal(t, http.StatusNoContent, status)

	status, body = doRequest(t, handler, http.MethodPost, "/no-such/1/increment")
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

/*
TestCatalogAndStatsEndpoints covers the read views.
*/
func TestCatalogAndStatsEndpoints(t *testing.T) {
	service, _ := newTestService(t)
	handler := NewHandler(service).Routes()

	status, body := doRequest(t, handler, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["data"])

	doRequest(t, handler, http.MethodPost, "/morning/8/increment")
	doRequest(t, handler, http.MethodPost, "/morning/8/increment")

	status, body = doRequest(t, handler, http.MethodGet, "/stats")
	require.Equal(t, http.StatusOK, status)
	stats := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["totalTaps"])

	status, body = doRequest(t, handler, http.MethodGet, "/morning/8")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["data"].(map[string]interface{})["current"])
}
