// Copyright (c) 2026 AtharHuda. All rights reserved.

package reminder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, handler http.Handler, method, target, body string) (int, map[string]interface{}) {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	decoded := map[string]interface{}{}
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder.Code, decoded
}

/*
TestSettingsEndpoints covers defaults, save, and validation.
*/
func TestSettingsEndpoints(t *testing.T) {
	scheduler, _, _ := newTestScheduler(t)
	t.Cleanup(scheduler.Stop)
	handler := NewHandler(scheduler).Routes()

	status, body := doJSON(t, handler, http.MethodGet, "/settings", "")
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, DefaultTime, data["time"])
	assert.Equal(t, false, data["enabled"])

	status, body = doJSON(t, handler, http.MethodPut, "/settings",
		`{"personName":"الوالدة","time":"21:30","enabled":true}`)
	require.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "21:30", data["time"])
	assert.NotEmpty(t, data["nextRun"], "an enabled reminder reports its next run")

	t.Run("enabled_requires_name", func(t *testing.T) {
		status, body := doJSON(t, handler, http.MethodPut, "/settings",
			`{"personName":"","time":"21:30","enabled":true}`)
		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
	})

	t.Run("bad_time", func(t *testing.T) {
		status, _ := doJSON(t, handler, http.MethodPut, "/settings",
			`{"personName":"الوالدة","time":"9pm","enabled":true}`)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

/*
TestTestNotificationEndpoint covers the immediate test delivery.
*/
func TestTestNotificationEndpoint(t *testing.T) {
	scheduler, notifier, _ := newTestScheduler(t)
	t.Cleanup(scheduler.Stop)
	handler := NewHandler(scheduler).Routes()

	status, _ := doJSON(t, handler, http.MethodPost, "/test", `{"personName":"سارة"}`)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, 1, notifier.tests)

	// Without a body name and without stored settings there is no target.
	status, body := doJSON(t, handler, http.MethodPost, "/test", `{}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}
