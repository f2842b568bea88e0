package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func performHealth(t *testing.T, pinger UpstreamPinger) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/api/health", NewHealthController(nil, pinger).HealthCheck)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(w, req)

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body.Data
}

func TestHealthCheckReportsUpstream(t *testing.T) {
	w, data := performHealth(t, fakePinger{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", data["status"])
	components, ok := data["components"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "up", components["upstream"])
	assert.Equal(t, "disabled", components["database"])
}

func TestHealthCheckDegradedWhenUpstreamDown(t *testing.T) {
	w, data := performHealth(t, fakePinger{err: errors.New("connection refused")})

	// 上游挂了服务照常响应，只在组件状态里降级
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "degraded", data["status"])
	components, ok := data["components"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "down", components["upstream"])
}
