package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"okr_backend/internal/progress"
	"okr_backend/internal/service"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthData struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
	Policy     *progress.Policy  `json:"policy"`
}

func newHealthRouter(h *HealthController) *gin.Engine {
	r := gin.New()
	r.GET("/api/health", h.HealthCheck)
	return r
}

func TestHealthWithoutDatabase(t *testing.T) {
	policy := progress.Policy{OnTrackGap: 5, AtRiskGap: 15, MilestoneRatio: 0.9}
	progressSvc := service.NewProgressService(policy, func() time.Time { return fixedNow })

	w, env := doJSON(t, newHealthRouter(NewHealthController(nil, nil, progressSvc)), http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, http.StatusServiceUnavailable, env.Code)

	var data healthData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "down", data.Status)
	assert.Equal(t, "down", data.Components["database"])
	assert.Equal(t, "local", data.Components["cache"])
	require.NotNil(t, data.Policy)
	assert.Equal(t, policy, *data.Policy)
}

func TestHealthCacheStatus(t *testing.T) {
	h := NewHealthController(nil, nil, nil)
	assert.Equal(t, "local", h.cacheStatus(context.Background()))

	// 没有监听的端口，Ping 立即失败
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = rdb.Close() })
	h = NewHealthController(nil, rdb, nil)
	assert.Equal(t, "down", h.cacheStatus(context.Background()))
}
