package security

import (
	"net/http"
	"net/http/httptest"
	"okr_backend/internal/config"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func hit(r *gin.Engine, method string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/ok", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSAllowsWhitelistedOrigin(t *testing.T) {
	r := newRouter(CORS(config.CORSConfig{AllowedOrigins: []string{"http://app.example"}}))

	w := hit(r, http.MethodGet, map[string]string{"Origin": "http://app.example"})
	assert.Equal(t, "http://app.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Retry-After")

	// 非白名单也要带 Vary，否则共享缓存可能把拒绝的响应返回给合法来源
	w = hit(r, http.MethodGet, map[string]string{"Origin": "http://evil.example"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter(CORS(config.CORSConfig{AllowedOrigins: []string{"http://app.example"}, MaxAgeSeconds: 600}))

	w := hit(r, http.MethodOptions, map[string]string{"Origin": "http://app.example"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
	assert.Equal(t, "Authorization, Content-Type", w.Header().Get("Access-Control-Allow-Headers"))

	w = hit(newRouter(CORS(config.CORSConfig{})), http.MethodOptions, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Max-Age"))
}

func TestSecureHeaders(t *testing.T) {
	w := hit(newRouter(Secure()), http.MethodGet, nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRateLimiter(t *testing.T) {
	r := newRouter(RateLimiter(config.RateLimitConfig{MaxRequests: 2, WindowMinutes: 60}))

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = hit(r, http.MethodGet, nil)
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
	assert.JSONEq(t, `{"code":429,"message":"too many requests"}`, last.Body.String())

	// 60 分钟 2 次，下一个令牌约 30 分钟后恢复
	retry, err := strconv.Atoi(last.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.InDelta(t, 30*60, retry, 5)
}

func TestRateLimiterRejectionDoesNotConsumeTokens(t *testing.T) {
	r := newRouter(RateLimiter(config.RateLimitConfig{MaxRequests: 1, WindowMinutes: 60}))

	assert.Equal(t, http.StatusOK, hit(r, http.MethodGet, nil).Code)
	first := hit(r, http.MethodGet, nil)
	second := hit(r, http.MethodGet, nil)

	require.Equal(t, http.StatusTooManyRequests, second.Code)
	// 被拒绝的请求撤销了预留，等待时间不会越排越长
	a, _ := strconv.Atoi(first.Header().Get("Retry-After"))
	b, _ := strconv.Atoi(second.Header().Get("Retry-After"))
	assert.InDelta(t, a, b, 1)
}

func TestRateLimiterDisabled(t *testing.T) {
	r := newRouter(RateLimiter(config.RateLimitConfig{}))

	for i := 0; i < 50; i++ {
		w := hit(r, http.MethodGet, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}
