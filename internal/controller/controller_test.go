package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"okr_backend/internal/model"
	"okr_backend/internal/progress"
	"okr_backend/internal/service"
	"okr_backend/internal/util"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

// withUser 模拟认证中间件
func withUser(userID uint, role model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: userID, Role: role})
		c.Next()
	}
}

func TestProgressEvaluate(t *testing.T) {
	pc := NewProgressController(service.NewProgressService(progress.DefaultPolicy(), func() time.Time { return fixedNow }))
	r := gin.New()
	r.POST("/evaluate", pc.Evaluate)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.Add(50 * time.Hour)
	w, env := doJSON(t, r, http.MethodPost, "/evaluate", service.EvaluateRequest{
		Type:       progress.DecreaseTo,
		Current:    75,
		Target:     0,
		Base:       100,
		CycleStart: start,
		CycleEnd:   start.Add(100 * time.Hour),
		Now:        &now,
		HasCheckIn: true,
	})

	require.Equal(t, http.StatusOK, w.Code)
	var result progress.Result
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.InDelta(t, 25, result.ActualPercent, 1e-9)
	assert.InDelta(t, 50, result.IdealPercent, 1e-9)
	assert.Equal(t, progress.StatusBehind, result.Status)
}

func TestProgressEvaluateUsesServerClock(t *testing.T) {
	pc := NewProgressController(service.NewProgressService(progress.DefaultPolicy(), func() time.Time { return fixedNow }))
	r := gin.New()
	r.POST("/evaluate", pc.Evaluate)

	// 周期结束早于开始，按已全部流逝处理
	w, env := doJSON(t, r, http.MethodPost, "/evaluate", service.EvaluateRequest{
		Type:       progress.IncreaseTo,
		Current:    50,
		Target:     100,
		CycleStart: fixedNow.Add(time.Hour),
		CycleEnd:   fixedNow.Add(time.Hour),
		HasCheckIn: true,
	})

	require.Equal(t, http.StatusOK, w.Code)
	var result progress.Result
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 100.0, result.IdealPercent)
	assert.Equal(t, progress.StatusBehind, result.Status)
}

func TestProgressRollup(t *testing.T) {
	pc := NewProgressController(service.NewProgressService(progress.DefaultPolicy(), nil))
	r := gin.New()
	r.POST("/rollup", pc.Rollup)
	r.GET("/policy", pc.GetPolicy)

	w, env := doJSON(t, r, http.MethodPost, "/rollup", RollupRequest{Results: []progress.Result{
		{ActualPercent: 0, IdealPercent: 10},
		{ActualPercent: 50, IdealPercent: 20},
		{ActualPercent: 100, IdealPercent: 30},
	}})
	require.Equal(t, http.StatusOK, w.Code)

	var rollup progress.ObjectiveRollup
	require.NoError(t, json.Unmarshal(env.Data, &rollup))
	assert.InDelta(t, 50, rollup.ActualPercent, 1e-9)
	assert.InDelta(t, 20, rollup.IdealPercent, 1e-9)

	w, env = doJSON(t, r, http.MethodPost, "/rollup", "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, http.StatusBadRequest, env.Code)

	w, env = doJSON(t, r, http.MethodGet, "/policy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var policy progress.Policy
	require.NoError(t, json.Unmarshal(env.Data, &policy))
	assert.Equal(t, progress.DefaultPolicy(), policy)
}

type stubCycles struct {
	cycles map[uint]model.Cycle
}

func (s *stubCycles) Create(c *model.Cycle) error {
	c.ID = uint(len(s.cycles) + 1)
	s.cycles[c.ID] = *c
	return nil
}

func (s *stubCycles) FindByID(id uint) (*model.Cycle, error) {
	c, ok := s.cycles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (s *stubCycles) FindAll() ([]model.Cycle, error) {
	out := make([]model.Cycle, 0, len(s.cycles))
	for _, c := range s.cycles {
		out = append(out, c)
	}
	return out, nil
}

func TestCycleController(t *testing.T) {
	cc := NewCycleController(service.NewCycleService(&stubCycles{cycles: map[uint]model.Cycle{}}))
	r := gin.New()
	r.POST("/cycles", cc.CreateCycle)
	r.GET("/cycles/:id", cc.GetCycle)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	w, _ := doJSON(t, r, http.MethodPost, "/cycles", service.CreateCycleRequest{Name: "Q1", StartAt: start, EndAt: start.AddDate(0, 3, 0)})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, r, http.MethodPost, "/cycles", service.CreateCycleRequest{Name: "bad", StartAt: start, EndAt: start.AddDate(0, -1, 0)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, util.ErrInvalidCycle.Error(), env.Message)

	w, _ = doJSON(t, r, http.MethodPost, "/cycles", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = doJSON(t, r, http.MethodGet, "/cycles/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cycle model.Cycle
	require.NoError(t, json.Unmarshal(env.Data, &cycle))
	assert.Equal(t, "Q1", cycle.Name)

	w, _ = doJSON(t, r, http.MethodGet, "/cycles/9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/cycles/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestObjectiveControllerRequiresUser(t *testing.T) {
	oc := NewObjectiveController(&service.ObjectiveService{})
	r := gin.New()
	r.GET("/objectives", oc.ListObjectives)

	w, _ := doJSON(t, r, http.MethodGet, "/objectives", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestObjectiveControllerCreateUnknownCycle(t *testing.T) {
	svc := service.NewObjectiveService(nil, nil, &stubCycles{cycles: map[uint]model.Cycle{}}, nil, nil, 0)
	oc := NewObjectiveController(svc)
	r := gin.New()
	r.POST("/objectives", withUser(1, model.Member), oc.CreateObjective)

	w, _ := doJSON(t, r, http.MethodPost, "/objectives", service.CreateObjectiveRequest{Title: "x", CycleID: 5})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
