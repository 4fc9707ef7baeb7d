package service

import (
	"context"
	"okr_backend/internal/model"
	"okr_backend/internal/progress"
	"okr_backend/pkg/logger"
	"okr_backend/pkg/monitoring"
	"okr_backend/pkg/tracing"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// KeyResultView 展示用的关键结果：生命周期与节奏状态在这里组合，互不覆盖
type KeyResultView struct {
	model.KeyResult
	Progress progress.Result `json:"progress"`
	// Badge 生命周期非 active 时显示生命周期，否则显示节奏状态
	Badge string `json:"badge"`
}

// ProgressService 把数据库记录转换为计算快照并调用引擎
type ProgressService struct {
	engine atomic.Pointer[progress.Engine]
	clock  Clock
}

func NewProgressService(policy progress.Policy, clock Clock) *ProgressService {
	if clock == nil {
		clock = time.Now
	}
	s := &ProgressService{clock: clock}
	s.engine.Store(progress.NewEngine(policy))
	return s
}

func (s *ProgressService) Policy() progress.Policy {
	return s.engine.Load().Policy()
}

// SetPolicy 运行时替换阈值（配置热更新）
func (s *ProgressService) SetPolicy(p progress.Policy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.engine.Store(progress.NewEngine(p))
	logger.Log.Info("Progress policy updated",
		zap.Float64("on_track_gap", p.OnTrackGap),
		zap.Float64("at_risk_gap", p.AtRiskGap),
		zap.Float64("milestone_ratio", p.MilestoneRatio))
	return nil
}

func (s *ProgressService) Now() time.Time {
	return s.clock()
}

// Snapshot 组装快照。周期缺失时使用零值周期，由引擎按已全部流逝处理。
func (s *ProgressService) Snapshot(kr *model.KeyResult, cycle *model.Cycle, now time.Time) progress.Snapshot {
	snap := progress.Snapshot{
		Type:        kr.Type,
		Measurement: kr.Measurement(),
		Now:         now,
		HasCheckIn:  kr.HasCheckIn(),
	}
	if cycle != nil {
		snap.Cycle = cycle.Window()
	} else {
		logger.Log.Warn("Key result evaluated without cycle", zap.Uint("key_result_id", kr.ID))
	}
	return snap
}

// Evaluate 计算单个快照并记录指标
func (s *ProgressService) Evaluate(ctx context.Context, snap progress.Snapshot) progress.Result {
	_, span := tracing.StartSpan(ctx, "progress.Evaluate", attribute.String("kr.type", string(snap.Type)))
	defer span.End()

	result := s.engine.Load().Evaluate(snap)
	monitoring.RecordEvaluation(snap.Type, result)

	span.SetAttributes(
		attribute.String("kr.status", string(result.Status)),
		attribute.Float64("kr.actual", result.ActualPercent),
		attribute.Float64("kr.ideal", result.IdealPercent),
	)
	return result
}

// View 计算关键结果并组合展示状态
func (s *ProgressService) View(ctx context.Context, kr model.KeyResult, cycle *model.Cycle, now time.Time) KeyResultView {
	result := s.Evaluate(ctx, s.Snapshot(&kr, cycle, now))
	return KeyResultView{
		KeyResult: kr,
		Progress:  result,
		Badge:     Badge(kr.Lifecycle, result.Status),
	}
}

// Rollup 汇总时排除已取消的关键结果
func (s *ProgressService) Rollup(views []KeyResultView) progress.ObjectiveRollup {
	results := make([]progress.Result, 0, len(views))
	for _, v := range views {
		if v.Lifecycle == model.LifecycleCanceled {
			continue
		}
		results = append(results, v.Progress)
	}
	return progress.Rollup(results)
}

// Badge 展示时组合生命周期和节奏状态
func Badge(lifecycle model.KeyResultLifecycle, status progress.Status) string {
	if lifecycle == "" || lifecycle == model.LifecycleActive {
		return string(status)
	}
	return string(lifecycle)
}

// EvaluateRequest 无状态计算接口的输入，Now 为空时使用服务端时钟
type EvaluateRequest struct {
	Type       progress.KeyResultType `json:"type"`
	Current    float64                `json:"current"`
	Target     float64                `json:"target"`
	Base       float64                `json:"base"`
	Unit       string                 `json:"unit"`
	CycleStart time.Time              `json:"cycleStart"`
	CycleEnd   time.Time              `json:"cycleEnd"`
	Now        *time.Time             `json:"now"`
	HasCheckIn bool                   `json:"hasCheckIn"`
}

func (s *ProgressService) EvaluateInput(ctx context.Context, req EvaluateRequest) progress.Result {
	now := s.Now()
	if req.Now != nil {
		now = *req.Now
	}
	return s.Evaluate(ctx, progress.Snapshot{
		Type: req.Type,
		Measurement: progress.Measurement{
			Current: req.Current,
			Target:  req.Target,
			Base:    req.Base,
			Unit:    req.Unit,
		},
		Cycle:      progress.Cycle{Start: req.CycleStart, End: req.CycleEnd},
		Now:        now,
		HasCheckIn: req.HasCheckIn,
	})
}
