package service

import (
	"context"
	"errors"
	"fmt"
	"okr_backend/internal/model"
	"okr_backend/internal/progress"
	"okr_backend/internal/util"
	"okr_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ObjectiveService 处理目标及其汇总
type ObjectiveService struct {
	ObjectiveRepo ObjectiveStore
	KeyResultRepo KeyResultStore
	CycleRepo     CycleStore
	Progress      *ProgressService
	Cache         ResultCache
	CacheTTL      time.Duration
}

func NewObjectiveService(
	objectiveRepo ObjectiveStore,
	keyResultRepo KeyResultStore,
	cycleRepo CycleStore,
	progressService *ProgressService,
	cache ResultCache,
	cacheTTL time.Duration,
) *ObjectiveService {
	if cache == nil {
		cache = NopCache{}
	}
	return &ObjectiveService{
		ObjectiveRepo: objectiveRepo,
		KeyResultRepo: keyResultRepo,
		CycleRepo:     cycleRepo,
		Progress:      progressService,
		Cache:         cache,
		CacheTTL:      cacheTTL,
	}
}

type CreateObjectiveRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=2000"`
	CycleID     uint   `json:"cycleId" binding:"required"`
}

// ObjectiveSummary 目标详情及每个关键结果的计算结果
type ObjectiveSummary struct {
	Objective   model.Objective          `json:"objective"`
	Cycle       *model.Cycle             `json:"cycle,omitempty"`
	KeyResults  []KeyResultView          `json:"keyResults"`
	Rollup      progress.ObjectiveRollup `json:"rollup"`
	EvaluatedAt time.Time                `json:"evaluatedAt"`
}

func summaryCacheKey(objectiveID uint) string {
	return fmt.Sprintf("objective:%d:summary", objectiveID)
}

func (s *ObjectiveService) CreateObjective(actor Actor, req CreateObjectiveRequest) (*model.Objective, error) {
	if _, err := s.CycleRepo.FindByID(req.CycleID); err != nil {
		return nil, notFound(err, util.ErrCycleNotFound)
	}

	objective := &model.Objective{
		OwnerID:     actor.UserID,
		CycleID:     req.CycleID,
		Title:       req.Title,
		Description: req.Description,
	}
	return objective, s.ObjectiveRepo.Create(objective)
}

// GetObjective 读取目标并校验查看权限
func (s *ObjectiveService) GetObjective(actor Actor, id uint) (*model.Objective, error) {
	objective, err := s.ObjectiveRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, util.ErrObjectiveNotFound)
	}
	if !actor.canRead(objective.OwnerID) {
		return nil, util.ErrPermissionDenied
	}
	return objective, nil
}

// ListObjectives 获取用户的目标，经理和管理员可以查看其他成员
func (s *ObjectiveService) ListObjectives(actor Actor, ownerID, cycleID uint) ([]model.Objective, error) {
	if ownerID == 0 {
		ownerID = actor.UserID
	}
	if !actor.canRead(ownerID) {
		return nil, util.ErrPermissionDenied
	}
	return s.ObjectiveRepo.FindByOwnerID(ownerID, cycleID)
}

// Summary 计算目标下所有关键结果的进度并汇总。
// 结果按目标缓存，任何关键结果或签到写入都会使其失效。
func (s *ObjectiveService) Summary(ctx context.Context, actor Actor, id uint) (*ObjectiveSummary, error) {
	objective, err := s.GetObjective(actor, id)
	if err != nil {
		return nil, err
	}

	var cached ObjectiveSummary
	hit, err := s.Cache.Get(ctx, summaryCacheKey(id), &cached)
	if err != nil {
		logger.FromContext(ctx).Warn("Summary cache read failed", zap.Uint("objective_id", id), zap.Error(err))
	}
	if hit && err == nil {
		return &cached, nil
	}

	summary, err := s.evaluate(ctx, objective)
	if err != nil {
		return nil, err
	}

	if s.CacheTTL > 0 {
		if err := s.Cache.Set(ctx, summaryCacheKey(id), summary, s.CacheTTL); err != nil {
			logger.FromContext(ctx).Warn("Summary cache write failed", zap.Uint("objective_id", id), zap.Error(err))
		}
	}
	return summary, nil
}

func (s *ObjectiveService) evaluate(ctx context.Context, objective *model.Objective) (*ObjectiveSummary, error) {
	krs, err := s.KeyResultRepo.FindByObjectiveID(objective.ID)
	if err != nil {
		return nil, err
	}

	cycle, err := s.CycleRepo.FindByID(objective.CycleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cycle = nil
	} else if err != nil {
		return nil, err
	}

	now := s.Progress.Now()
	views := make([]KeyResultView, 0, len(krs))
	for _, kr := range krs {
		views = append(views, s.Progress.View(ctx, kr, cycle, now))
	}

	return &ObjectiveSummary{
		Objective:   *objective,
		Cycle:       cycle,
		KeyResults:  views,
		Rollup:      s.Progress.Rollup(views),
		EvaluatedAt: now,
	}, nil
}

// Invalidate 清除目标汇总缓存
func (s *ObjectiveService) Invalidate(ctx context.Context, objectiveID uint) {
	if err := s.Cache.Delete(ctx, summaryCacheKey(objectiveID)); err != nil {
		logger.FromContext(ctx).Warn("Summary cache invalidation failed", zap.Uint("objective_id", objectiveID), zap.Error(err))
	}
}
