package service

import (
	"context"
	"errors"
	"okr_backend/internal/model"
	"okr_backend/internal/progress"
	"okr_backend/internal/util"

	"gorm.io/gorm"
)

type KeyResultService struct {
	KeyResultRepo KeyResultStore
	Objectives    *ObjectiveService
	Progress      *ProgressService
}

func NewKeyResultService(keyResultRepo KeyResultStore, objectives *ObjectiveService, progressService *ProgressService) *KeyResultService {
	return &KeyResultService{
		KeyResultRepo: keyResultRepo,
		Objectives:    objectives,
		Progress:      progressService,
	}
}

type CreateKeyResultRequest struct {
	Title   string                 `json:"title" binding:"required,max=255"`
	Type    progress.KeyResultType `json:"type" binding:"required"`
	Current float64                `json:"current"`
	Target  float64                `json:"target"`
	Base    float64                `json:"base"`
	Unit    string                 `json:"unit" binding:"max=32"`
}

type UpdateLifecycleRequest struct {
	Lifecycle model.KeyResultLifecycle `json:"lifecycle" binding:"required"`
}

// CreateKeyResult 在目标下新建关键结果。未知类型会按默认线性规则计算，因此允许写入。
func (s *KeyResultService) CreateKeyResult(ctx context.Context, actor Actor, objectiveID uint, req CreateKeyResultRequest) (*model.KeyResult, error) {
	objective, err := s.Objectives.GetObjective(actor, objectiveID)
	if err != nil {
		return nil, err
	}
	if !actor.canWrite(objective.OwnerID) {
		return nil, util.ErrPermissionDenied
	}

	kr := &model.KeyResult{
		ObjectiveID: objective.ID,
		OwnerID:     objective.OwnerID,
		Title:       req.Title,
		Type:        req.Type,
		Current:     req.Current,
		Target:      req.Target,
		Base:        req.Base,
		Unit:        req.Unit,
		Lifecycle:   model.LifecycleActive,
	}
	if err := s.KeyResultRepo.Create(kr); err != nil {
		return nil, err
	}

	s.Objectives.Invalidate(ctx, objective.ID)
	return kr, nil
}

// load 读取关键结果并校验权限
func (s *KeyResultService) load(actor Actor, id uint, write bool) (*model.KeyResult, error) {
	kr, err := s.KeyResultRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, util.ErrKeyResultNotFound)
	}

	allowed := actor.canRead(kr.OwnerID)
	if write {
		allowed = actor.canWrite(kr.OwnerID)
	}
	if !allowed {
		return nil, util.ErrPermissionDenied
	}
	return kr, nil
}

// GetKeyResult 返回带计算结果的关键结果
func (s *KeyResultService) GetKeyResult(ctx context.Context, actor Actor, id uint) (*KeyResultView, error) {
	kr, err := s.load(actor, id, false)
	if err != nil {
		return nil, err
	}

	objective, err := s.Objectives.ObjectiveRepo.FindByID(kr.ObjectiveID)
	if err != nil {
		return nil, notFound(err, util.ErrObjectiveNotFound)
	}

	// 周期缺失按已流逝处理，其它错误直接返回，和目标汇总保持一致
	cycle, err := s.Objectives.CycleRepo.FindByID(objective.CycleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cycle = nil
	} else if err != nil {
		return nil, err
	}

	view := s.Progress.View(ctx, *kr, cycle, s.Progress.Now())
	return &view, nil
}

// UpdateLifecycle 用户显式改变生命周期，必须符合迁移规则
func (s *KeyResultService) UpdateLifecycle(ctx context.Context, actor Actor, id uint, req UpdateLifecycleRequest) (*model.KeyResult, error) {
	if !req.Lifecycle.Valid() {
		return nil, util.ErrInvalidLifecycle
	}

	kr, err := s.load(actor, id, true)
	if err != nil {
		return nil, err
	}

	current := kr.Lifecycle
	if current == "" {
		current = model.LifecycleActive
	}
	if !current.CanTransitionTo(req.Lifecycle) {
		return nil, util.ErrInvalidLifecycleTransition
	}

	if err := s.KeyResultRepo.UpdateLifecycle(kr.ID, req.Lifecycle); err != nil {
		return nil, err
	}
	kr.Lifecycle = req.Lifecycle

	s.Objectives.Invalidate(ctx, kr.ObjectiveID)
	return kr, nil
}

func (s *KeyResultService) DeleteKeyResult(ctx context.Context, actor Actor, id uint) error {
	kr, err := s.load(actor, id, true)
	if err != nil {
		return err
	}

	if err := s.KeyResultRepo.Delete(kr.ID); err != nil {
		return err
	}

	s.Objectives.Invalidate(ctx, kr.ObjectiveID)
	return nil
}
