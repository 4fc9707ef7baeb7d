package service

import (
	"okr_backend/internal/model"
	"okr_backend/internal/util"
	"time"
)

type CycleService struct {
	CycleRepo CycleStore
}

func NewCycleService(cycleRepo CycleStore) *CycleService {
	return &CycleService{CycleRepo: cycleRepo}
}

type CreateCycleRequest struct {
	Name    string    `json:"name" binding:"required,max=100"`
	StartAt time.Time `json:"startAt" binding:"required"`
	EndAt   time.Time `json:"endAt" binding:"required"`
}

// CreateCycle 新建周期时拒绝结束早于开始的数据；计算时仍然容忍历史脏数据
func (s *CycleService) CreateCycle(req CreateCycleRequest) (*model.Cycle, error) {
	if req.EndAt.Before(req.StartAt) {
		return nil, util.ErrInvalidCycle
	}

	cycle := &model.Cycle{
		Name:    req.Name,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
	}
	return cycle, s.CycleRepo.Create(cycle)
}

func (s *CycleService) GetCycle(id uint) (*model.Cycle, error) {
	cycle, err := s.CycleRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, util.ErrCycleNotFound)
	}
	return cycle, nil
}

func (s *CycleService) ListCycles() ([]model.Cycle, error) {
	return s.CycleRepo.FindAll()
}
