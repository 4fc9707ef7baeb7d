package service

import (
	"context"
	"okr_backend/internal/model"
	"okr_backend/internal/util"
	"time"
)

const defaultCheckInLimit = 50

type CheckInService struct {
	CheckInRepo CheckInStore
	KeyResults  *KeyResultService
}

func NewCheckInService(checkInRepo CheckInStore, keyResults *KeyResultService) *CheckInService {
	return &CheckInService{CheckInRepo: checkInRepo, KeyResults: keyResults}
}

type CreateCheckInRequest struct {
	Value       float64    `json:"value"`
	Note        string     `json:"note" binding:"max=2000"`
	CheckedInAt *time.Time `json:"checkedInAt"`
}

// RecordCheckIn 记录一次签到并同步当前值。已结束的关键结果不接受签到。
func (s *CheckInService) RecordCheckIn(ctx context.Context, actor Actor, keyResultID uint, req CreateCheckInRequest) (*model.CheckIn, error) {
	kr, err := s.KeyResults.load(actor, keyResultID, true)
	if err != nil {
		return nil, err
	}
	if kr.Lifecycle.Closed() {
		return nil, util.ErrKeyResultClosed
	}

	checkedInAt := s.KeyResults.Progress.Now()
	if req.CheckedInAt != nil && !req.CheckedInAt.IsZero() {
		checkedInAt = *req.CheckedInAt
	}

	checkIn := &model.CheckIn{
		KeyResultID: kr.ID,
		UserID:      actor.UserID,
		Value:       req.Value,
		Note:        req.Note,
		CheckedInAt: checkedInAt,
	}
	if err := s.CheckInRepo.CreateAndApply(checkIn); err != nil {
		return nil, err
	}

	s.KeyResults.Objectives.Invalidate(ctx, kr.ObjectiveID)
	return checkIn, nil
}

func (s *CheckInService) ListCheckIns(actor Actor, keyResultID uint, limit int) ([]model.CheckIn, error) {
	if _, err := s.KeyResults.load(actor, keyResultID, false); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultCheckInLimit {
		limit = defaultCheckInLimit
	}
	return s.CheckInRepo.FindByKeyResultID(keyResultID, limit)
}
