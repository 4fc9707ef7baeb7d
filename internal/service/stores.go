package service

import (
	"errors"
	"okr_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// Clock 当前时间来源，只在组装时注入 time.Now
type Clock func() time.Time

type CycleStore interface {
	Create(cycle *model.Cycle) error
	FindByID(id uint) (*model.Cycle, error)
	FindAll() ([]model.Cycle, error)
}

type ObjectiveStore interface {
	Create(objective *model.Objective) error
	FindByID(id uint) (*model.Objective, error)
	FindByOwnerID(ownerID, cycleID uint) ([]model.Objective, error)
}

type KeyResultStore interface {
	Create(kr *model.KeyResult) error
	FindByID(id uint) (*model.KeyResult, error)
	FindByObjectiveID(objectiveID uint) ([]model.KeyResult, error)
	UpdateLifecycle(id uint, lifecycle model.KeyResultLifecycle) error
	Delete(id uint) error
}

type CheckInStore interface {
	CreateAndApply(checkIn *model.CheckIn) error
	FindByKeyResultID(keyResultID uint, limit int) ([]model.CheckIn, error)
}

// notFound 把 gorm 的记录不存在错误转换为业务错误
func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
