package model

import (
	"okr_backend/internal/progress"
	"time"
)

// KeyResultLifecycle 生命周期状态，只能由用户显式操作改变，
// 与引擎计算出的节奏状态（progress.Status）相互独立
type KeyResultLifecycle string

const (
	LifecycleActive            KeyResultLifecycle = "active"
	LifecyclePaused            KeyResultLifecycle = "paused"
	LifecycleCanceled          KeyResultLifecycle = "canceled"
	LifecyclePartiallyAchieved KeyResultLifecycle = "partially_achieved"
	LifecycleAchieved          KeyResultLifecycle = "achieved"
)

// lifecycleTransitions 允许的状态迁移
var lifecycleTransitions = map[KeyResultLifecycle][]KeyResultLifecycle{
	LifecycleActive:            {LifecyclePaused, LifecycleCanceled, LifecyclePartiallyAchieved, LifecycleAchieved},
	LifecyclePaused:            {LifecycleActive, LifecycleCanceled},
	LifecyclePartiallyAchieved: {LifecycleActive},
	LifecycleAchieved:          {LifecycleActive},
	LifecycleCanceled:          {},
}

func (l KeyResultLifecycle) Valid() bool {
	_, ok := lifecycleTransitions[l]
	return ok
}

// CanTransitionTo 判断能否迁移到目标状态
func (l KeyResultLifecycle) CanTransitionTo(next KeyResultLifecycle) bool {
	for _, allowed := range lifecycleTransitions[l] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Closed 已结束的关键结果不再参与节奏预警
func (l KeyResultLifecycle) Closed() bool {
	return l == LifecycleCanceled || l == LifecyclePartiallyAchieved || l == LifecycleAchieved
}

type KeyResult struct {
	BaseModel
	ObjectiveID   uint                   `gorm:"index;type:bigint unsigned;not null" json:"objectiveId"`
	OwnerID       uint                   `gorm:"index;type:bigint unsigned;not null" json:"ownerId"`
	Title         string                 `gorm:"size:255;not null" json:"title"`
	Type          progress.KeyResultType `gorm:"size:32;not null" json:"type"`
	Current       float64                `gorm:"default:0" json:"current"`
	Target        float64                `gorm:"not null" json:"target"`
	Base          float64                `gorm:"default:0" json:"base"`
	Unit          string                 `gorm:"size:32" json:"unit"`
	Lifecycle     KeyResultLifecycle     `gorm:"size:32;default:'active'" json:"lifecycle"`
	LastCheckInAt *time.Time             `json:"lastCheckInAt,omitempty"`
}

func (KeyResult) TableName() string {
	return "key_results"
}

// Measurement 转换为引擎使用的数值三元组
func (k *KeyResult) Measurement() progress.Measurement {
	return progress.Measurement{
		Current: k.Current,
		Target:  k.Target,
		Base:    k.Base,
		Unit:    k.Unit,
	}
}

func (k *KeyResult) HasCheckIn() bool {
	return k.LastCheckInAt != nil
}
