package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckIn 记录一次关键结果的数值更新
type CheckIn struct {
	BaseModel
	KeyResultID uint      `gorm:"index:idx_kr_checked_at;type:bigint unsigned;not null" json:"keyResultId"`
	UserID      uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Ref         string    `gorm:"size:36;uniqueIndex" json:"ref"`
	Value       float64   `gorm:"not null" json:"value"`
	Note        string    `gorm:"type:text" json:"note"`
	CheckedInAt time.Time `gorm:"index:idx_kr_checked_at;not null" json:"checkedInAt"`
}

func (CheckIn) TableName() string {
	return "check_ins"
}

func (c *CheckIn) BeforeCreate(tx *gorm.DB) (err error) {
	if c.Ref == "" {
		c.Ref = uuid.New().String()
	}
	return
}
