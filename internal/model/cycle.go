package model

import (
	"okr_backend/internal/progress"
	"time"
)

// Cycle 周期，由日历提供方维护，计算引擎只读取起止时间
type Cycle struct {
	BaseModel
	Name    string    `gorm:"size:100;not null" json:"name"`
	StartAt time.Time `gorm:"type:datetime;not null;index" json:"startAt"`
	EndAt   time.Time `gorm:"type:datetime;not null" json:"endAt"`
}

func (Cycle) TableName() string {
	return "cycles"
}

// Window 转换为引擎使用的时间窗口
func (c *Cycle) Window() progress.Cycle {
	return progress.Cycle{Start: c.StartAt, End: c.EndAt}
}
