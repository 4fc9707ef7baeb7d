package model

// Objective 目标，下挂多个关键结果
type Objective struct {
	BaseModel
	OwnerID     uint        `gorm:"index;type:bigint unsigned;not null" json:"ownerId"`
	CycleID     uint        `gorm:"index;type:bigint unsigned;not null" json:"cycleId"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	KeyResults  []KeyResult `gorm:"foreignKey:ObjectiveID" json:"keyResults,omitempty"`
}

func (Objective) TableName() string {
	return "objectives"
}
