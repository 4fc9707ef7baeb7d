package repository

import (
	"okr_backend/internal/model"

	"gorm.io/gorm"
)

// CycleRepository 处理周期的数据访问
type CycleRepository struct {
	DB *gorm.DB
}

func NewCycleRepository(db *gorm.DB) *CycleRepository {
	return &CycleRepository{DB: db}
}

func (r *CycleRepository) Create(cycle *model.Cycle) error {
	return r.DB.Create(cycle).Error
}

func (r *CycleRepository) FindByID(id uint) (*model.Cycle, error) {
	var cycle model.Cycle
	err := r.DB.First(&cycle, id).Error
	return &cycle, err
}

// FindAll 按开始时间倒序
func (r *CycleRepository) FindAll() ([]model.Cycle, error) {
	var cycles []model.Cycle
	err := r.DB.Order("start_at DESC").Find(&cycles).Error
	return cycles, err
}
