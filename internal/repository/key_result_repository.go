package repository

import (
	"okr_backend/internal/model"

	"gorm.io/gorm"
)

type KeyResultRepository struct {
	DB *gorm.DB
}

func NewKeyResultRepository(db *gorm.DB) *KeyResultRepository {
	return &KeyResultRepository{DB: db}
}

func (r *KeyResultRepository) Create(kr *model.KeyResult) error {
	return r.DB.Create(kr).Error
}

func (r *KeyResultRepository) FindByID(id uint) (*model.KeyResult, error) {
	var kr model.KeyResult
	err := r.DB.First(&kr, id).Error
	return &kr, err
}

func (r *KeyResultRepository) FindByObjectiveID(objectiveID uint) ([]model.KeyResult, error) {
	var krs []model.KeyResult
	err := r.DB.Where("objective_id = ?", objectiveID).Order("id").Find(&krs).Error
	return krs, err
}

// UpdateLifecycle 只更新生命周期字段
func (r *KeyResultRepository) UpdateLifecycle(id uint, lifecycle model.KeyResultLifecycle) error {
	return r.DB.Model(&model.KeyResult{}).
		Where("id = ?", id).
		Update("lifecycle", lifecycle).Error
}

func (r *KeyResultRepository) Delete(id uint) error {
	return r.DB.Delete(&model.KeyResult{}, id).Error
}
