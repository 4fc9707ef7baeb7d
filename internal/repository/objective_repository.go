package repository

import (
	"okr_backend/internal/model"

	"gorm.io/gorm"
)

type ObjectiveRepository struct {
	DB *gorm.DB
}

func NewObjectiveRepository(db *gorm.DB) *ObjectiveRepository {
	return &ObjectiveRepository{DB: db}
}

func (r *ObjectiveRepository) Create(objective *model.Objective) error {
	return r.DB.Create(objective).Error
}

func (r *ObjectiveRepository) FindByID(id uint) (*model.Objective, error) {
	var objective model.Objective
	err := r.DB.First(&objective, id).Error
	return &objective, err
}

// FindByOwnerID 获取用户的目标，cycleID 为 0 时不按周期过滤
func (r *ObjectiveRepository) FindByOwnerID(ownerID, cycleID uint) ([]model.Objective, error) {
	var objectives []model.Objective
	query := r.DB.Where("owner_id = ?", ownerID)
	if cycleID > 0 {
		query = query.Where("cycle_id = ?", cycleID)
	}
	err := query.Order("id").Find(&objectives).Error
	return objectives, err
}

func (r *ObjectiveRepository) FindByCycleID(cycleID uint) ([]model.Objective, error) {
	var objectives []model.Objective
	err := r.DB.Where("cycle_id = ?", cycleID).Order("id").Find(&objectives).Error
	return objectives, err
}
