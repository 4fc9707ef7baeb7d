package repository

import (
	"okr_backend/internal/model"

	"gorm.io/gorm"
)

type CheckInRepository struct {
	DB *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) *CheckInRepository {
	return &CheckInRepository{DB: db}
}

// CreateAndApply 在同一事务中写入签到并同步关键结果的当前值。
// 补录的旧签到只保存历史，不覆盖更新的当前值。
func (r *CheckInRepository) CreateAndApply(checkIn *model.CheckIn) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(checkIn).Error; err != nil {
			return err
		}

		return tx.Model(&model.KeyResult{}).
			Where("id = ? AND (last_check_in_at IS NULL OR last_check_in_at <= ?)", checkIn.KeyResultID, checkIn.CheckedInAt).
			Updates(map[string]interface{}{
				"current":          checkIn.Value,
				"last_check_in_at": checkIn.CheckedInAt,
			}).Error
	})
}

// FindByKeyResultID 最近的签到在前
func (r *CheckInRepository) FindByKeyResultID(keyResultID uint, limit int) ([]model.CheckIn, error) {
	var checkIns []model.CheckIn
	query := r.DB.Where("key_result_id = ?", keyResultID).Order("checked_in_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&checkIns).Error
	return checkIns, err
}
