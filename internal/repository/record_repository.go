package repository

import (
	"canvas_calendar_backend/internal/model"

	"gorm.io/gorm"
)

type RecordRepository struct {
	DB *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{DB: db}
}

// ReplaceAll 在一个事务里整表替换快照行
func (r *RecordRepository) ReplaceAll(rows []model.RecordRow) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&model.RecordRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// Latest 按写入位置返回当前快照行
func (r *RecordRepository) Latest() ([]model.RecordRow, error) {
	var rows []model.RecordRow
	err := r.DB.Order("position asc").Find(&rows).Error
	return rows, err
}
