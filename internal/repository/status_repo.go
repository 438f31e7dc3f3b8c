package repository

import (
	"go-pos-loyalty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatusRepository interface {
	FindActiveByStore(storeID uuid.UUID) ([]model.StatusConfig, error)
	SeedDefaults(storeID uuid.UUID) error
}

type statusRepo struct {
	db *gorm.DB
}

func NewStatusRepo(db *gorm.DB) StatusRepository {
	return &statusRepo{db}
}

func (r *statusRepo) FindActiveByStore(storeID uuid.UUID) ([]model.StatusConfig, error) {
	var statuses []model.StatusConfig
	err := r.db.Where("store_id = ? AND is_active = ?", storeID, true).
		Order("display_order ASC").
		Find(&statuses).Error
	return statuses, err
}

func (r *statusRepo) SeedDefaults(storeID uuid.UUID) error {
	var count int64
	if err := r.db.Model(&model.StatusConfig{}).Where("store_id = ?", storeID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	defaults := model.DefaultActiveStatuses(storeID)
	return r.db.Create(&defaults).Error
}
