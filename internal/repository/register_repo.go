package repository

import (
	"time"

	"go-pos-loyalty/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RegisterRepository interface {
	Create(session *model.CashRegisterSession) error
	FindByID(id uuid.UUID) (*model.CashRegisterSession, error)
	FindOpenByStore(storeID uuid.UUID) (*model.CashRegisterSession, error)

	// Close stamps closed_at and final_amount inside the caller's
	// transaction so the session close and the bulk order finalization
	// commit together.
	Close(tx *gorm.DB, id uuid.UUID, closedAt time.Time, finalAmount decimal.Decimal) error
}

type registerRepo struct {
	db *gorm.DB
}

func NewRegisterRepo(db *gorm.DB) RegisterRepository {
	return &registerRepo{db}
}

func (r *registerRepo) Create(session *model.CashRegisterSession) error {
	return r.db.Create(session).Error
}

func (r *registerRepo) FindByID(id uuid.UUID) (*model.CashRegisterSession, error) {
	var session model.CashRegisterSession
	err := r.db.First(&session, "id = ?", id).Error
	return &session, err
}

func (r *registerRepo) FindOpenByStore(storeID uuid.UUID) (*model.CashRegisterSession, error) {
	var session model.CashRegisterSession
	err := r.db.Where("store_id = ? AND closed_at IS NULL", storeID).First(&session).Error
	return &session, err
}

func (r *registerRepo) Close(tx *gorm.DB, id uuid.UUID, closedAt time.Time, finalAmount decimal.Decimal) error {
	return tx.Model(&model.CashRegisterSession{}).
		Where("id = ? AND closed_at IS NULL", id).
		Updates(map[string]interface{}{
			"closed_at":    closedAt,
			"final_amount": finalAmount,
		}).Error
}
