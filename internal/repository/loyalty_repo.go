package repository

import (
	"go-pos-loyalty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoyaltyRepository interface {
	// Append writes one ledger entry inside the caller's transaction.
	// The ledger is append-only: no update or delete is exposed.
	Append(tx *gorm.DB, entry *model.LoyaltyTransaction) error

	FindByCustomer(customerID uuid.UUID) ([]model.LoyaltyTransaction, error)
}

type loyaltyRepo struct {
	db *gorm.DB
}

func NewLoyaltyRepo(db *gorm.DB) LoyaltyRepository {
	return &loyaltyRepo{db}
}

func (r *loyaltyRepo) Append(tx *gorm.DB, entry *model.LoyaltyTransaction) error {
	return tx.Create(entry).Error
}

func (r *loyaltyRepo) FindByCustomer(customerID uuid.UUID) ([]model.LoyaltyTransaction, error) {
	var entries []model.LoyaltyTransaction
	err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
