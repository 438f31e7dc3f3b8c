package repository

import (
	"go-pos-loyalty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VariationRepository interface {
	Create(variation *model.Variation) error
	FindByID(id uuid.UUID) (*model.Variation, error)
	FindByProduct(productID uuid.UUID) ([]model.Variation, error)

	// DecrementStock mirrors ProductRepository.DecrementStock for variation
	// stock; it runs inside the caller's transaction.
	DecrementStock(tx *gorm.DB, id uuid.UUID, qty int) (int64, error)
}

type variationRepo struct {
	db *gorm.DB
}

func NewVariationRepo(db *gorm.DB) VariationRepository {
	return &variationRepo{db}
}

func (r *variationRepo) Create(variation *model.Variation) error {
	return r.db.Create(variation).Error
}

func (r *variationRepo) FindByID(id uuid.UUID) (*model.Variation, error) {
	var variation model.Variation
	err := r.db.First(&variation, "id = ?", id).Error
	return &variation, err
}

func (r *variationRepo) FindByProduct(productID uuid.UUID) ([]model.Variation, error) {
	var variations []model.Variation
	err := r.db.Where("product_id = ?", productID).Order("name ASC").Find(&variations).Error
	return variations, err
}

func (r *variationRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	res := tx.Model(&model.Variation{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	return res.RowsAffected, res.Error
}
