package repository

import (
	"go-pos-loyalty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	Update(product *model.Product) error
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByIDs(ids []uuid.UUID) ([]model.Product, error)
	FindActiveByStore(storeID uuid.UUID) ([]model.Product, error)

	// DecrementStock performs the conditional decrement
	// (stock = stock - qty WHERE stock >= qty) inside the caller's
	// transaction. Returns the number of rows affected; zero means the
	// ceiling went stale and the caller must abort.
	DecrementStock(tx *gorm.DB, id uuid.UUID, qty int) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Variations").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByIDs(ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepo) FindActiveByStore(storeID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Variations").
		Where("store_id = ? AND active = ?", storeID, true).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	return res.RowsAffected, res.Error
}
