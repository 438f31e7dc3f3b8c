package repository

import (
	"go-pos-loyalty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindByID(id uuid.UUID) (*model.Customer, error)
	FindByStore(storeID uuid.UUID) ([]model.Customer, error)

	// DebitPoints is the conditional decrement
	// (points = points - cost WHERE points >= cost). Zero rows affected
	// means the balance no longer covers the cost.
	DebitPoints(tx *gorm.DB, id uuid.UUID, cost int) (int64, error)
	CreditPoints(tx *gorm.DB, id uuid.UUID, points int) error

	SaveAddress(address *model.CustomerAddress) error
	FindAddresses(customerID uuid.UUID) ([]model.CustomerAddress, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "id = ?", id).Error
	return &customer, err
}

func (r *customerRepo) FindByStore(storeID uuid.UUID) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Where("store_id = ?", storeID).Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) DebitPoints(tx *gorm.DB, id uuid.UUID, cost int) (int64, error) {
	res := tx.Model(&model.Customer{}).
		Where("id = ? AND points >= ?", id, cost).
		Update("points", gorm.Expr("points - ?", cost))
	return res.RowsAffected, res.Error
}

func (r *customerRepo) CreditPoints(tx *gorm.DB, id uuid.UUID, points int) error {
	return tx.Model(&model.Customer{}).
		Where("id = ?", id).
		Update("points", gorm.Expr("points + ?", points)).Error
}

func (r *customerRepo) SaveAddress(address *model.CustomerAddress) error {
	return r.db.Create(address).Error
}

func (r *customerRepo) FindAddresses(customerID uuid.UUID) ([]model.CustomerAddress, error) {
	var addresses []model.CustomerAddress
	err := r.db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&addresses).Error
	return addresses, err
}
