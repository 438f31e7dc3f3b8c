package repository

import (
	"time"

	"go-pos-loyalty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	// Create inserts the order and its items inside the caller's transaction.
	Create(tx *gorm.DB, order *model.Order) error

	FindByID(id uuid.UUID) (*model.Order, error)
	FindActiveByStore(storeID uuid.UUID, activeStatuses []string) ([]model.Order, error)
	FindByRegister(registerID uuid.UUID) ([]model.Order, error)
	FindByCustomer(customerID uuid.UUID) ([]model.Order, error)

	UpdateStatus(orderID uuid.UUID, status, updatedBy string) error
	BulkUpdateStatus(tx *gorm.DB, registerID uuid.UUID, status, updatedBy string) error

	// FindUnassignedReservations returns reservation orders still on the
	// given status with no register attached; used when a new till session
	// opens and adopts pending reservations.
	FindUnassignedReservations(storeID uuid.UUID, status string) ([]model.Order, error)
	AssignRegister(orderIDs []uuid.UUID, registerID uuid.UUID) error
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").Preload("Customer").First(&order, "id = ?", id).Error
	return &order, err
}

func (r *orderRepo) FindActiveByStore(storeID uuid.UUID, activeStatuses []string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").
		Where("store_id = ? AND status IN ?", storeID, activeStatuses).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByRegister(registerID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").
		Where("cash_register_id = ?", registerID).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByCustomer(customerID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateStatus(orderID uuid.UUID, status, updatedBy string) error {
	return r.db.Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

func (r *orderRepo) BulkUpdateStatus(tx *gorm.DB, registerID uuid.UUID, status, updatedBy string) error {
	return tx.Model(&model.Order{}).
		Where("cash_register_id = ? AND status != ?", registerID, model.StatusCancelled).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

func (r *orderRepo) FindUnassignedReservations(storeID uuid.UUID, status string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("store_id = ? AND status = ? AND cash_register_id IS NULL AND reservation_date IS NOT NULL",
		storeID, status).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) AssignRegister(orderIDs []uuid.UUID, registerID uuid.UUID) error {
	if len(orderIDs) == 0 {
		return nil
	}
	return r.db.Model(&model.Order{}).
		Where("id IN ?", orderIDs).
		Updates(map[string]interface{}{
			"cash_register_id": registerID,
			"updated_at":       time.Now(),
		}).Error
}
