package repository

import (
	"errors"
	"time"

	"go-pos-loyalty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(store *model.Store) error
	FindByID(id uuid.UUID) (*model.Store, error)

	// FindHour returns the weekly schedule entry for a weekday, nil when the
	// weekday has no entry.
	FindHour(storeID uuid.UUID, weekday time.Weekday) (*model.StoreHour, error)

	// FindSpecialDay returns the date override for one calendar date, nil
	// when no override exists.
	FindSpecialDay(storeID uuid.UUID, date time.Time) (*model.SpecialDay, error)
}

type storeRepo struct {
	db *gorm.DB
}

func NewStoreRepo(db *gorm.DB) StoreRepository {
	return &storeRepo{db}
}

func (r *storeRepo) Create(store *model.Store) error {
	return r.db.Create(store).Error
}

func (r *storeRepo) FindByID(id uuid.UUID) (*model.Store, error) {
	var store model.Store
	err := r.db.First(&store, "id = ?", id).Error
	return &store, err
}

func (r *storeRepo) FindHour(storeID uuid.UUID, weekday time.Weekday) (*model.StoreHour, error) {
	var hour model.StoreHour
	err := r.db.Where("store_id = ? AND weekday = ?", storeID, int(weekday)).First(&hour).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hour, nil
}

func (r *storeRepo) FindSpecialDay(storeID uuid.UUID, date time.Time) (*model.SpecialDay, error) {
	var day model.SpecialDay
	err := r.db.Where("store_id = ? AND date = ?", storeID, date.Format("2006-01-02")).First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}
