package model

import "github.com/google/uuid"

type Customer struct {
	BaseModel
	StoreID uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id" validate:"uuid_required"`
	Name    string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone   string    `gorm:"type:varchar(20)" json:"phone"`
	Email   string    `gorm:"type:varchar(255)" json:"email"`

	// Points is mutated only through the loyalty ledger (earn/redeem) and
	// never goes negative.
	Points int `gorm:"default:0" json:"points"`

	Addresses []CustomerAddress `json:"addresses,omitempty"`
}

// CustomerAddress is a reusable delivery address saved after checkout.
type CustomerAddress struct {
	BaseModel
	CustomerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Street       string    `gorm:"type:varchar(255);not null" json:"street"`
	Neighborhood string    `gorm:"type:varchar(255);not null" json:"neighborhood"`
	Reference    string    `gorm:"type:varchar(255)" json:"reference,omitempty"`
}

func (CustomerAddress) TableName() string {
	return "customer_addresses"
}
