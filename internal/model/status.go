package model

import "github.com/google/uuid"

// Terminal states every store shares. They are implicit: never part of the
// configured active list.
const (
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// StatusConfig is one entry of a store's ordered list of active statuses the
// fulfillment board moves orders through.
type StatusConfig struct {
	BaseModel
	StoreID      uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id" validate:"uuid_required"`
	Key          string    `gorm:"type:varchar(30);not null" json:"key" validate:"required"`
	Label        string    `gorm:"type:varchar(100);not null" json:"label" validate:"required"`
	DisplayOrder int       `gorm:"not null" json:"display_order"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
}

func (StatusConfig) TableName() string {
	return "status_configs"
}

// DefaultActiveStatuses is the fallback workflow used when a store has no
// status configuration of its own.
func DefaultActiveStatuses(storeID uuid.UUID) []StatusConfig {
	return []StatusConfig{
		{StoreID: storeID, Key: "pending", Label: "Pending", DisplayOrder: 1, IsActive: true},
		{StoreID: storeID, Key: "preparing", Label: "Preparing", DisplayOrder: 2, IsActive: true},
		{StoreID: storeID, Key: "ready", Label: "Ready", DisplayOrder: 3, IsActive: true},
	}
}

func IsTerminalStatus(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}
