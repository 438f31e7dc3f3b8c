package model

import "github.com/google/uuid"

type LoyaltyTransactionType string

const (
	LoyaltyEarn   LoyaltyTransactionType = "earn"
	LoyaltyRedeem LoyaltyTransactionType = "redeem"
)

// LoyaltyTransaction is one append-only entry of the point ledger. Positive
// points earn, negative points redeem. Never updated or deleted in normal
// operation.
type LoyaltyTransaction struct {
	BaseModel
	CustomerID uuid.UUID              `gorm:"type:uuid;not null;index" json:"customer_id" validate:"uuid_required"`
	OrderID    *uuid.UUID             `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Points     int                    `gorm:"not null" json:"points"`
	Type       LoyaltyTransactionType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=earn redeem"`
}

func (LoyaltyTransaction) TableName() string {
	return "loyalty_transactions"
}
