package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashRegisterSession is a till-opening period during which orders accumulate
// for later reconciliation. At most one open session (closed_at null) may
// exist per store; the partial unique index enforces it against concurrent
// opens.
type CashRegisterSession struct {
	BaseModel
	StoreID       uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:uniq_open_register,where:closed_at IS NULL" json:"store_id" validate:"uuid_required"`
	OpenedBy      string           `gorm:"type:varchar(255);not null" json:"opened_by"`
	InitialAmount decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"initial_amount"`
	OpenedAt      time.Time        `gorm:"not null" json:"opened_at"`
	ClosedAt      *time.Time       `json:"closed_at,omitempty"`
	FinalAmount   *decimal.Decimal `gorm:"type:numeric(12,2)" json:"final_amount,omitempty"`
}

func (CashRegisterSession) TableName() string {
	return "cash_register_sessions"
}

func (s *CashRegisterSession) IsOpen() bool {
	return s.ClosedAt == nil
}
