package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is the tenant every catalog, order and register session belongs to.
type Store struct {
	BaseModel
	Name            string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone           string          `gorm:"type:varchar(20)" json:"phone"`
	AcceptingOrders bool            `gorm:"default:true" json:"accepting_orders"`
	DeliveryFee     decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"delivery_fee"`

	// Loyalty configuration. RedeemCost is the fixed point cost of paying an
	// order with points; 9 matches the historical behavior of the shops
	// running this system.
	RedeemCost int `gorm:"default:9" json:"redeem_cost"`

	Hours       []StoreHour  `json:"hours,omitempty"`
	SpecialDays []SpecialDay `json:"special_days,omitempty"`
}

// StoreHour is one weekday entry of the regular weekly schedule.
// Times use HH:MM strings, stored with minute precision.
type StoreHour struct {
	BaseModel
	StoreID   uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id" validate:"uuid_required"`
	Weekday   int       `gorm:"not null" json:"weekday" validate:"min=0,max=6"` // 0 = Sunday
	IsOpen    bool      `gorm:"default:false" json:"is_open"`
	OpenTime  string    `gorm:"type:varchar(5)" json:"open_time"`
	CloseTime string    `gorm:"type:varchar(5)" json:"close_time"`
}

func (StoreHour) TableName() string {
	return "store_hours"
}

// SpecialDay overrides the weekly schedule for one calendar date.
// An override always wins over the weekday entry, including when it closes
// a day the regular schedule would have open.
type SpecialDay struct {
	BaseModel
	StoreID   uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id" validate:"uuid_required"`
	Date      time.Time `gorm:"type:date;not null;index" json:"date" validate:"required"`
	IsOpen    bool      `gorm:"default:false" json:"is_open"`
	OpenTime  string    `gorm:"type:varchar(5)" json:"open_time"`
	CloseTime string    `gorm:"type:varchar(5)" json:"close_time"`
	Note      string    `gorm:"type:text" json:"note,omitempty"`
}

func (SpecialDay) TableName() string {
	return "special_days"
}
