package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderSource string

const (
	SourceKiosk       OrderSource = "kiosk"
	SourceMessaging   OrderSource = "messaging"
	SourceInPerson    OrderSource = "in_person"
	SourceMarketplace OrderSource = "marketplace"
)

type PaymentMethod string

const (
	PayDinheiro   PaymentMethod = "dinheiro"
	PayPix        PaymentMethod = "pix"
	PayCredito    PaymentMethod = "credito"
	PayDebito     PaymentMethod = "debito"
	PayFidelidade PaymentMethod = "fidelidade" // paid with loyalty points
)

// AllPaymentMethods lists every accepted method, in the order the register
// reconciliation summary reports them.
var AllPaymentMethods = []PaymentMethod{PayDinheiro, PayPix, PayCredito, PayDebito, PayFidelidade}

func (m PaymentMethod) Valid() bool {
	for _, known := range AllPaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

type Order struct {
	BaseModel
	StoreID uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id" validate:"uuid_required"`

	// OrderNumber is time-derived and human readable. It is not a strict
	// serial: two commits in the same second share a number.
	OrderNumber string `gorm:"type:varchar(20);not null;index" json:"order_number"`

	CustomerID    *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer      *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Source        OrderSource     `gorm:"type:varchar(20);not null" json:"source"`
	Status        string          `gorm:"type:varchar(30);not null;index" json:"status"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null" json:"payment_method"`

	IsDelivery   bool   `gorm:"default:false" json:"is_delivery"`
	Street       string `gorm:"type:varchar(255)" json:"street,omitempty"`
	Neighborhood string `gorm:"type:varchar(255)" json:"neighborhood,omitempty"`

	// Reservation scheduling; nil/empty for immediate orders.
	ReservationDate *time.Time `gorm:"type:date" json:"reservation_date,omitempty"`
	PickupTime      string     `gorm:"type:varchar(5)" json:"pickup_time,omitempty"`

	CashRegisterID *uuid.UUID `gorm:"type:uuid;index" json:"cash_register_id,omitempty"`

	Items []OrderItem `json:"items,omitempty"`
}

func (o *Order) IsReservation() bool {
	return o.ReservationDate != nil
}

// OrderItem captures a name/price snapshot at sale time so historical orders
// are immune to later catalog edits. Immutable after creation.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	VariationID *uuid.UUID      `gorm:"type:uuid" json:"variation_id,omitempty"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
