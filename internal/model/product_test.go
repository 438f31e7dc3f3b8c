package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDisplayPriceRange(t *testing.T) {
	plain := Product{Name: "Refrigerante", Price: decimal.NewFromFloat(6.50)}
	min, max := plain.DisplayPriceRange()
	assert.True(t, min.Equal(decimal.NewFromFloat(6.50)))
	assert.True(t, max.Equal(decimal.NewFromFloat(6.50)))

	pizza := Product{
		Name:          "Pizza",
		Price:         decimal.NewFromFloat(10.00),
		HasVariations: true,
		Variations: []Variation{
			{Name: "Grande", PriceAdjustment: decimal.NewFromFloat(30.00)},
			{Name: "Broto", PriceAdjustment: decimal.NewFromFloat(15.00)},
			{Name: "Família", PriceAdjustment: decimal.NewFromFloat(45.00)},
		},
	}
	min, max = pizza.DisplayPriceRange()
	assert.True(t, min.Equal(decimal.NewFromFloat(25.00)))
	assert.True(t, max.Equal(decimal.NewFromFloat(55.00)))
}

func TestVariationUnitPrice(t *testing.T) {
	parent := Product{Price: decimal.NewFromFloat(10.00)}
	v := Variation{PriceAdjustment: decimal.NewFromFloat(15.00)}
	assert.True(t, v.UnitPrice(&parent).Equal(decimal.NewFromFloat(25.00)))
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range AllPaymentMethods {
		assert.True(t, m.Valid(), string(m))
	}
	assert.False(t, PaymentMethod("cheque").Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, IsTerminalStatus(StatusDelivered))
	assert.True(t, IsTerminalStatus(StatusCancelled))
	assert.False(t, IsTerminalStatus("pending"))
	assert.False(t, IsTerminalStatus("ready"))
}
