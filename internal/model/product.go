package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	StoreID uuid.UUID       `gorm:"type:uuid;not null;index" json:"store_id" validate:"uuid_required"`
	Name    string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Price   decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"price"`

	// Stock is meaningful only when HasVariations is false; with variations
	// every sellable unit is a Variation and the parent stock/price are inert.
	Stock         int  `gorm:"default:0" json:"stock"`
	HasVariations bool `gorm:"default:false" json:"has_variations"`
	Active        bool `gorm:"default:true" json:"active"`

	// Loyalty earn configuration: points credited per unit once the order
	// reaches the delivered status.
	EarnsPoints bool `gorm:"default:false" json:"earns_points"`
	PointsRate  int  `gorm:"default:0" json:"points_rate"`

	Variations []Variation `json:"variations,omitempty"`
}

// Variation is a sellable sub-unit (size, flavor) carrying its own stock and
// a price delta added to the parent product price.
type Variation struct {
	BaseModel
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	PriceAdjustment decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"price_adjustment"`
	Stock           int             `gorm:"default:0" json:"stock"`
}

// UnitPrice resolves the selling price of one unit of the variation.
func (v *Variation) UnitPrice(parent *Product) decimal.Decimal {
	return parent.Price.Add(v.PriceAdjustment)
}

// DisplayPriceRange returns the min/max price shown for a product. Without
// variations both bounds are the product price.
func (p *Product) DisplayPriceRange() (min, max decimal.Decimal) {
	if !p.HasVariations || len(p.Variations) == 0 {
		return p.Price, p.Price
	}
	min = p.Price.Add(p.Variations[0].PriceAdjustment)
	max = min
	for _, v := range p.Variations[1:] {
		price := p.Price.Add(v.PriceAdjustment)
		if price.LessThan(min) {
			min = price
		}
		if price.GreaterThan(max) {
			max = price
		}
	}
	return min, max
}
