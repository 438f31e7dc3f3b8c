package service

import (
	"go-pos-loyalty/internal/model"
	"go-pos-loyalty/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogProduct is one catalog entry with its displayed price range
// resolved; for products with variations the parent price is inert and the
// range spans the variations.
type CatalogProduct struct {
	model.Product
	MinPrice decimal.Decimal `json:"min_price"`
	MaxPrice decimal.Decimal `json:"max_price"`
}

type CatalogService interface {
	Snapshot(storeID uuid.UUID) ([]CatalogProduct, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func (s *catalogService) Snapshot(storeID uuid.UUID) ([]CatalogProduct, error) {
	products, err := s.productRepo.FindActiveByStore(storeID)
	if err != nil {
		return nil, err
	}

	snapshot := make([]CatalogProduct, len(products))
	for i := range products {
		min, max := products[i].DisplayPriceRange()
		snapshot[i] = CatalogProduct{Product: products[i], MinPrice: min, MaxPrice: max}
	}
	return snapshot, nil
}
