package service

import (
	"errors"

	"go-pos-loyalty/internal/model"
	"go-pos-loyalty/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrProductUnavailable = errors.New("product is not available")
	ErrVariationRequired  = errors.New("this product requires choosing a variation")
	ErrVariationMismatch  = errors.New("variation does not belong to this product")
)

type AddItemRequest struct {
	CartID      string     `json:"cart_id" validate:"required"`
	StoreID     uuid.UUID  `json:"store_id" validate:"uuid_required"`
	ProductID   uuid.UUID  `json:"product_id" validate:"uuid_required"`
	VariationID *uuid.UUID `json:"variation_id"`
	Quantity    int        `json:"quantity"`
}

type SetQuantityRequest struct {
	CartID      string     `json:"cart_id" validate:"required"`
	ProductID   uuid.UUID  `json:"product_id" validate:"uuid_required"`
	VariationID *uuid.UUID `json:"variation_id"`
	Quantity    int        `json:"quantity" validate:"min=0"`
}

type CartService interface {
	AddItem(req *AddItemRequest) (*Cart, error)
	SetQuantity(req *SetQuantityRequest) (*Cart, error)
	GetCart(cartID string) (*Cart, error)
}

type cartService struct {
	carts       *CartRegistry
	productRepo repository.ProductRepository
}

func NewCartService(carts *CartRegistry, productRepo repository.ProductRepository) CartService {
	return &cartService{carts: carts, productRepo: productRepo}
}

// AddItem resolves price and stock ceiling from the current catalog, then
// adds the line. Default quantity is one unit.
func (s *cartService) AddItem(req *AddItemRequest) (*Cart, error) {
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}

	product, err := s.productRepo.FindByID(req.ProductID)
	if err != nil {
		return nil, ErrProductUnavailable
	}
	if !product.Active || product.StoreID != req.StoreID {
		return nil, ErrProductUnavailable
	}

	line, err := resolveLine(product, req.VariationID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetOrCreate(req.CartID, req.StoreID)
	if err != nil {
		return nil, err
	}
	if err := cart.Add(line, qty); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) SetQuantity(req *SetQuantityRequest) (*Cart, error) {
	cart, ok := s.carts.Get(req.CartID)
	if !ok {
		return nil, ErrCartNotFound
	}
	if err := cart.SetQuantity(req.ProductID, req.VariationID, req.Quantity); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) GetCart(cartID string) (*Cart, error) {
	cart, ok := s.carts.Get(cartID)
	if !ok {
		return nil, ErrCartNotFound
	}
	return cart, nil
}

// resolveLine snapshots name, unit price and stock ceiling for one selection.
// With variations the parent's own stock and price are inert.
func resolveLine(product *model.Product, variationID *uuid.UUID) (CartLine, error) {
	if product.HasVariations {
		if variationID == nil {
			return CartLine{}, ErrVariationRequired
		}
		for i := range product.Variations {
			v := &product.Variations[i]
			if v.ID == *variationID {
				return CartLine{
					ProductID:    product.ID,
					VariationID:  variationID,
					Name:         product.Name + " - " + v.Name,
					UnitPrice:    v.UnitPrice(product),
					StockCeiling: v.Stock,
				}, nil
			}
		}
		return CartLine{}, ErrVariationMismatch
	}

	if variationID != nil {
		return CartLine{}, ErrVariationMismatch
	}
	return CartLine{
		ProductID:    product.ID,
		Name:         product.Name,
		UnitPrice:    product.Price,
		StockCeiling: product.Stock,
	}, nil
}
