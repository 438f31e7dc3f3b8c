package service

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrLineNotFound = errors.New("item is not in the cart")
	ErrStockCeiling = errors.New("requested quantity exceeds available stock")
	ErrInvalidQty   = errors.New("quantity cannot be negative")
	ErrCartStoreMix = errors.New("cart belongs to a different store")
)

// CartLine is one selected item. The stock ceiling is resolved at selection
// time by read-then-compare; it can go stale before commit, where the
// conditional decrement is the real guard.
type CartLine struct {
	ProductID    uuid.UUID       `json:"product_id"`
	VariationID  *uuid.UUID      `json:"variation_id,omitempty"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	StockCeiling int             `json:"stock_ceiling"`
}

func (l *CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// lineKey identifies a cart line: the same product under two variations makes
// two distinct lines.
type lineKey struct {
	productID   uuid.UUID
	variationID uuid.UUID // uuid.Nil when the product has no variation
}

func newLineKey(productID uuid.UUID, variationID *uuid.UUID) lineKey {
	key := lineKey{productID: productID}
	if variationID != nil {
		key.variationID = *variationID
	}
	return key
}

// Cart is the client-held, never-persisted collection of selected items.
// Destroyed on commit or clear.
type Cart struct {
	ID      string
	StoreID uuid.UUID

	mu    sync.Mutex
	lines map[lineKey]*CartLine
}

func newCart(id string, storeID uuid.UUID) *Cart {
	return &Cart{
		ID:      id,
		StoreID: storeID,
		lines:   make(map[lineKey]*CartLine),
	}
}

// Add puts qty more units of a resolved line into the cart, rejecting any
// request that would push the line past its stock ceiling.
func (c *Cart) Add(line CartLine, qty int) error {
	if qty <= 0 {
		return ErrInvalidQty
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	key := newLineKey(line.ProductID, line.VariationID)
	if existing, ok := c.lines[key]; ok {
		if existing.Quantity+qty > existing.StockCeiling {
			return ErrStockCeiling
		}
		existing.Quantity += qty
		return nil
	}

	if qty > line.StockCeiling {
		return ErrStockCeiling
	}
	line.Quantity = qty
	c.lines[key] = &line
	return nil
}

// SetQuantity re-validates against the line's ceiling; zero removes the line
// and setting the current quantity again is a no-op.
func (c *Cart) SetQuantity(productID uuid.UUID, variationID *uuid.UUID, qty int) error {
	if qty < 0 {
		return ErrInvalidQty
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	key := newLineKey(productID, variationID)
	line, ok := c.lines[key]
	if !ok {
		return ErrLineNotFound
	}
	if qty == 0 {
		delete(c.lines, key)
		return nil
	}
	if qty == line.Quantity {
		return nil
	}
	if qty > line.StockCeiling {
		return ErrStockCeiling
	}
	line.Quantity = qty
	return nil
}

// Lines returns a stable snapshot of the cart, ordered by display name.
func (c *Cart) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CartLine, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[lineKey]*CartLine)
}

// CartRegistry holds the in-flight carts of every terminal, kiosk and
// storefront session of this instance.
type CartRegistry struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewCartRegistry() *CartRegistry {
	return &CartRegistry{carts: make(map[string]*Cart)}
}

func (r *CartRegistry) GetOrCreate(id string, storeID uuid.UUID) (*Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart, ok := r.carts[id]; ok {
		if cart.StoreID != storeID {
			return nil, ErrCartStoreMix
		}
		return cart, nil
	}
	cart := newCart(id, storeID)
	r.carts[id] = cart
	return cart, nil
}

func (r *CartRegistry) Get(id string) (*Cart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[id]
	return cart, ok
}

func (r *CartRegistry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, id)
}
