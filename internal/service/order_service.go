package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"go-pos-loyalty/internal/messaging"
	"go-pos-loyalty/internal/model"
	"go-pos-loyalty/internal/notifier"
	"go-pos-loyalty/internal/repository"
	"go-pos-loyalty/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrStoreNotAccepting     = errors.New("store is not accepting orders right now")
	ErrInvalidPaymentMethod  = errors.New("payment method is missing or unknown")
	ErrCustomerRequired      = errors.New("paying with points requires an identified customer")
	ErrReservationIncomplete = errors.New("reservation needs both a pickup date and a pickup time")
	ErrStoreClosed           = errors.New("store is closed at the requested date and time")
	ErrMissingAddress        = errors.New("delivery orders need street and neighborhood")
	ErrRegisterClosed        = errors.New("no cash register session is open for this store")
	ErrStaleStock            = errors.New("stock changed while checking out, refresh the cart and retry")
)

type CheckoutRequest struct {
	CartID        string              `json:"cart_id" validate:"required"`
	StoreID       uuid.UUID           `json:"store_id" validate:"uuid_required"`
	CustomerID    *uuid.UUID          `json:"customer_id"`
	Source        model.OrderSource   `json:"source" validate:"required,oneof=kiosk messaging in_person marketplace"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`

	IsDelivery   bool   `json:"is_delivery"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	SaveAddress  bool   `json:"save_address"`

	// Reservation scheduling; empty for immediate orders.
	ReservationDate string `json:"reservation_date"` // YYYY-MM-DD
	PickupTime      string `json:"pickup_time"`      // HH:MM
}

type OrderService interface {
	// Checkout validates every precondition before any write, then commits
	// order, items, stock decrements and loyalty debit atomically.
	Checkout(req *CheckoutRequest, actorID string) (*model.Order, error)

	GetOrder(id uuid.UUID) (*model.Order, error)

	// Handoff composes the delivery-partner payload for one order; message
	// delivery is owned outside the core.
	Handoff(id uuid.UUID) (*messaging.Handoff, error)
}

type orderService struct {
	db            TxRunner
	carts         *CartRegistry
	storeRepo     repository.StoreRepository
	productRepo   repository.ProductRepository
	variationRepo repository.VariationRepository
	orderRepo     repository.OrderRepository
	registerRepo  repository.RegisterRepository
	customerRepo  repository.CustomerRepository
	loyaltyRepo   repository.LoyaltyRepository
	statuses      StatusService
	availability  *Availability
	notifier      notifier.OrderNotifier
	handoffs      messaging.Publisher
}

func NewOrderService(db TxRunner, carts *CartRegistry, storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository, variationRepo repository.VariationRepository,
	orderRepo repository.OrderRepository, registerRepo repository.RegisterRepository,
	customerRepo repository.CustomerRepository, loyaltyRepo repository.LoyaltyRepository,
	statuses StatusService, availability *Availability,
	orderNotifier notifier.OrderNotifier, handoffs messaging.Publisher) OrderService {
	return &orderService{
		db:            db,
		carts:         carts,
		storeRepo:     storeRepo,
		productRepo:   productRepo,
		variationRepo: variationRepo,
		orderRepo:     orderRepo,
		registerRepo:  registerRepo,
		customerRepo:  customerRepo,
		loyaltyRepo:   loyaltyRepo,
		statuses:      statuses,
		availability:  availability,
		notifier:      orderNotifier,
		handoffs:      handoffs,
	}
}

func (s *orderService) Checkout(req *CheckoutRequest, actorID string) (*model.Order, error) {
	if err := validator.FirstError(validator.ValidateStruct(req)); err != nil {
		return nil, err
	}

	// 1. Cart non-empty
	cart, ok := s.carts.Get(req.CartID)
	if !ok {
		return nil, ErrCartNotFound
	}
	lines := cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// 2. Store accepting orders
	store, err := s.storeRepo.FindByID(req.StoreID)
	if err != nil {
		return nil, err
	}
	if !store.AcceptingOrders {
		return nil, ErrStoreNotAccepting
	}

	// 3. Payment method; points balance for the loyalty method
	if !req.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if req.PaymentMethod == model.PayFidelidade {
		if req.CustomerID == nil {
			return nil, ErrCustomerRequired
		}
		customer, err := s.customerRepo.FindByID(*req.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerRequired
			}
			return nil, err
		}
		if customer.Points < store.RedeemCost {
			return nil, ErrInsufficientPoints
		}
	}

	// 4. Reservation: date, time and store hours
	var reservationDate *time.Time
	isReservation := req.ReservationDate != "" || req.PickupTime != ""
	if isReservation {
		if req.ReservationDate == "" || req.PickupTime == "" {
			return nil, ErrReservationIncomplete
		}
		parsed, err := time.Parse("2006-01-02", req.ReservationDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		open, err := s.availability.IsOpenAt(req.StoreID, parsed, req.PickupTime)
		if err != nil {
			return nil, err
		}
		if !open {
			return nil, ErrStoreClosed
		}
		reservationDate = &parsed
	}

	// 5. Delivery address
	if req.IsDelivery && (req.Street == "" || req.Neighborhood == "") {
		return nil, ErrMissingAddress
	}

	// 6. Immediate till orders need an open register
	var registerID *uuid.UUID
	if !isReservation && sourceRequiresRegister(req.Source) {
		session, err := s.registerRepo.FindOpenByStore(req.StoreID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRegisterClosed
			}
			return nil, err
		}
		registerID = &session.ID
	}

	firstStatus, err := s.statuses.FirstStatus(req.StoreID)
	if err != nil {
		return nil, err
	}

	total := cartTotal(lines)
	if req.IsDelivery {
		total = total.Add(store.DeliveryFee)
	}

	order := &model.Order{
		StoreID:         req.StoreID,
		OrderNumber:     generateOrderNumber(time.Now()),
		CustomerID:      req.CustomerID,
		Source:          req.Source,
		Status:          firstStatus,
		Total:           total,
		PaymentMethod:   req.PaymentMethod,
		IsDelivery:      req.IsDelivery,
		Street:          req.Street,
		Neighborhood:    req.Neighborhood,
		ReservationDate: reservationDate,
		PickupTime:      req.PickupTime,
		CashRegisterID:  registerID,
		Items:           buildOrderItems(lines),
	}
	order.CreatedBy = actorID
	order.UpdatedBy = actorID

	// Single transaction: order, items, stock and points commit or roll back
	// together, so an order is never visible with missing items or
	// mismatched stock.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}

		for _, line := range lines {
			var affected int64
			var err error
			if line.VariationID != nil {
				affected, err = s.variationRepo.DecrementStock(tx, *line.VariationID, line.Quantity)
			} else {
				affected, err = s.productRepo.DecrementStock(tx, line.ProductID, line.Quantity)
			}
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("%w: %s", ErrStaleStock, line.Name)
			}
		}

		if req.PaymentMethod == model.PayFidelidade {
			affected, err := s.customerRepo.DebitPoints(tx, *req.CustomerID, store.RedeemCost)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrInsufficientPoints
			}
			orderID := order.ID
			entry := &model.LoyaltyTransaction{
				CustomerID: *req.CustomerID,
				OrderID:    &orderID,
				Points:     -store.RedeemCost,
				Type:       model.LoyaltyRedeem,
			}
			entry.CreatedBy = actorID
			if err := s.loyaltyRepo.Append(tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Cart is destroyed on commit.
	s.carts.Remove(req.CartID)

	// Saving the reusable address is fire-and-forget: its failure must not
	// fail the already committed order.
	if req.SaveAddress && req.CustomerID != nil && req.IsDelivery {
		go func(customerID uuid.UUID, street, neighborhood string) {
			address := &model.CustomerAddress{
				CustomerID:   customerID,
				Street:       street,
				Neighborhood: neighborhood,
			}
			if err := s.customerRepo.SaveAddress(address); err != nil {
				log.Println("address save failed:", err)
			}
		}(*req.CustomerID, req.Street, req.Neighborhood)
	}

	s.notifier.OrderChanged(notifier.OrderEvent{
		StoreID:     order.StoreID,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		OccurredAt:  time.Now().UTC(),
	})

	if req.IsDelivery && s.handoffs != nil {
		s.handoffs.PublishHandoff(messaging.BuildHandoff(order))
	}

	return order, nil
}

func (s *orderService) GetOrder(id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) Handoff(id uuid.UUID) (*messaging.Handoff, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	h := messaging.BuildHandoff(order)
	return &h, nil
}

// sourceRequiresRegister: counter channels settle against the till; remote
// channels (storefront, delivery apps) reconcile on their own schedule.
func sourceRequiresRegister(source model.OrderSource) bool {
	return source == model.SourceInPerson || source == model.SourceKiosk
}

func cartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for i := range lines {
		total = total.Add(lines[i].Subtotal())
	}
	return total
}

// buildOrderItems captures name/price snapshots so historical orders survive
// later catalog edits.
func buildOrderItems(lines []CartLine) []model.OrderItem {
	items := make([]model.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = model.OrderItem{
			ProductID:   line.ProductID,
			VariationID: line.VariationID,
			Name:        line.Name,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			Subtotal:    line.Subtotal(),
		}
	}
	return items
}

// generateOrderNumber derives the printable number from the commit clock.
// Two commits in the same second share a number; the id stays unique.
func generateOrderNumber(now time.Time) string {
	return now.Format("20060102-150405")
}
