package service

import (
	"errors"
	"log"
	"time"

	"go-pos-loyalty/internal/model"
	"go-pos-loyalty/internal/notifier"
	"go-pos-loyalty/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderTerminal = errors.New("order already reached a terminal status")
)

type StatusService interface {
	// ActiveStatuses returns the store's configured workflow, falling back
	// to the documented five-status default when unconfigured.
	ActiveStatuses(storeID uuid.UUID) ([]model.StatusConfig, error)
	FirstStatus(storeID uuid.UUID) (string, error)

	Advance(orderID uuid.UUID, actorID string) (*model.Order, error)
	Cancel(orderID uuid.UUID, actorID string) (*model.Order, error)

	Board(storeID uuid.UUID) ([]model.Order, error)
}

type statusService struct {
	statusRepo  repository.StatusRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	loyalty     LoyaltyService
	notifier    notifier.OrderNotifier
}

func NewStatusService(statusRepo repository.StatusRepository, orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository, loyalty LoyaltyService, orderNotifier notifier.OrderNotifier) StatusService {
	return &statusService{
		statusRepo:  statusRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		loyalty:     loyalty,
		notifier:    orderNotifier,
	}
}

func (s *statusService) ActiveStatuses(storeID uuid.UUID) ([]model.StatusConfig, error) {
	statuses, err := s.statusRepo.FindActiveByStore(storeID)
	if err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		statuses = model.DefaultActiveStatuses(storeID)
	}
	return statuses, nil
}

func (s *statusService) FirstStatus(storeID uuid.UUID) (string, error) {
	statuses, err := s.ActiveStatuses(storeID)
	if err != nil {
		return "", err
	}
	return statuses[0].Key, nil
}

// Advance moves an order to the next active status by display order, or to
// the terminal delivered status when none remains. Reaching delivered here is
// the single earn-accrual trigger; the register bulk close deliberately
// bypasses it.
func (s *statusService) Advance(orderID uuid.UUID, actorID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if model.IsTerminalStatus(order.Status) {
		return nil, ErrOrderTerminal
	}

	statuses, err := s.ActiveStatuses(order.StoreID)
	if err != nil {
		return nil, err
	}
	next := nextActiveStatus(statuses, order.Status)

	if err := s.orderRepo.UpdateStatus(order.ID, next, actorID); err != nil {
		return nil, err
	}
	order.Status = next

	if next == model.StatusDelivered {
		s.accrueEarn(order, actorID)
	}

	s.notifier.OrderChanged(notifier.OrderEvent{
		StoreID:     order.StoreID,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      next,
		OccurredAt:  time.Now().UTC(),
	})
	return order, nil
}

// Cancel is a manual action available from any non-terminal status. Stock is
// not restored.
func (s *statusService) Cancel(orderID uuid.UUID, actorID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if model.IsTerminalStatus(order.Status) {
		return nil, ErrOrderTerminal
	}

	if err := s.orderRepo.UpdateStatus(order.ID, model.StatusCancelled, actorID); err != nil {
		return nil, err
	}
	order.Status = model.StatusCancelled

	s.notifier.OrderChanged(notifier.OrderEvent{
		StoreID:     order.StoreID,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      model.StatusCancelled,
		OccurredAt:  time.Now().UTC(),
	})
	return order, nil
}

func (s *statusService) Board(storeID uuid.UUID) ([]model.Order, error) {
	statuses, err := s.ActiveStatuses(storeID)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(statuses))
	for i, st := range statuses {
		keys[i] = st.Key
	}
	return s.orderRepo.FindActiveByStore(storeID, keys)
}

// accrueEarn credits the points flagged on the delivered order's products.
// Orders paid with points don't earn.
func (s *statusService) accrueEarn(order *model.Order, actorID string) {
	if order.CustomerID == nil || order.PaymentMethod == model.PayFidelidade {
		return
	}

	productIDs := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	if len(productIDs) == 0 {
		return
	}
	products, err := s.productRepo.FindByIDs(productIDs)
	if err != nil {
		log.Println("loyalty earn: product lookup failed:", err)
		return
	}
	rates := make(map[uuid.UUID]int, len(products))
	for _, p := range products {
		if p.EarnsPoints {
			rates[p.ID] = p.PointsRate
		}
	}

	points := 0
	for _, item := range order.Items {
		points += rates[item.ProductID] * item.Quantity
	}
	if points == 0 {
		return
	}

	orderID := order.ID
	if err := s.loyalty.Earn(*order.CustomerID, &orderID, points, actorID); err != nil {
		log.Println("loyalty earn failed for order", order.OrderNumber, ":", err)
	}
}

// nextActiveStatus walks the ordered active list; past the end the only
// forward transition is delivered. An unknown current status also resolves to
// delivered, matching a shrunk configuration.
func nextActiveStatus(statuses []model.StatusConfig, current string) string {
	for i, st := range statuses {
		if st.Key == current {
			if i+1 < len(statuses) {
				return statuses[i+1].Key
			}
			return model.StatusDelivered
		}
	}
	return model.StatusDelivered
}
