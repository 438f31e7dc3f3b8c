package service

import (
	"errors"
	"sort"
	"time"

	"go-pos-loyalty/internal/model"
	"go-pos-loyalty/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInsufficientPoints = errors.New("customer does not have enough points")
	ErrInvalidPoints      = errors.New("points must be greater than zero")
)

// StatementEntry merges order history with standalone ledger entries for the
// customer-facing statement. Transactions already tied to a listed order fold
// into that order's entry so points never show twice.
type StatementEntry struct {
	Kind        string           `json:"kind"` // "order" or "points"
	OrderID     *uuid.UUID       `json:"order_id,omitempty"`
	OrderNumber string           `json:"order_number,omitempty"`
	Status      string           `json:"status,omitempty"`
	Total       *decimal.Decimal `json:"total,omitempty"`
	Points      int              `json:"points"`
	When        time.Time        `json:"when"`
}

type LoyaltyService interface {
	Earn(customerID uuid.UUID, orderID *uuid.UUID, points int, actorID string) error
	Redeem(customerID uuid.UUID, orderID *uuid.UUID, cost int, actorID string) error
	Statement(customerID uuid.UUID) ([]StatementEntry, error)
}

type loyaltyService struct {
	db           TxRunner
	customerRepo repository.CustomerRepository
	loyaltyRepo  repository.LoyaltyRepository
	orderRepo    repository.OrderRepository
}

func NewLoyaltyService(db TxRunner, customerRepo repository.CustomerRepository,
	loyaltyRepo repository.LoyaltyRepository, orderRepo repository.OrderRepository) LoyaltyService {
	return &loyaltyService{
		db:           db,
		customerRepo: customerRepo,
		loyaltyRepo:  loyaltyRepo,
		orderRepo:    orderRepo,
	}
}

func (s *loyaltyService) Earn(customerID uuid.UUID, orderID *uuid.UUID, points int, actorID string) error {
	if points <= 0 {
		return ErrInvalidPoints
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.customerRepo.CreditPoints(tx, customerID, points); err != nil {
			return err
		}
		entry := &model.LoyaltyTransaction{
			CustomerID: customerID,
			OrderID:    orderID,
			Points:     points,
			Type:       model.LoyaltyEarn,
		}
		entry.CreatedBy = actorID
		return s.loyaltyRepo.Append(tx, entry)
	})
}

// Redeem debits the fixed cost conditionally: zero rows affected means the
// balance stopped covering the cost, and nothing is written.
func (s *loyaltyService) Redeem(customerID uuid.UUID, orderID *uuid.UUID, cost int, actorID string) error {
	if cost <= 0 {
		return ErrInvalidPoints
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		affected, err := s.customerRepo.DebitPoints(tx, customerID, cost)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientPoints
		}
		entry := &model.LoyaltyTransaction{
			CustomerID: customerID,
			OrderID:    orderID,
			Points:     -cost,
			Type:       model.LoyaltyRedeem,
		}
		entry.CreatedBy = actorID
		return s.loyaltyRepo.Append(tx, entry)
	})
}

func (s *loyaltyService) Statement(customerID uuid.UUID) ([]StatementEntry, error) {
	orders, err := s.orderRepo.FindByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.loyaltyRepo.FindByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	return buildStatement(orders, transactions), nil
}

// buildStatement lists delivered/cancelled orders plus ledger entries not
// already tied to one of those orders.
func buildStatement(orders []model.Order, transactions []model.LoyaltyTransaction) []StatementEntry {
	pointsByOrder := make(map[uuid.UUID]int)
	for _, t := range transactions {
		if t.OrderID != nil {
			pointsByOrder[*t.OrderID] += t.Points
		}
	}

	var entries []StatementEntry
	listed := make(map[uuid.UUID]bool)
	for i := range orders {
		o := orders[i]
		if !model.IsTerminalStatus(o.Status) {
			continue
		}
		listed[o.ID] = true
		total := o.Total
		orderID := o.ID
		entries = append(entries, StatementEntry{
			Kind:        "order",
			OrderID:     &orderID,
			OrderNumber: o.OrderNumber,
			Status:      o.Status,
			Total:       &total,
			Points:      pointsByOrder[o.ID],
			When:        o.CreatedAt,
		})
	}

	for i := range transactions {
		t := transactions[i]
		if t.OrderID != nil && listed[*t.OrderID] {
			continue // already folded into the order entry
		}
		entries = append(entries, StatementEntry{
			Kind:    "points",
			OrderID: t.OrderID,
			Points:  t.Points,
			When:    t.CreatedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].When.After(entries[j].When) })
	return entries
}
