package service

import (
	"errors"
	"sort"
	"time"

	"go-pos-loyalty/internal/model"
	"go-pos-loyalty/internal/notifier"
	"go-pos-loyalty/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrRegisterAlreadyOpen   = errors.New("a cash register session is already open for this store")
	ErrRegisterNotFound      = errors.New("cash register session not found")
	ErrRegisterAlreadyClosed = errors.New("cash register session is already closed")
	ErrNegativeAmount        = errors.New("amount cannot be negative")
)

// SoldItem aggregates quantities by the display name captured on the order
// line snapshots; differently named variations of one product count apart.
type SoldItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// RegisterSummary is the reconciliation shown to the operator at close.
// FinalAmount = InitialAmount + TotalSales, and the persisted final_amount
// uses the same figure, so the display always matches the record.
type RegisterSummary struct {
	SessionID           uuid.UUID                               `json:"session_id"`
	InitialAmount       decimal.Decimal                         `json:"initial_amount"`
	TotalSales          decimal.Decimal                         `json:"total_sales"`
	FinalAmount         decimal.Decimal                         `json:"final_amount"`
	PaymentMethodTotals map[model.PaymentMethod]decimal.Decimal `json:"payment_method_totals"`
	ItemsSold           []SoldItem                              `json:"items_sold"`
	OrderCount          int                                     `json:"order_count"`
}

type RegisterService interface {
	Open(storeID uuid.UUID, openedBy string, initialAmount decimal.Decimal) (*model.CashRegisterSession, error)

	// PrepareClose computes the reconciliation summary without mutating
	// anything, so the operator can review before confirming.
	PrepareClose(sessionID uuid.UUID) (*RegisterSummary, error)

	// ConfirmClose stamps the session closed and bulk-finalizes its orders
	// to delivered. The bulk path does not accrue loyalty earn; only the
	// status workflow's own delivered transition does.
	ConfirmClose(sessionID uuid.UUID, closedBy string) (*RegisterSummary, error)
}

type registerService struct {
	db           TxRunner
	registerRepo repository.RegisterRepository
	orderRepo    repository.OrderRepository
	statuses     StatusService
	notifier     notifier.OrderNotifier
}

func NewRegisterService(db TxRunner, registerRepo repository.RegisterRepository,
	orderRepo repository.OrderRepository, statuses StatusService, orderNotifier notifier.OrderNotifier) RegisterService {
	return &registerService{
		db:           db,
		registerRepo: registerRepo,
		orderRepo:    orderRepo,
		statuses:     statuses,
		notifier:     orderNotifier,
	}
}

func (s *registerService) Open(storeID uuid.UUID, openedBy string, initialAmount decimal.Decimal) (*model.CashRegisterSession, error) {
	if initialAmount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	_, err := s.registerRepo.FindOpenByStore(storeID)
	if err == nil {
		return nil, ErrRegisterAlreadyOpen
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session := &model.CashRegisterSession{
		StoreID:       storeID,
		OpenedBy:      openedBy,
		InitialAmount: initialAmount,
		OpenedAt:      time.Now(),
	}
	session.CreatedBy = openedBy
	session.UpdatedBy = openedBy
	if err := s.registerRepo.Create(session); err != nil {
		return nil, err
	}

	// Adopt reservations committed while no till was open.
	if err := s.attachPendingReservations(storeID, session.ID); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *registerService) attachPendingReservations(storeID, sessionID uuid.UUID) error {
	firstStatus, err := s.statuses.FirstStatus(storeID)
	if err != nil {
		return err
	}
	pending, err := s.orderRepo.FindUnassignedReservations(storeID, firstStatus)
	if err != nil {
		return err
	}
	ids := make([]uuid.UUID, len(pending))
	for i, o := range pending {
		ids[i] = o.ID
	}
	return s.orderRepo.AssignRegister(ids, sessionID)
}

func (s *registerService) PrepareClose(sessionID uuid.UUID) (*RegisterSummary, error) {
	session, err := s.registerRepo.FindByID(sessionID)
	if err != nil {
		return nil, ErrRegisterNotFound
	}
	orders, err := s.orderRepo.FindByRegister(sessionID)
	if err != nil {
		return nil, err
	}
	summary := buildRegisterSummary(session, orders)
	return &summary, nil
}

func (s *registerService) ConfirmClose(sessionID uuid.UUID, closedBy string) (*RegisterSummary, error) {
	session, err := s.registerRepo.FindByID(sessionID)
	if err != nil {
		return nil, ErrRegisterNotFound
	}
	if !session.IsOpen() {
		return nil, ErrRegisterAlreadyClosed
	}

	orders, err := s.orderRepo.FindByRegister(sessionID)
	if err != nil {
		return nil, err
	}
	summary := buildRegisterSummary(session, orders)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.registerRepo.Close(tx, sessionID, time.Now(), summary.FinalAmount); err != nil {
			return err
		}
		return s.orderRepo.BulkUpdateStatus(tx, sessionID, model.StatusDelivered, closedBy)
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, o := range orders {
		if o.Status == model.StatusCancelled {
			continue
		}
		s.notifier.OrderChanged(notifier.OrderEvent{
			StoreID:     o.StoreID,
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			Status:      model.StatusDelivered,
			OccurredAt:  now,
		})
	}
	return &summary, nil
}

// buildRegisterSummary groups totals by payment method (every method present,
// zero-valued when unused) and sold quantities by snapshot display name.
// Cancelled orders stay out of the figures.
func buildRegisterSummary(session *model.CashRegisterSession, orders []model.Order) RegisterSummary {
	totals := make(map[model.PaymentMethod]decimal.Decimal, len(model.AllPaymentMethods))
	for _, method := range model.AllPaymentMethods {
		totals[method] = decimal.Zero
	}

	totalSales := decimal.Zero
	soldByName := make(map[string]int)
	count := 0
	for i := range orders {
		o := &orders[i]
		if o.Status == model.StatusCancelled {
			continue
		}
		count++
		totalSales = totalSales.Add(o.Total)
		totals[o.PaymentMethod] = totals[o.PaymentMethod].Add(o.Total)
		for _, item := range o.Items {
			soldByName[item.Name] += item.Quantity
		}
	}

	items := make([]SoldItem, 0, len(soldByName))
	for name, qty := range soldByName {
		items = append(items, SoldItem{Name: name, Quantity: qty})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	return RegisterSummary{
		SessionID:           session.ID,
		InitialAmount:       session.InitialAmount,
		TotalSales:          totalSales,
		FinalAmount:         session.InitialAmount.Add(totalSales),
		PaymentMethodTotals: totals,
		ItemsSold:           items,
		OrderCount:          count,
	}
}
