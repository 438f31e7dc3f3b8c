package service

import (
	"testing"
	"time"

	"go-pos-loyalty/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerFixture struct {
	storeID      uuid.UUID
	registerRepo *fakeRegisterRepo
	orderRepo    *fakeOrderRepo
	notifier     *fakeNotifier
	svc          RegisterService
}

func newRegisterFixture() *registerFixture {
	f := &registerFixture{
		storeID:      uuid.New(),
		registerRepo: newFakeRegisterRepo(),
		orderRepo:    newFakeOrderRepo(),
		notifier:     &fakeNotifier{},
	}
	loyalty := NewLoyaltyService(stubTx{}, newFakeCustomerRepo(), &fakeLoyaltyRepo{}, f.orderRepo)
	statuses := NewStatusService(&fakeStatusRepo{}, f.orderRepo, newFakeProductRepo(), loyalty, f.notifier)
	f.svc = NewRegisterService(stubTx{}, f.registerRepo, f.orderRepo, statuses, f.notifier)
	return f
}

func (f *registerFixture) addOrder(sessionID uuid.UUID, status string, method model.PaymentMethod, total float64, items ...model.OrderItem) *model.Order {
	order := &model.Order{
		StoreID:        f.storeID,
		OrderNumber:    "20260901-120000",
		Source:         model.SourceInPerson,
		Status:         status,
		PaymentMethod:  method,
		Total:          decimal.NewFromFloat(total),
		CashRegisterID: &sessionID,
		Items:          items,
	}
	order.ID = uuid.New()
	f.orderRepo.orders[order.ID] = order
	return order
}

func TestRegisterOpen(t *testing.T) {
	f := newRegisterFixture()

	session, err := f.svc.Open(f.storeID, "cashier-1", decimal.NewFromFloat(100.00))
	require.NoError(t, err)
	assert.True(t, session.IsOpen())
	assert.Equal(t, "cashier-1", session.OpenedBy)

	// Second open for the same store is rejected while the first is open.
	_, err = f.svc.Open(f.storeID, "cashier-2", decimal.NewFromFloat(50.00))
	assert.ErrorIs(t, err, ErrRegisterAlreadyOpen)

	// A different store opens independently.
	_, err = f.svc.Open(uuid.New(), "cashier-3", decimal.Zero)
	assert.NoError(t, err)
}

func TestRegisterOpen_RejectsNegativeAmount(t *testing.T) {
	f := newRegisterFixture()
	_, err := f.svc.Open(f.storeID, "cashier-1", decimal.NewFromFloat(-1.00))
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestRegisterOpen_AdoptsPendingReservations(t *testing.T) {
	f := newRegisterFixture()

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	reservation := &model.Order{
		StoreID:         f.storeID,
		OrderNumber:     "20260831-220000",
		Source:          model.SourceInPerson,
		Status:          "pending",
		PaymentMethod:   model.PayPix,
		Total:           decimal.NewFromFloat(40.00),
		ReservationDate: &date,
		PickupTime:      "19:30",
	}
	reservation.ID = uuid.New()
	f.orderRepo.orders[reservation.ID] = reservation

	session, err := f.svc.Open(f.storeID, "cashier-1", decimal.NewFromFloat(100.00))
	require.NoError(t, err)

	adopted := f.orderRepo.orders[reservation.ID]
	require.NotNil(t, adopted.CashRegisterID)
	assert.Equal(t, session.ID, *adopted.CashRegisterID)
}

func TestPrepareClose_Reconciliation(t *testing.T) {
	f := newRegisterFixture()
	session := &model.CashRegisterSession{
		StoreID:       f.storeID,
		OpenedBy:      "cashier-1",
		InitialAmount: decimal.NewFromFloat(100.00),
		OpenedAt:      time.Now(),
	}
	session.ID = uuid.New()
	f.registerRepo.sessions[session.ID] = session

	f.addOrder(session.ID, "ready", model.PayDinheiro, 25.00,
		model.OrderItem{Name: "Pizza - Broto", Quantity: 1})
	f.addOrder(session.ID, model.StatusDelivered, model.PayPix, 30.00,
		model.OrderItem{Name: "Pizza - Broto", Quantity: 1},
		model.OrderItem{Name: "Refrigerante", Quantity: 2})
	// Cancelled orders stay out of every figure.
	f.addOrder(session.ID, model.StatusCancelled, model.PayDinheiro, 99.00,
		model.OrderItem{Name: "Pizza - Família", Quantity: 2})

	summary, err := f.svc.PrepareClose(session.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.OrderCount)
	assert.True(t, summary.TotalSales.Equal(decimal.NewFromFloat(55.00)))
	assert.True(t, summary.FinalAmount.Equal(decimal.NewFromFloat(155.00)))

	// Every payment method is present, unused ones at zero.
	require.Len(t, summary.PaymentMethodTotals, len(model.AllPaymentMethods))
	assert.True(t, summary.PaymentMethodTotals[model.PayDinheiro].Equal(decimal.NewFromFloat(25.00)))
	assert.True(t, summary.PaymentMethodTotals[model.PayPix].Equal(decimal.NewFromFloat(30.00)))
	assert.True(t, summary.PaymentMethodTotals[model.PayCredito].IsZero())
	assert.True(t, summary.PaymentMethodTotals[model.PayDebito].IsZero())
	assert.True(t, summary.PaymentMethodTotals[model.PayFidelidade].IsZero())

	// Aggregated by snapshot name, sorted, cancelled excluded.
	require.Len(t, summary.ItemsSold, 2)
	assert.Equal(t, SoldItem{Name: "Pizza - Broto", Quantity: 2}, summary.ItemsSold[0])
	assert.Equal(t, SoldItem{Name: "Refrigerante", Quantity: 2}, summary.ItemsSold[1])

	// PrepareClose mutates nothing.
	assert.True(t, f.registerRepo.sessions[session.ID].IsOpen())
}

func TestConfirmClose(t *testing.T) {
	f := newRegisterFixture()
	session := &model.CashRegisterSession{
		StoreID:       f.storeID,
		OpenedBy:      "cashier-1",
		InitialAmount: decimal.NewFromFloat(100.00),
		OpenedAt:      time.Now(),
	}
	session.ID = uuid.New()
	f.registerRepo.sessions[session.ID] = session

	active := f.addOrder(session.ID, "preparing", model.PayDinheiro, 25.00)
	cancelled := f.addOrder(session.ID, model.StatusCancelled, model.PayPix, 40.00)

	summary, err := f.svc.ConfirmClose(session.ID, "cashier-1")
	require.NoError(t, err)
	assert.True(t, summary.FinalAmount.Equal(decimal.NewFromFloat(125.00)))

	// Session stamped closed with the reconciled amount persisted as-is.
	closed := f.registerRepo.sessions[session.ID]
	assert.False(t, closed.IsOpen())
	require.NotNil(t, closed.FinalAmount)
	assert.True(t, closed.FinalAmount.Equal(summary.FinalAmount))

	// Remaining orders finalized, cancelled untouched.
	assert.Equal(t, model.StatusDelivered, f.orderRepo.orders[active.ID].Status)
	assert.Equal(t, model.StatusCancelled, f.orderRepo.orders[cancelled.ID].Status)

	// One event per finalized order.
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, active.ID, f.notifier.events[0].OrderID)

	// Closing twice is rejected.
	_, err = f.svc.ConfirmClose(session.ID, "cashier-1")
	assert.ErrorIs(t, err, ErrRegisterAlreadyClosed)
}

func TestConfirmClose_UnknownSession(t *testing.T) {
	f := newRegisterFixture()
	_, err := f.svc.ConfirmClose(uuid.New(), "cashier-1")
	assert.ErrorIs(t, err, ErrRegisterNotFound)
	_, err = f.svc.PrepareClose(uuid.New())
	assert.ErrorIs(t, err, ErrRegisterNotFound)
}
