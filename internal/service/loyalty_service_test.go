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

type loyaltyFixture struct {
	customerRepo *fakeCustomerRepo
	loyaltyRepo  *fakeLoyaltyRepo
	orderRepo    *fakeOrderRepo
	svc          LoyaltyService
}

func newLoyaltyFixture() *loyaltyFixture {
	f := &loyaltyFixture{
		customerRepo: newFakeCustomerRepo(),
		loyaltyRepo:  &fakeLoyaltyRepo{},
		orderRepo:    newFakeOrderRepo(),
	}
	f.svc = NewLoyaltyService(stubTx{}, f.customerRepo, f.loyaltyRepo, f.orderRepo)
	return f
}

func (f *loyaltyFixture) addCustomer(points int) *model.Customer {
	c := &model.Customer{Name: "Cliente", Points: points}
	c.ID = uuid.New()
	f.customerRepo.customers[c.ID] = c
	return c
}

func TestEarn(t *testing.T) {
	f := newLoyaltyFixture()
	customer := f.addCustomer(3)

	require.NoError(t, f.svc.Earn(customer.ID, nil, 2, "admin-1"))

	assert.Equal(t, 5, customer.Points)
	require.Len(t, f.loyaltyRepo.entries, 1)
	entry := f.loyaltyRepo.entries[0]
	assert.Equal(t, model.LoyaltyEarn, entry.Type)
	assert.Equal(t, 2, entry.Points)
	assert.Nil(t, entry.OrderID)

	// Balance always equals the ledger sum plus the starting balance.
	sum := 0
	for _, e := range f.loyaltyRepo.entries {
		sum += e.Points
	}
	assert.Equal(t, customer.Points, 3+sum)
}

func TestEarn_RejectsNonPositivePoints(t *testing.T) {
	f := newLoyaltyFixture()
	customer := f.addCustomer(3)

	assert.ErrorIs(t, f.svc.Earn(customer.ID, nil, 0, "admin-1"), ErrInvalidPoints)
	assert.ErrorIs(t, f.svc.Earn(customer.ID, nil, -5, "admin-1"), ErrInvalidPoints)
	assert.Equal(t, 3, customer.Points)
	assert.Empty(t, f.loyaltyRepo.entries)
}

func TestRedeem(t *testing.T) {
	f := newLoyaltyFixture()
	customer := f.addCustomer(10)
	orderID := uuid.New()

	require.NoError(t, f.svc.Redeem(customer.ID, &orderID, 9, "cashier-1"))

	assert.Equal(t, 1, customer.Points)
	require.Len(t, f.loyaltyRepo.entries, 1)
	entry := f.loyaltyRepo.entries[0]
	assert.Equal(t, model.LoyaltyRedeem, entry.Type)
	assert.Equal(t, -9, entry.Points)
	require.NotNil(t, entry.OrderID)
	assert.Equal(t, orderID, *entry.OrderID)
}

func TestRedeem_InsufficientBalanceLeavesEverythingUntouched(t *testing.T) {
	f := newLoyaltyFixture()
	customer := f.addCustomer(8)

	err := f.svc.Redeem(customer.ID, nil, 9, "cashier-1")
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	assert.Equal(t, 8, customer.Points)
	assert.Empty(t, f.loyaltyRepo.entries)
}

func TestStatement_FoldsOrderPointsAndSkipsActiveOrders(t *testing.T) {
	f := newLoyaltyFixture()
	customer := f.addCustomer(0)

	delivered := &model.Order{
		OrderNumber:   "20260901-190000",
		Status:        model.StatusDelivered,
		Total:         decimal.NewFromFloat(40.00),
		PaymentMethod: model.PayPix,
		CustomerID:    &customer.ID,
	}
	delivered.ID = uuid.New()
	delivered.CreatedAt = time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)
	f.orderRepo.orders[delivered.ID] = delivered

	pending := &model.Order{
		OrderNumber:   "20260901-200000",
		Status:        "pending",
		Total:         decimal.NewFromFloat(25.00),
		PaymentMethod: model.PayPix,
		CustomerID:    &customer.ID,
	}
	pending.ID = uuid.New()
	pending.CreatedAt = time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	f.orderRepo.orders[pending.ID] = pending

	// Earn tied to the delivered order plus a standalone adjustment.
	require.NoError(t, f.svc.Earn(customer.ID, &delivered.ID, 2, "system"))
	require.NoError(t, f.svc.Earn(customer.ID, nil, 5, "admin-1"))

	entries, err := f.svc.Statement(customer.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var orderEntry, pointsEntry *StatementEntry
	for i := range entries {
		switch entries[i].Kind {
		case "order":
			orderEntry = &entries[i]
		case "points":
			pointsEntry = &entries[i]
		}
	}

	// The delivered order lists once, with its earn folded in; the pending
	// order stays off the statement until it reaches a terminal status.
	require.NotNil(t, orderEntry)
	assert.Equal(t, "20260901-190000", orderEntry.OrderNumber)
	assert.Equal(t, 2, orderEntry.Points)

	require.NotNil(t, pointsEntry)
	assert.Equal(t, 5, pointsEntry.Points)
	assert.Nil(t, pointsEntry.OrderID)
}

func TestBuildStatement_SortsNewestFirst(t *testing.T) {
	old := model.Order{OrderNumber: "A", Status: model.StatusDelivered, Total: decimal.NewFromFloat(10)}
	old.ID = uuid.New()
	old.CreatedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	recent := model.Order{OrderNumber: "B", Status: model.StatusCancelled, Total: decimal.NewFromFloat(20)}
	recent.ID = uuid.New()
	recent.CreatedAt = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	entries := buildStatement([]model.Order{old, recent}, nil)
	require.Len(t, entries, 2)
	assert.Equal(t, "B", entries[0].OrderNumber)
	assert.Equal(t, "A", entries[1].OrderNumber)
}
