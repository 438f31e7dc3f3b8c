package service

import (
	"database/sql"
	"time"

	"go-pos-loyalty/internal/messaging"
	"go-pos-loyalty/internal/model"
	"go-pos-loyalty/internal/notifier"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// stubTx runs the transactional closure directly; the fakes below ignore the
// tx handle, so commit and rollback semantics are asserted through state.
type stubTx struct{}

func (stubTx) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(product *model.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Update(product *model.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindByIDs(ids []uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindActiveByStore(storeID uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.StoreID == storeID && p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.Stock < qty {
		return 0, nil
	}
	p.Stock -= qty
	return 1, nil
}

type fakeVariationRepo struct {
	variations map[uuid.UUID]*model.Variation
}

func newFakeVariationRepo(variations ...*model.Variation) *fakeVariationRepo {
	r := &fakeVariationRepo{variations: make(map[uuid.UUID]*model.Variation)}
	for _, v := range variations {
		r.variations[v.ID] = v
	}
	return r
}

func (r *fakeVariationRepo) Create(variation *model.Variation) error {
	r.variations[variation.ID] = variation
	return nil
}

func (r *fakeVariationRepo) FindByID(id uuid.UUID) (*model.Variation, error) {
	v, ok := r.variations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *fakeVariationRepo) FindByProduct(productID uuid.UUID) ([]model.Variation, error) {
	var out []model.Variation
	for _, v := range r.variations {
		if v.ProductID == productID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *fakeVariationRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	v, ok := r.variations[id]
	if !ok || v.Stock < qty {
		return 0, nil
	}
	v.Stock -= qty
	return 1, nil
}

type fakeStoreRepo struct {
	store    *model.Store
	hours    map[time.Weekday]*model.StoreHour
	specials map[string]*model.SpecialDay
}

func newFakeStoreRepo(store *model.Store) *fakeStoreRepo {
	return &fakeStoreRepo{
		store:    store,
		hours:    make(map[time.Weekday]*model.StoreHour),
		specials: make(map[string]*model.SpecialDay),
	}
}

func (r *fakeStoreRepo) Create(store *model.Store) error {
	r.store = store
	return nil
}

func (r *fakeStoreRepo) FindByID(id uuid.UUID) (*model.Store, error) {
	if r.store == nil || r.store.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.store, nil
}

func (r *fakeStoreRepo) FindHour(storeID uuid.UUID, weekday time.Weekday) (*model.StoreHour, error) {
	return r.hours[weekday], nil
}

func (r *fakeStoreRepo) FindSpecialDay(storeID uuid.UUID, date time.Time) (*model.SpecialDay, error) {
	return r.specials[date.Format("2006-01-02")], nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func newFakeOrderRepo(orders ...*model.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Create(tx *gorm.DB, order *model.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) FindActiveByStore(storeID uuid.UUID, activeStatuses []string) ([]model.Order, error) {
	active := make(map[string]bool, len(activeStatuses))
	for _, s := range activeStatuses {
		active[s] = true
	}
	var out []model.Order
	for _, o := range r.orders {
		if o.StoreID == storeID && active[o.Status] {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindByRegister(registerID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.CashRegisterID != nil && *o.CashRegisterID == registerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindByCustomer(customerID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.CustomerID != nil && *o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(orderID uuid.UUID, status, updatedBy string) error {
	o, ok := r.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	o.UpdatedBy = updatedBy
	return nil
}

func (r *fakeOrderRepo) BulkUpdateStatus(tx *gorm.DB, registerID uuid.UUID, status, updatedBy string) error {
	for _, o := range r.orders {
		if o.CashRegisterID != nil && *o.CashRegisterID == registerID && o.Status != model.StatusCancelled {
			o.Status = status
			o.UpdatedBy = updatedBy
		}
	}
	return nil
}

func (r *fakeOrderRepo) FindUnassignedReservations(storeID uuid.UUID, status string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.StoreID == storeID && o.Status == status && o.CashRegisterID == nil && o.ReservationDate != nil {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) AssignRegister(orderIDs []uuid.UUID, registerID uuid.UUID) error {
	for _, id := range orderIDs {
		if o, ok := r.orders[id]; ok {
			rid := registerID
			o.CashRegisterID = &rid
		}
	}
	return nil
}

type fakeRegisterRepo struct {
	sessions map[uuid.UUID]*model.CashRegisterSession
}

func newFakeRegisterRepo(sessions ...*model.CashRegisterSession) *fakeRegisterRepo {
	r := &fakeRegisterRepo{sessions: make(map[uuid.UUID]*model.CashRegisterSession)}
	for _, s := range sessions {
		r.sessions[s.ID] = s
	}
	return r
}

func (r *fakeRegisterRepo) Create(session *model.CashRegisterSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeRegisterRepo) FindByID(id uuid.UUID) (*model.CashRegisterSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeRegisterRepo) FindOpenByStore(storeID uuid.UUID) (*model.CashRegisterSession, error) {
	for _, s := range r.sessions {
		if s.StoreID == storeID && s.IsOpen() {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRegisterRepo) Close(tx *gorm.DB, id uuid.UUID, closedAt time.Time, finalAmount decimal.Decimal) error {
	s, ok := r.sessions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.ClosedAt = &closedAt
	s.FinalAmount = &finalAmount
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
	addresses []model.CustomerAddress
}

func newFakeCustomerRepo(customers ...*model.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(customer *model.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCustomerRepo) FindByStore(storeID uuid.UUID) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		if c.StoreID == storeID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) DebitPoints(tx *gorm.DB, id uuid.UUID, cost int) (int64, error) {
	c, ok := r.customers[id]
	if !ok || c.Points < cost {
		return 0, nil
	}
	c.Points -= cost
	return 1, nil
}

func (r *fakeCustomerRepo) CreditPoints(tx *gorm.DB, id uuid.UUID, points int) error {
	c, ok := r.customers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Points += points
	return nil
}

func (r *fakeCustomerRepo) SaveAddress(address *model.CustomerAddress) error {
	r.addresses = append(r.addresses, *address)
	return nil
}

func (r *fakeCustomerRepo) FindAddresses(customerID uuid.UUID) ([]model.CustomerAddress, error) {
	var out []model.CustomerAddress
	for _, a := range r.addresses {
		if a.CustomerID == customerID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeLoyaltyRepo struct {
	entries []model.LoyaltyTransaction
}

func (r *fakeLoyaltyRepo) Append(tx *gorm.DB, entry *model.LoyaltyTransaction) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeLoyaltyRepo) FindByCustomer(customerID uuid.UUID) ([]model.LoyaltyTransaction, error) {
	var out []model.LoyaltyTransaction
	for _, e := range r.entries {
		if e.CustomerID == customerID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeStatusRepo struct {
	statuses []model.StatusConfig
}

func (r *fakeStatusRepo) FindActiveByStore(storeID uuid.UUID) ([]model.StatusConfig, error) {
	var out []model.StatusConfig
	for _, s := range r.statuses {
		if s.StoreID == storeID && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStatusRepo) SeedDefaults(storeID uuid.UUID) error {
	return nil
}

type fakeNotifier struct {
	events []notifier.OrderEvent
}

func (n *fakeNotifier) OrderChanged(ev notifier.OrderEvent) {
	n.events = append(n.events, ev)
}

type fakePublisher struct {
	handoffs []messaging.Handoff
}

func (p *fakePublisher) PublishHandoff(h messaging.Handoff) {
	p.handoffs = append(p.handoffs, h)
}
