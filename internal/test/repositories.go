package test

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/fabricstore/internal/domain/errors"
	"github.com/polkiloo/fabricstore/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[user.Email]; exists {
		return domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user.ID = s.Next
	s.Next++
	stored := *user
	s.Users[user.Email] = &stored
	s.ByID[user.ID] = &stored
	return nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Count returns number of stored users.
func (s *UserRepositoryStub) Count(ctx context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.ByID)), nil
}

// OrderRepositoryStub keeps order documents in memory. Fn overrides take precedence.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders map[string]model.Order
	Saves  int

	CreateFn func(context.Context, *model.Order) error
	GetFn    func(context.Context, string) (*model.Order, error)
	SaveFn   func(context.Context, *model.Order) error
	ListFn   func(context.Context, model.OrderFilter) ([]model.Order, error)
	SalesFn  func(context.Context) (decimal.Decimal, error)
	ActiveFn func(context.Context) (int64, error)
}

// NewOrderRepositoryStub constructs empty order store.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]model.Order)}
}

// Put seeds the store with order.
func (s *OrderRepositoryStub) Put(order model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Orders == nil {
		s.Orders = make(map[string]model.Order)
	}
	s.Orders[order.ID] = order.Clone()
}

// Stored returns a copy of the persisted order.
func (s *OrderRepositoryStub) Stored(id string) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok {
		return model.Order{}, false
	}
	return order.Clone(), true
}

// Create stores new order document.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Orders == nil {
		s.Orders = make(map[string]model.Order)
	}
	if _, exists := s.Orders[order.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	s.Orders[order.ID] = order.Clone()
	return nil
}

// Get returns copy of stored order or not found.
func (s *OrderRepositoryStub) Get(ctx context.Context, id string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	order, ok := s.Stored(id)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &order, nil
}

// Save overwrites stored order document.
func (s *OrderRepositoryStub) Save(ctx context.Context, order *model.Order) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.Orders[order.ID]; !exists {
		return domainErrors.ErrNotFound
	}
	s.Orders[order.ID] = order.Clone()
	s.Saves++
	return nil
}

// ListByUser returns user orders newest first.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.collect(func(o model.Order) bool { return o.UserID == userID }, 0), nil
}

// List returns orders matching filter newest first.
func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return s.collect(func(o model.Order) bool {
		return filter.Status == "" || o.Status == filter.Status
	}, filter.Limit), nil
}

// TotalSales sums totals of paid, non-cancelled orders.
func (s *OrderRepositoryStub) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	if s.SalesFn != nil {
		return s.SalesFn(ctx)
	}
	total := decimal.Zero
	for _, o := range s.collect(func(o model.Order) bool {
		return o.IsPaid && o.Status != model.OrderStatusCancelled
	}, 0) {
		total = total.Add(o.TotalPrice)
	}
	return total, nil
}

// CountActive counts orders neither delivered nor cancelled.
func (s *OrderRepositoryStub) CountActive(ctx context.Context) (int64, error) {
	if s.ActiveFn != nil {
		return s.ActiveFn(ctx)
	}
	return int64(len(s.collect(func(o model.Order) bool {
		return o.Status != model.OrderStatusDelivered && o.Status != model.OrderStatusCancelled
	}, 0))), nil
}

func (s *OrderRepositoryStub) collect(keep func(model.Order) bool, limit int) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		if keep(o) {
			out = append(out, o.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ProductRepositoryStub serves a fixed catalog.
type ProductRepositoryStub struct {
	Products map[string]model.Product
	Err      error
}

// GetByID returns catalog product or not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.Products[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

// Count returns catalog size.
func (s *ProductRepositoryStub) Count(ctx context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.Products)), nil
}

// InvoiceRepositoryStub stores invoices in memory.
type InvoiceRepositoryStub struct {
	mu       sync.Mutex
	Invoices map[string]model.Invoice
	PutErr   error
	Puts     int
}

// Put stores invoice unless PutErr is set.
func (s *InvoiceRepositoryStub) Put(ctx context.Context, invoice *model.Invoice) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Invoices == nil {
		s.Invoices = make(map[string]model.Invoice)
	}
	s.Invoices[invoice.OrderID] = *invoice
	s.Puts++
	return nil
}

// Get returns stored invoice or not found.
func (s *InvoiceRepositoryStub) Get(ctx context.Context, orderID string) (*model.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.Invoices[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &inv, nil
}

// SettingsRepositoryStub stores a single settings record.
type SettingsRepositoryStub struct {
	Settings *model.StoreSettings
	Err      error
}

// Get returns stored settings or not found when unset.
func (s *SettingsRepositoryStub) Get(ctx context.Context) (*model.StoreSettings, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Settings == nil {
		return nil, domainErrors.ErrNotFound
	}
	copied := *s.Settings
	return &copied, nil
}

// Save replaces stored settings.
func (s *SettingsRepositoryStub) Save(ctx context.Context, settings *model.StoreSettings) error {
	if s.Err != nil {
		return s.Err
	}
	copied := *settings
	s.Settings = &copied
	return nil
}
