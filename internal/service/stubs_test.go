package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"optiops/internal/dto"
	"optiops/internal/infra"
	"optiops/internal/model"
	"optiops/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubUserRepo is an in-memory UserRepository for testing.
type stubUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*model.User)}
}

func (r *stubUserRepo) seed(u model.User) *model.User {
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = &u
	return &u
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.IsActive {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uint) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsActive = false
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) CountActiveAdmins(_ context.Context) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == model.RoleAdmin && u.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) CountCreatedBetween(_ context.Context, from, to time.Time) (int64, error) {
	var n int64
	for _, u := range r.users {
		if !u.CreatedAt.Before(from) && u.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) UsernameExists(_ context.Context, username string, excludeID uint) (bool, error) {
	for _, u := range r.users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) EmailExists(_ context.Context, email string, excludeID uint) (bool, error) {
	for _, u := range r.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// stubMachineRepo is an in-memory MachineRepository.
type stubMachineRepo struct {
	machines map[uint]*model.Machine
}

func newStubMachineRepo() *stubMachineRepo {
	return &stubMachineRepo{machines: make(map[uint]*model.Machine)}
}

func (r *stubMachineRepo) FindByID(_ context.Context, id uint) (*model.Machine, error) {
	m, ok := r.machines[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMachineRepo) List(_ context.Context) ([]model.Machine, error) {
	out := make([]model.Machine, 0, len(r.machines))
	for _, m := range r.machines {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubMachineRepo) Update(_ context.Context, m *model.Machine) error {
	r.machines[m.ID] = m
	return nil
}

func (r *stubMachineRepo) UpdateTx(_ *gorm.DB, m *model.Machine) error {
	r.machines[m.ID] = m
	return nil
}

func (r *stubMachineRepo) CountByStatus(_ context.Context, status model.MachineStatus) (int64, error) {
	var n int64
	for _, m := range r.machines {
		if m.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubMachineRepo) TypeSummary(_ context.Context) ([]dto.MachineTypeSummary, error) {
	byType := make(map[string]*dto.MachineTypeSummary)
	for _, m := range r.machines {
		row, ok := byType[m.Type]
		if !ok {
			row = &dto.MachineTypeSummary{MachineType: m.Type}
			byType[m.Type] = row
		}
		row.Total++
		switch m.Status {
		case model.StatusOperational:
			row.Operational++
		case model.StatusUnderMaintenance:
			row.UnderMaintenance++
		case model.StatusOffline:
			row.Offline++
		}
	}
	out := make([]dto.MachineTypeSummary, 0, len(byType))
	for _, row := range byType {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MachineType < out[j].MachineType })
	return out, nil
}

func (r *stubMachineRepo) DB() *gorm.DB { return nil }

var _ repository.MachineRepository = (*stubMachineRepo)(nil)

// stubMachineLogRepo captures audit rows for assertion. failCreate makes
// every insert fail, to exercise the best-effort audit path.
type stubMachineLogRepo struct {
	logs       []model.MachineLog
	failCreate bool
}

func (r *stubMachineLogRepo) Create(_ context.Context, l *model.MachineLog) error {
	return r.CreateTx(nil, l)
}

func (r *stubMachineLogRepo) CreateTx(_ *gorm.DB, l *model.MachineLog) error {
	if r.failCreate {
		return errors.New("insert failed")
	}
	l.ID = uint(len(r.logs) + 1)
	r.logs = append(r.logs, *l)
	return nil
}

func (r *stubMachineLogRepo) LastN(_ context.Context, machineID uint, n int) ([]model.MachineLog, error) {
	var out []model.MachineLog
	for i := len(r.logs) - 1; i >= 0 && len(out) < n; i-- {
		if r.logs[i].MachineID == machineID {
			out = append(out, r.logs[i])
		}
	}
	return out, nil
}

var _ repository.MachineLogRepository = (*stubMachineLogRepo)(nil)

// stubOrderRepo is an in-memory CustomerOrderRepository.
type stubOrderRepo struct {
	orders []*model.CustomerOrder
	nextID uint
}

func (r *stubOrderRepo) Create(_ context.Context, o *model.CustomerOrder) error {
	r.nextID++
	o.ID = r.nextID
	r.orders = append(r.orders, o)
	return nil
}

func (r *stubOrderRepo) SumTotalAmount(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range r.orders {
		sum = sum.Add(o.TotalAmount)
	}
	return sum, nil
}

func (r *stubOrderRepo) SumTotalAmountBetween(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range r.orders {
		if !o.OrderDate.Before(from) && o.OrderDate.Before(to) {
			sum = sum.Add(o.TotalAmount)
		}
	}
	return sum, nil
}

func (r *stubOrderRepo) Recent(_ context.Context, n int) ([]model.CustomerOrder, error) {
	sorted := make([]model.CustomerOrder, 0, len(r.orders))
	for _, o := range r.orders {
		sorted = append(sorted, *o)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].OrderDate.After(sorted[j].OrderDate) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted, nil
}

func (r *stubOrderRepo) ExistsForUser(_ context.Context, userID uint) (bool, error) {
	for _, o := range r.orders {
		if o.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.CustomerOrderRepository = (*stubOrderRepo)(nil)

// stubProductionOrderRepo is an in-memory ProductionOrderRepository.
type stubProductionOrderRepo struct {
	orders []model.ProductionOrder
}

func (r *stubProductionOrderRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubProductionOrderRepo) ExistsForUser(_ context.Context, userID uint) (bool, error) {
	for _, o := range r.orders {
		if o.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.ProductionOrderRepository = (*stubProductionOrderRepo)(nil)

// stubProductRepo is an in-memory ProductRepository.
type stubProductRepo struct {
	products map[uint]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*model.Product)}
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubCartStore is an in-memory CartStore. failGet simulates a broken
// session backend.
type stubCartStore struct {
	carts   map[uint][]model.CartItem
	failGet bool
}

func newStubCartStore() *stubCartStore {
	return &stubCartStore{carts: make(map[uint][]model.CartItem)}
}

func (s *stubCartStore) Get(_ context.Context, userID uint) ([]model.CartItem, error) {
	if s.failGet {
		return nil, errors.New("connection refused")
	}
	items, ok := s.carts[userID]
	if !ok {
		return []model.CartItem{}, nil
	}
	return items, nil
}

func (s *stubCartStore) Save(_ context.Context, userID uint, items []model.CartItem) error {
	s.carts[userID] = items
	return nil
}

func (s *stubCartStore) Clear(_ context.Context, userID uint) error {
	delete(s.carts, userID)
	return nil
}

var _ repository.CartStore = (*stubCartStore)(nil)

// stubPaymentProvider records the last session request and returns a canned
// hosted session, or err when set.
type stubPaymentProvider struct {
	lastReq *infra.CheckoutSessionRequest
	err     error
}

func (p *stubPaymentProvider) CreateCheckoutSession(_ context.Context, req infra.CheckoutSessionRequest) (*infra.CheckoutSession, error) {
	p.lastReq = &req
	if p.err != nil {
		return nil, p.err
	}
	return &infra.CheckoutSession{ID: "cs_test_123", URL: "https://pay.example.test/cs_test_123"}, nil
}

var _ PaymentProvider = (*stubPaymentProvider)(nil)
