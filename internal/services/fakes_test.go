package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"chem-backend/internal/models"
	"chem-backend/internal/repositories"

	"github.com/google/uuid"
)

func ptr[T any](v T) *T { return &v }

type fakeChemicals struct {
	mu    sync.Mutex
	items map[string]*models.Chemical
	err   error
}

func newFakeChemicals(chems ...*models.Chemical) *fakeChemicals {
	f := &fakeChemicals{items: map[string]*models.Chemical{}}
	for _, c := range chems {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		f.items[c.ID] = c
	}
	return f
}

func (f *fakeChemicals) Create(_ context.Context, c *models.Chemical) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	f.items[c.ID] = c
	return nil
}

func (f *fakeChemicals) Get(_ context.Context, id string) (*models.Chemical, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeChemicals) all() []*models.Chemical {
	out := []*models.Chemical{}
	for _, c := range f.items {
		out = append(out, c)
	}
	return out
}

func (f *fakeChemicals) List(context.Context) ([]*models.Chemical, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.all(), nil
}

func (f *fakeChemicals) Search(_ context.Context, q string) ([]*models.Chemical, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q = strings.ToLower(q)
	out := []*models.Chemical{}
	for _, c := range f.items {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.BatchNumber), q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeChemicals) FindByQuantityBelow(_ context.Context, n float64) ([]*models.Chemical, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return LowStock(f.all(), n), nil
}

func (f *fakeChemicals) FindByExpirationWindow(_ context.Context, start, end time.Time) ([]*models.Chemical, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return ExpiringSoon(f.all(), start, end.Sub(start)), nil
}

func (f *fakeChemicals) Update(_ context.Context, c *models.Chemical) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[c.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.items[c.ID] = c
	return nil
}

func (f *fakeChemicals) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

// fakeSales joins chemicals at read time like the SQL store does
type fakeSales struct {
	mu        sync.Mutex
	chemicals *fakeChemicals
	items     []*models.Sale
	err       error
}

func (f *fakeSales) join(s *models.Sale) *models.Sale {
	cp := *s
	cp.Chemical = nil
	if f.chemicals != nil {
		if c, ok := f.chemicals.items[s.ChemicalID]; ok {
			cp.Chemical = &models.ChemicalRef{ID: c.ID, Name: c.Name, BatchNumber: c.BatchNumber, Unit: c.Unit, UnitPrice: c.UnitPrice}
		}
	}
	return &cp
}

func (f *fakeSales) Create(_ context.Context, s *models.Sale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	f.items = append(f.items, s)
	return nil
}

func (f *fakeSales) Get(_ context.Context, id string) (*models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.items {
		if s.ID == id {
			return f.join(s), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeSales) List(_ context.Context, filter models.ReportFilter) ([]*models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []*models.Sale{}
	for _, s := range f.items {
		if filter.Contains(s.SaleDate) {
			out = append(out, f.join(s))
		}
	}
	return out, nil
}

func (f *fakeSales) Update(_ context.Context, s *models.Sale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == s.ID {
			f.items[i] = s
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeSales) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.items {
		if s.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakePurchases struct {
	mu        sync.Mutex
	chemicals *fakeChemicals
	items     []*models.Purchase
	err       error
}

func (f *fakePurchases) join(p *models.Purchase) *models.Purchase {
	cp := *p
	cp.Chemical = nil
	if f.chemicals != nil {
		if c, ok := f.chemicals.items[p.ChemicalID]; ok {
			cp.Chemical = &models.ChemicalRef{ID: c.ID, Name: c.Name, BatchNumber: c.BatchNumber, Unit: c.Unit, UnitPrice: c.UnitPrice}
		}
	}
	return &cp
}

func (f *fakePurchases) Create(_ context.Context, p *models.Purchase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	f.items = append(f.items, p)
	return nil
}

func (f *fakePurchases) Get(_ context.Context, id string) (*models.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.ID == id {
			return f.join(p), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePurchases) List(_ context.Context, filter models.ReportFilter) ([]*models.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []*models.Purchase{}
	for _, p := range f.items {
		if filter.Contains(p.PurchaseDate) {
			out = append(out, f.join(p))
		}
	}
	return out, nil
}

func (f *fakePurchases) Update(_ context.Context, p *models.Purchase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == p.ID {
			f.items[i] = p
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakePurchases) UpdatePaymentStatus(_ context.Context, id string, status models.PaymentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.ID == id {
			p.PaymentStatus = status
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakePurchases) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.items {
		if p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeUsers struct {
	mu    sync.Mutex
	items []*models.User
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.Username == u.Username {
			return repositories.ErrDuplicateUsername
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	f.items = append(f.items, u)
	return nil
}

func (f *fakeUsers) CreateAutoRole(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	u.Role = models.RoleStaff
	if len(f.items) == 0 {
		u.Role = models.RoleAdmin
	}
	f.mu.Unlock()
	return f.Create(ctx, u)
}

func (f *fakeUsers) find(match func(*models.User) bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.items {
		if match(u) {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUsers) Get(_ context.Context, id string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.ID == id })
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Username == username })
}

func (f *fakeUsers) SetTOTPSecret(_ context.Context, userID, secret string) error {
	u, err := f.find(func(u *models.User) bool { return u.ID == userID })
	if err != nil {
		return err
	}
	u.TOTPSecret, u.TOTPEnabled = secret, false
	return nil
}

func (f *fakeUsers) EnableTOTP(_ context.Context, userID string) error {
	u, err := f.find(func(u *models.User) bool { return u.ID == userID })
	if err != nil {
		return err
	}
	u.TOTPEnabled = true
	return nil
}

type fakeRevoker struct {
	revoked map[string]time.Duration
}

func (f *fakeRevoker) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if f.revoked == nil {
		f.revoked = map[string]time.Duration{}
	}
	f.revoked[id] = ttl
	return nil
}
