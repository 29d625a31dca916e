// Package fakes provides in-memory implementations of the repository ports
// for use case and handler tests.
package fakes

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/catalog"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/repository"
)

// Products in-memory ProductRepository.
type Products struct {
	mu   sync.Mutex
	rows map[string]entity.Product
	// Writes counts mutating calls.
	Writes int
}

func NewProducts(ps ...*entity.Product) *Products {
	f := &Products{rows: map[string]entity.Product{}}
	for _, p := range ps {
		f.rows[p.ID] = *p
	}
	return f
}

func (f *Products) clone() *Products {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := &Products{rows: make(map[string]entity.Product, len(f.rows))}
	for k, v := range f.rows {
		c.rows[k] = v
	}
	return c
}

func (f *Products) Create(_ context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes++
	f.rows[p.ID] = *p
	return nil
}

func (f *Products) GetByID(_ context.Context, id string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *Products) Update(_ context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes++
	if _, ok := f.rows[p.ID]; !ok {
		return domain.ErrNotFound
	}
	f.rows[p.ID] = *p
	return nil
}

func (f *Products) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes++
	if _, ok := f.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *Products) all(storeID string) []*entity.Product {
	var out []*entity.Product
	for _, p := range f.rows {
		if p.StoreID == storeID {
			p := p
			out = append(out, &p)
		}
	}
	return out
}

func (f *Products) List(_ context.Context, flt repository.ProductFilter) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Product
	for _, p := range f.all(flt.StoreID) {
		if catalog.MatchesQuery(p, flt.Query) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, flt.Limit, flt.Offset), nil
}

func (f *Products) ListSellable(_ context.Context, storeID string) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Product
	for _, p := range f.all(storeID) {
		if p.IsActive && p.StockQuantity > 0 {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *Products) CountByStore(_ context.Context, storeID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.all(storeID)), nil
}

func (f *Products) CountLowStock(_ context.Context, storeID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.all(storeID) {
		if p.IsLowStock() {
			n++
		}
	}
	return n, nil
}

func (f *Products) DecrementStock(_ context.Context, productID string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes++
	p, ok := f.rows[productID]
	if !ok || p.StockQuantity < qty {
		return fmt.Errorf("%w: product %s", domain.ErrInsufficientStock, productID)
	}
	p.StockQuantity -= qty
	f.rows[productID] = p
	return nil
}

// Stock current stock of a product, -1 when absent.
func (f *Products) Stock(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.rows[id]; ok {
		return p.StockQuantity
	}
	return -1
}

// SetStock changes stock behind the back of any cart snapshot.
func (f *Products) SetStock(id string, qty int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.rows[id]
	p.StockQuantity = qty
	f.rows[id] = p
}

// Stores in-memory StoreRepository. CreateErr and DeleteErr inject failures.
type Stores struct {
	mu        sync.Mutex
	rows      map[string]entity.Store
	CreateErr error
	DeleteErr error
	Deleted   []string
}

func NewStores(ss ...*entity.Store) *Stores {
	f := &Stores{rows: map[string]entity.Store{}}
	for _, s := range ss {
		f.rows[s.ID] = *s
	}
	return f
}

func (f *Stores) Create(_ context.Context, s *entity.Store) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return f.CreateErr
	}
	for _, existing := range f.rows {
		if existing.OwnerID == s.OwnerID {
			return fmt.Errorf("%w: owner already has a store", domain.ErrDuplicate)
		}
	}
	f.rows[s.ID] = *s
	return nil
}

func (f *Stores) GetByID(_ context.Context, id string) (*entity.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *Stores) GetByOwner(_ context.Context, ownerID string) (*entity.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.rows {
		if s.OwnerID == ownerID {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (f *Stores) List(_ context.Context) ([]*entity.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Store
	for _, s := range f.rows {
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *Stores) SetActive(_ context.Context, id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.IsActive = active
	f.rows[id] = s
	return nil
}

func (f *Stores) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, id)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	delete(f.rows, id)
	return nil
}

// Len number of stored rows.
func (f *Stores) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// Sales in-memory SaleRepository. ItemsErr injects a failure into CreateItems.
type Sales struct {
	mu       sync.Mutex
	sales    map[string]entity.Sale
	items    map[string][]entity.SaleItem
	ItemsErr error
}

func NewSales() *Sales {
	return &Sales{sales: map[string]entity.Sale{}, items: map[string][]entity.SaleItem{}}
}

func (f *Sales) clone() *Sales {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := NewSales()
	c.ItemsErr = f.ItemsErr
	for k, v := range f.sales {
		c.sales[k] = v
	}
	for k, v := range f.items {
		c.items[k] = append([]entity.SaleItem(nil), v...)
	}
	return c
}

func (f *Sales) Create(_ context.Context, s *entity.Sale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sales[s.ID] = *s
	return nil
}

func (f *Sales) CreateItems(_ context.Context, items []*entity.SaleItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ItemsErr != nil {
		return f.ItemsErr
	}
	for _, it := range items {
		f.items[it.SaleID] = append(f.items[it.SaleID], *it)
	}
	return nil
}

func (f *Sales) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sales[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *Sales) GetItems(_ context.Context, saleID string) ([]*entity.SaleItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.SaleItem
	for _, it := range f.items[saleID] {
		it := it
		out = append(out, &it)
	}
	return out, nil
}

func (f *Sales) ListByStore(_ context.Context, storeID string, limit, offset int) ([]*entity.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Sale
	for _, s := range f.sales {
		if s.StoreID == storeID {
			s := s
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (f *Sales) SumTotalSince(_ context.Context, storeID string, since time.Time) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := decimal.Zero
	for _, s := range f.sales {
		if s.StoreID == storeID && !s.CreatedAt.Before(since) {
			total = total.Add(s.TotalAmount)
		}
	}
	return total, nil
}

// Count committed sales.
func (f *Sales) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sales)
}

// ItemCount committed sale items across all sales.
func (f *Sales) ItemCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, v := range f.items {
		n += len(v)
	}
	return n
}

// Put stores a sale and its items directly.
func (f *Sales) Put(s *entity.Sale, items ...*entity.SaleItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sales[s.ID] = *s
	for _, it := range items {
		f.items[s.ID] = append(f.items[s.ID], *it)
	}
}

// TxRunner runs the checkout callback against copies of the repositories and
// publishes them only when the callback succeeds, like a commit.
type TxRunner struct {
	Sales    *Sales
	Products *Products
	Calls    int
}

func (t *TxRunner) RunCheckout(_ context.Context, fn func(repository.SaleRepository, repository.ProductRepository) error) error {
	t.Calls++
	sales, products := t.Sales.clone(), t.Products.clone()
	if err := fn(sales, products); err != nil {
		return err
	}
	t.Sales.mu.Lock()
	t.Sales.sales, t.Sales.items = sales.sales, sales.items
	t.Sales.mu.Unlock()
	t.Products.mu.Lock()
	t.Products.rows = products.rows
	t.Products.Writes += products.Writes
	t.Products.mu.Unlock()
	return nil
}

// Users in-memory UserRepository. CreateErr and DeleteErr inject failures.
type Users struct {
	mu        sync.Mutex
	rows      map[string]entity.User
	CreateErr error
	DeleteErr error
	Deleted   []string
}

func NewUsers(us ...*entity.User) *Users {
	f := &Users{rows: map[string]entity.User{}}
	for _, u := range us {
		f.rows[u.ID] = *u
	}
	return f
}

func (f *Users) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return f.CreateErr
	}
	for _, existing := range f.rows {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	f.rows[u.ID] = *u
	return nil
}

func (f *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *Users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (f *Users) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, id)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	delete(f.rows, id)
	return nil
}

// Len number of stored identities.
func (f *Users) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// Roles in-memory RoleRepository. HasRoleErr and AssignErr inject failures.
type Roles struct {
	mu           sync.Mutex
	rows         map[string]map[string]bool
	HasRoleErr   error
	AssignErr    error
	HasRoleCalls int
}

func NewRoles() *Roles {
	return &Roles{rows: map[string]map[string]bool{}}
}

// Grant adds a role without going through Assign.
func (f *Roles) Grant(userID, role string) *Roles {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rows[userID] == nil {
		f.rows[userID] = map[string]bool{}
	}
	f.rows[userID][role] = true
	return f
}

func (f *Roles) HasRole(_ context.Context, userID, role string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.HasRoleCalls++
	if f.HasRoleErr != nil {
		return false, f.HasRoleErr
	}
	return f.rows[userID][role], nil
}

func (f *Roles) Assign(_ context.Context, a *entity.RoleAssignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AssignErr != nil {
		return f.AssignErr
	}
	if f.rows[a.UserID][a.Role] {
		return fmt.Errorf("%w: role %s already assigned", domain.ErrDuplicate, a.Role)
	}
	if f.rows[a.UserID] == nil {
		f.rows[a.UserID] = map[string]bool{}
	}
	f.rows[a.UserID][a.Role] = true
	return nil
}

func (f *Roles) ListByUser(_ context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for r := range f.rows[userID] {
		out = append(out, r)
	}
	sort.Strings(out)
	return out, nil
}

// Count total role assignments.
func (f *Roles) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, m := range f.rows {
		n += len(m)
	}
	return n
}

func page[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}

var (
	_ repository.ProductRepository = (*Products)(nil)
	_ repository.StoreRepository   = (*Stores)(nil)
	_ repository.SaleRepository    = (*Sales)(nil)
	_ repository.UserRepository    = (*Users)(nil)
	_ repository.RoleRepository    = (*Roles)(nil)
)
