// Package catalog is the product catalog of a store: search, CRUD and quick-add.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/access"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	rules "github.com/AppHatchery-01/kirana-pos-easy/internal/domain/catalog"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// CatalogUseCase product operations scoped to a store the caller can access.
type CatalogUseCase struct {
	repo  repository.ProductRepository
	guard *access.Guard
	now   func() time.Time
}

// NewCatalogUseCase builds the use case.
func NewCatalogUseCase(repo repository.ProductRepository, guard *access.Guard) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, guard: guard, now: time.Now}
}

// WithClock replaces time.Now (tests).
func (uc *CatalogUseCase) WithClock(now func() time.Time) *CatalogUseCase {
	uc.now = now
	return uc
}

// List the store's products newest first. A non-empty query keeps only
// products whose name, sku or barcode contain it, ignoring case.
func (uc *CatalogUseCase) List(ctx context.Context, caller access.Caller, storeID, query string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	if _, err := uc.guard.Store(ctx, caller, storeID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		StoreID: storeID,
		Query:   strings.TrimSpace(query),
		Limit:   page.Limit,
		Offset:  page.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: uc.toResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListSellable active products with stock, by name, for the POS grid.
func (uc *CatalogUseCase) ListSellable(ctx context.Context, caller access.Caller, storeID string) ([]dto.ProductResponse, error) {
	if _, err := uc.guard.Store(ctx, caller, storeID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListSellable(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(list), nil
}

// Get one product.
func (uc *CatalogUseCase) Get(ctx context.Context, caller access.Caller, id string) (*dto.ProductResponse, error) {
	p, err := uc.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	resp := uc.toResponse(p)
	return &resp, nil
}

// Create adds a product to the store.
func (uc *CatalogUseCase) Create(ctx context.Context, caller access.Caller, storeID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if _, err := uc.guard.Store(ctx, caller, storeID); err != nil {
		return nil, err
	}
	expiry, err := parseDate(in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	p := &entity.Product{
		ID:            uuid.New().String(),
		StoreID:       storeID,
		Name:          in.Name,
		SKU:           strings.TrimSpace(in.SKU),
		Barcode:       strings.TrimSpace(in.Barcode),
		Category:      strings.TrimSpace(in.Category),
		Price:         in.Price,
		CostPrice:     in.CostPrice,
		StockQuantity: in.StockQuantity,
		MinStockLevel: in.MinStockLevel,
		Unit:          strings.TrimSpace(in.Unit),
		TaxRate:       in.TaxRate,
		ExpiryDate:    expiry,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return uc.insert(ctx, p)
}

// QuickAdd creates a product from name, category, price and stock, filling
// the rest from the quick templates.
func (uc *CatalogUseCase) QuickAdd(ctx context.Context, caller access.Caller, storeID string, in dto.QuickAddProductRequest) (*dto.ProductResponse, error) {
	if _, err := uc.guard.Store(ctx, caller, storeID); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	p, err := rules.QuickProduct(storeID, in.Name, strings.TrimSpace(in.Category), in.Price, in.StockQuantity, now)
	if err != nil {
		return nil, err
	}
	p.ID = uuid.New().String()
	p.CreatedAt, p.UpdatedAt = now, now
	return uc.insert(ctx, p)
}

func (uc *CatalogUseCase) insert(ctx context.Context, p *entity.Product) (*dto.ProductResponse, error) {
	if err := rules.Validate(p); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := uc.toResponse(p)
	return &resp, nil
}

// Update applies the non-nil fields of in.
func (uc *CatalogUseCase) Update(ctx context.Context, caller access.Caller, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.SKU != nil {
		p.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Barcode != nil {
		p.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.CostPrice != nil {
		p.CostPrice = *in.CostPrice
	}
	if in.StockQuantity != nil {
		p.StockQuantity = *in.StockQuantity
	}
	if in.MinStockLevel != nil {
		p.MinStockLevel = *in.MinStockLevel
	}
	if in.Unit != nil {
		p.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.TaxRate != nil {
		p.TaxRate = *in.TaxRate
	}
	if in.ExpiryDate != nil {
		if p.ExpiryDate, err = parseDate(*in.ExpiryDate); err != nil {
			return nil, err
		}
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := rules.Validate(p); err != nil {
		return nil, err
	}
	p.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := uc.toResponse(p)
	return &resp, nil
}

// Delete removes the product.
func (uc *CatalogUseCase) Delete(ctx context.Context, caller access.Caller, id string) error {
	if _, err := uc.load(ctx, caller, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CatalogUseCase) load(ctx context.Context, caller access.Caller, id string) (*entity.Product, error) {
	if err := access.RequireCaller(caller); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	if _, err := uc.guard.Store(ctx, caller, p.StoreID); err != nil {
		return nil, err
	}
	return p, nil
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: expiry_date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return &t, nil
}

func (uc *CatalogUseCase) toResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, uc.toResponse(p))
	}
	return out
}

func (uc *CatalogUseCase) toResponse(p *entity.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:            p.ID,
		StoreID:       p.StoreID,
		Name:          p.Name,
		SKU:           p.SKU,
		Barcode:       p.Barcode,
		Category:      p.Category,
		Price:         p.Price,
		CostPrice:     p.CostPrice,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		Unit:          p.Unit,
		TaxRate:       p.TaxRate,
		IsActive:      p.IsActive,
		LowStock:      p.IsLowStock(),
		ExpiryStatus:  rules.ExpiryStatus(p.ExpiryDate, uc.now()),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.ExpiryDate != nil {
		resp.ExpiryDate = p.ExpiryDate.Format(dateLayout)
	}
	return resp
}
