// Package invoice projects a completed sale into printable documents:
// JSON, a fixed-width thermal receipt and a PDF tax invoice.
package invoice

import (
	"context"
	"fmt"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/access"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/repository"
)

// PDFGenerator renders an invoice to PDF bytes.
type PDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv dto.InvoiceResponse) ([]byte, error)
}

// InvoiceUseCase read-only invoice renderings of a sale.
type InvoiceUseCase struct {
	sales  repository.SaleRepository
	stores repository.StoreRepository
	guard  *access.Guard
	pdf    PDFGenerator
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(sales repository.SaleRepository, stores repository.StoreRepository, guard *access.Guard, pdf PDFGenerator) *InvoiceUseCase {
	return &InvoiceUseCase{sales: sales, stores: stores, guard: guard, pdf: pdf}
}

// GetInvoice returns the invoice of a sale. The caller must be an admin,
// the owner of the (active) store or the cashier who rang up the sale.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, caller access.Caller, saleID string) (*dto.InvoiceResponse, error) {
	if err := access.RequireCaller(caller); err != nil {
		return nil, err
	}
	inv, cashierID, ownerID, err := uc.load(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if caller.UserID != cashierID && caller.UserID != ownerID {
		if err := uc.guard.RequireAdmin(ctx, caller); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

// Build assembles the invoice without an access check (operator tooling).
func (uc *InvoiceUseCase) Build(ctx context.Context, saleID string) (*dto.InvoiceResponse, error) {
	inv, _, _, err := uc.load(ctx, saleID)
	return inv, err
}

// Receipt renders the invoice as a thermal-printer receipt.
func (uc *InvoiceUseCase) Receipt(ctx context.Context, caller access.Caller, saleID string) (string, error) {
	inv, err := uc.GetInvoice(ctx, caller, saleID)
	if err != nil {
		return "", err
	}
	return RenderReceipt(*inv), nil
}

// PDF renders the invoice as a PDF and suggests a file name.
func (uc *InvoiceUseCase) PDF(ctx context.Context, caller access.Caller, saleID string) ([]byte, string, error) {
	inv, err := uc.GetInvoice(ctx, caller, saleID)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.pdf.GenerateInvoicePDF(ctx, *inv)
	if err != nil {
		return nil, "", fmt.Errorf("render invoice pdf: %w", err)
	}
	return doc, inv.SaleNumber + ".pdf", nil
}

func (uc *InvoiceUseCase) load(ctx context.Context, saleID string) (inv *dto.InvoiceResponse, cashierID, ownerID string, err error) {
	sale, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", "", err
	}
	if sale == nil {
		return nil, "", "", fmt.Errorf("%w: sale %s", domain.ErrNotFound, saleID)
	}
	store, err := uc.stores.GetByID(ctx, sale.StoreID)
	if err != nil {
		return nil, "", "", err
	}
	if store == nil {
		return nil, "", "", fmt.Errorf("%w: store %s", domain.ErrNotFound, sale.StoreID)
	}
	items, err := uc.sales.GetItems(ctx, sale.ID)
	if err != nil {
		return nil, "", "", err
	}

	out := &dto.InvoiceResponse{
		Store: dto.InvoiceStore{
			Name:      store.Name,
			Address:   store.Address,
			Phone:     store.Phone,
			GSTNumber: store.GSTNumber,
		},
		SaleID:        sale.ID,
		SaleNumber:    sale.SaleNumber,
		Date:          sale.CreatedAt,
		CustomerName:  sale.CustomerName,
		CustomerPhone: sale.CustomerPhone,
		Items:         make([]dto.InvoiceLine, 0, len(items)),
		Subtotal:      sale.Subtotal,
		TaxAmount:     sale.TaxAmount,
		Total:         sale.TotalAmount,
		PaymentMethod: sale.PaymentMethod,
	}
	if sale.DiscountAmount.IsPositive() {
		d := sale.DiscountAmount
		out.Discount = &d
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.InvoiceLine{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			TotalPrice:  it.TotalPrice,
		})
	}
	if store.IsActive {
		ownerID = store.OwnerID
	}
	return out, sale.CashierID, ownerID, nil
}
