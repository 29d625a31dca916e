package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreResponse public view of a store.
type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	GSTNumber string    `json:"gst_number,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ProvisionStoreOwnerRequest body of POST /create-store-owner.
type ProvisionStoreOwnerRequest struct {
	StoreName     string `json:"storeName"`
	OwnerName     string `json:"ownerName"`
	OwnerEmail    string `json:"ownerEmail"`
	OwnerPassword string `json:"ownerPassword"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	GSTNumber     string `json:"gstNumber,omitempty"`
}

// ProvisionStoreOwnerResponse success body of POST /create-store-owner.
type ProvisionStoreOwnerResponse struct {
	Success bool   `json:"success"`
	OwnerID string `json:"owner_id"`
	StoreID string `json:"store_id"`
}

// StoreDashboardResponse owner's landing page numbers.
type StoreDashboardResponse struct {
	Store         StoreResponse   `json:"store"`
	TodaySales    decimal.Decimal `json:"today_sales"`
	TotalProducts int             `json:"total_products"`
	LowStockCount int             `json:"low_stock_count"`
}

// AdminDashboardResponse platform overview.
type AdminDashboardResponse struct {
	TotalStores  int             `json:"total_stores"`
	ActiveStores int             `json:"active_stores"`
	Stores       []StoreResponse `json:"stores"`
}
