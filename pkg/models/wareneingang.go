package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wareneingang is a goods-receipt ledger row. Quantity is decimal to
// support fractional pallet conversions.
type Wareneingang struct {
	ID            int             `json:"id" db:"id"`
	ProductID     int             `json:"productId" db:"product_id"`
	Quantity      decimal.Decimal `json:"quantity" db:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice" db:"unit_price"`
	TotalPrice    decimal.Decimal `json:"totalPrice" db:"total_price"`
	Erfassungstyp *string         `json:"erfassungstyp" db:"erfassungstyp"`
	Referenz      *string         `json:"referenz" db:"referenz"`
	Location      *string         `json:"location" db:"location"`
	Supplier      *string         `json:"supplier" db:"supplier"`
	BatchNumber   *string         `json:"batchNumber" db:"batch_number"`
	ExpiryDate    *time.Time      `json:"expiryDate" db:"expiry_date"`
	Notes         *string         `json:"notes" db:"notes"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     *time.Time      `json:"updatedAt" db:"updated_at"`
}

func (w *Wareneingang) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   w.ID,
		ResourceType: "wareneingang",
	}
}

// WareneingangView is the flat row joined with its product, projected
// straight from the list/get queries.
type WareneingangView struct {
	ID            int             `json:"id" db:"id"`
	ProductID     int             `json:"productId" db:"product_id"`
	ProductName   string          `json:"productName" db:"product_name"`
	ProductSku    string          `json:"productSku" db:"product_sku"`
	ProductType   string          `json:"productType" db:"product_type"`
	Quantity      decimal.Decimal `json:"quantity" db:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice" db:"unit_price"`
	TotalPrice    decimal.Decimal `json:"totalPrice" db:"total_price"`
	Erfassungstyp *string         `json:"erfassungstyp" db:"erfassungstyp"`
	Referenz      *string         `json:"referenz" db:"referenz"`
	Location      *string         `json:"location" db:"location"`
	Supplier      *string         `json:"supplier" db:"supplier"`
	BatchNumber   *string         `json:"batchNumber" db:"batch_number"`
	ExpiryDate    *time.Time      `json:"expiryDate" db:"expiry_date"`
	Notes         *string         `json:"notes" db:"notes"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     *time.Time      `json:"updatedAt" db:"updated_at"`
}

type WareneingangRequest struct {
	ProductID     int             `json:"productId" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Erfassungstyp *string         `json:"erfassungstyp"`
	Referenz      *string         `json:"referenz"`
	Location      *string         `json:"location"`
	Supplier      *string         `json:"supplier"`
	BatchNumber   *string         `json:"batchNumber"`
	ExpiryDate    *time.Time      `json:"expiryDate"`
	Notes         *string         `json:"notes"`
}
