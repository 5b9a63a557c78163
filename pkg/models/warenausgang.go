package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Warenausgang is a goods-issue ledger row. Negative resulting stock
// is permitted, the quantity is whole units only.
type Warenausgang struct {
	ID          int             `json:"id" db:"id"`
	ProductID   int             `json:"productId" db:"product_id"`
	Quantity    int             `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
	TotalPrice  decimal.Decimal `json:"totalPrice" db:"total_price"`
	Customer    *string         `json:"customer" db:"customer"`
	OrderNumber *string         `json:"orderNumber" db:"order_number"`
	Notes       *string         `json:"notes" db:"notes"`
	Attribut    *string         `json:"attribut" db:"attribut"`
	ProjectName *string         `json:"projectName" db:"project_name"`
	Begruendung *string         `json:"begruendung" db:"begruendung"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   *time.Time      `json:"updatedAt" db:"updated_at"`
}

func (w *Warenausgang) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   w.ID,
		ResourceType: "warenausgang",
	}
}

type WarenausgangView struct {
	ID          int             `json:"id" db:"id"`
	ProductID   int             `json:"productId" db:"product_id"`
	ProductName string          `json:"productName" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
	TotalPrice  decimal.Decimal `json:"totalPrice" db:"total_price"`
	Customer    *string         `json:"customer" db:"customer"`
	OrderNumber *string         `json:"orderNumber" db:"order_number"`
	Notes       *string         `json:"notes" db:"notes"`
	Attribut    *string         `json:"attribut" db:"attribut"`
	ProjectName *string         `json:"projectName" db:"project_name"`
	Begruendung *string         `json:"begruendung" db:"begruendung"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   *time.Time      `json:"updatedAt" db:"updated_at"`
}

type WarenausgangRequest struct {
	ProductID   int             `json:"productId" binding:"required"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Customer    *string         `json:"customer"`
	OrderNumber *string         `json:"orderNumber"`
	Notes       *string         `json:"notes"`
	Attribut    *string         `json:"attribut"`
	ProjectName *string         `json:"projectName"`
	Begruendung *string         `json:"begruendung"`
}
