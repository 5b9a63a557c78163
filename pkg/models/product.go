package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              int             `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Description     *string         `json:"description" db:"description"`
	SKU             string          `json:"sku" db:"sku"`
	Price           decimal.Decimal `json:"price" db:"price"`
	ItemType        string          `json:"itemType" db:"item_type"`
	StockQuantity   int             `json:"stockQuantity" db:"stock_quantity"`
	LocationStock   decimal.Decimal `json:"locationStock" db:"location_stock"`
	Unit            *string         `json:"unit" db:"unit"`
	DefaultSupplier *string         `json:"defaultSupplier" db:"default_supplier"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       *time.Time      `json:"updatedAt" db:"updated_at"`
}

func (p *Product) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   p.ID,
		ResourceType: "product",
	}
}

type ProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   *string         `json:"description"`
	SKU           string          `json:"sku" binding:"required"`
	Price         decimal.Decimal `json:"price"`
	ItemType      string          `json:"itemType"`
	StockQuantity int             `json:"stockQuantity"`
	LocationStock decimal.Decimal `json:"locationStock"`
	Unit          *string         `json:"unit"`
}
