package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectAssignedItem binds a product to an external project key. The
// key is an opaque string independent of any structured project table.
type ProjectAssignedItem struct {
	ID              int             `json:"id" db:"id"`
	ProjectKey      string          `json:"projectKey" db:"project_key"`
	ProductID       int             `json:"productId" db:"product_id"`
	DefaultQuantity decimal.Decimal `json:"defaultQuantity" db:"default_quantity"`
	Unit            string          `json:"unit" db:"unit"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       *time.Time      `json:"updatedAt" db:"updated_at"`
}

func (p *ProjectAssignedItem) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   p.ID,
		ResourceType: "project_assignment",
	}
}

type ProjectAssignmentView struct {
	ID              int             `json:"id" db:"id"`
	ProjectKey      string          `json:"projectKey" db:"project_key"`
	ProductID       int             `json:"productId" db:"product_id"`
	ProductName     string          `json:"productName" db:"product_name"`
	ProductSku      string          `json:"productSku" db:"product_sku"`
	DefaultQuantity decimal.Decimal `json:"defaultQuantity" db:"default_quantity"`
	Unit            string          `json:"unit" db:"unit"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       *time.Time      `json:"updatedAt" db:"updated_at"`
}
