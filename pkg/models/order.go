package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Supplier struct {
	ID            int        `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	ContactPerson *string    `json:"contactPerson" db:"contact_person"`
	Email         *string    `json:"email" db:"email"`
	Phone         *string    `json:"phone" db:"phone"`
	Address       *string    `json:"address" db:"address"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     *time.Time `json:"updatedAt" db:"updated_at"`
}

func (s *Supplier) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   s.ID,
		ResourceType: "supplier",
	}
}

type SupplierRequest struct {
	Name          string  `json:"name" binding:"required"`
	ContactPerson *string `json:"contactPerson"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
}

type Order struct {
	ID          int        `json:"id" db:"id"`
	OrderNumber string     `json:"orderNumber" db:"order_number"`
	OrderDate   time.Time  `json:"orderDate" db:"order_date"`
	Status      *string    `json:"status" db:"status"`
	SupplierID  *int       `json:"supplierId" db:"supplier_id"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   *time.Time `json:"updatedAt" db:"updated_at"`
}

func (o *Order) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   o.ID,
		ResourceType: "order",
	}
}

// OrderView joins the supplier name and the assigned-item count at
// query time; the count is never stored.
type OrderView struct {
	ID                int        `json:"id" db:"id"`
	OrderNumber       string     `json:"orderNumber" db:"order_number"`
	OrderDate         time.Time  `json:"orderDate" db:"order_date"`
	Status            *string    `json:"status" db:"status"`
	Supplier          *string    `json:"supplier" db:"supplier_name"`
	SupplierID        *int       `json:"supplierId" db:"supplier_id"`
	AssignedItemCount int        `json:"assignedItemCount" db:"assigned_item_count"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         *time.Time `json:"updatedAt" db:"updated_at"`
}

type CreateOrderRequest struct {
	OrderNumber string     `json:"orderNumber" binding:"required"`
	OrderDate   *time.Time `json:"orderDate"`
	Status      *string    `json:"status"`
	SupplierID  *int       `json:"supplierId"`
}

type UpdateOrderRequest struct {
	OrderNumber *string    `json:"orderNumber"`
	OrderDate   *time.Time `json:"orderDate"`
	Status      *string    `json:"status"`
	SupplierID  *int       `json:"supplierId"`
}

type OrderAssignedItem struct {
	ID              int             `json:"id" db:"id"`
	OrderID         int             `json:"orderId" db:"order_id"`
	ProductID       int             `json:"productId" db:"product_id"`
	DefaultQuantity decimal.Decimal `json:"defaultQuantity" db:"default_quantity"`
	Unit            string          `json:"unit" db:"unit"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       *time.Time      `json:"updatedAt" db:"updated_at"`
}

func (o *OrderAssignedItem) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   o.ID,
		ResourceType: "order_assignment",
	}
}

type OrderAssignmentView struct {
	ID              int             `json:"id" db:"id"`
	OrderID         int             `json:"orderId" db:"order_id"`
	ProductID       int             `json:"productId" db:"product_id"`
	ProductName     string          `json:"productName" db:"product_name"`
	ProductSku      string          `json:"productSku" db:"product_sku"`
	DefaultQuantity decimal.Decimal `json:"defaultQuantity" db:"default_quantity"`
	Unit            string          `json:"unit" db:"unit"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       *time.Time      `json:"updatedAt" db:"updated_at"`
}

type CreateAssignmentRequest struct {
	ProductID       int              `json:"productId" binding:"required"`
	DefaultQuantity *decimal.Decimal `json:"defaultQuantity"`
	Unit            *string          `json:"unit"`
}
