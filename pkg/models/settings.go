package models

import "time"

// WarenausgangReason is a soft-activatable dropdown entry for the
// stock-out form. Ledger rows keep free text and are not constrained
// to this catalog.
type WarenausgangReason struct {
	ID         int        `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	OrderIndex int        `json:"orderIndex" db:"order_index"`
	IsActive   bool       `json:"isActive" db:"is_active"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  *time.Time `json:"updatedAt" db:"updated_at"`
}

func (r *WarenausgangReason) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   r.ID,
		ResourceType: "warenausgang_reason",
	}
}

type CreateReasonRequest struct {
	Name       string `json:"name" binding:"required"`
	OrderIndex int    `json:"orderIndex"`
}

type UpdateReasonRequest struct {
	Name       *string `json:"name"`
	OrderIndex *int    `json:"orderIndex"`
	IsActive   *bool   `json:"isActive"`
}

type JustificationTemplate struct {
	ID         int        `json:"id" db:"id"`
	Text       string     `json:"text" db:"text"`
	OrderIndex int        `json:"orderIndex" db:"order_index"`
	IsActive   bool       `json:"isActive" db:"is_active"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  *time.Time `json:"updatedAt" db:"updated_at"`
}

func (j *JustificationTemplate) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   j.ID,
		ResourceType: "justification_template",
	}
}

type CreateJustificationRequest struct {
	Text       string `json:"text" binding:"required"`
	OrderIndex int    `json:"orderIndex"`
}

type UpdateJustificationRequest struct {
	Text       *string `json:"text"`
	OrderIndex *int    `json:"orderIndex"`
	IsActive   *bool   `json:"isActive"`
}
