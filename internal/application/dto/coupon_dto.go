package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateKuponRequest alta de cupón.
type CreateKuponRequest struct {
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	DiscountType   string          `json:"discount_type"` // nominal | percent
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	IsActive       *bool           `json:"is_active"`
	MaxUsage       int             `json:"max_usage"` // 0 = ilimitado
}

// UpdateKuponRequest modificación parcial de cupón.
type UpdateKuponRequest struct {
	Code           *string          `json:"code"`
	DiscountAmount *decimal.Decimal `json:"discount_amount"`
	DiscountType   *string          `json:"discount_type"`
	StartDate      *time.Time       `json:"start_date"`
	EndDate        *time.Time       `json:"end_date"`
	IsActive       *bool            `json:"is_active"`
	MaxUsage       *int             `json:"max_usage"`
}

// RedeemKuponRequest canje de cupón por código.
type RedeemKuponRequest struct {
	Code string `json:"code"`
}

// KuponResponse representación pública de un cupón.
type KuponResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	DiscountType   string          `json:"discount_type"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	IsActive       bool            `json:"is_active"`
	MaxUsage       int             `json:"max_usage"`
	CurrentUsage   int             `json:"current_usage"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
