package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de descuento válidos para Coupon.
const (
	DiscountTypeNominal = "nominal"
	DiscountTypePercent = "percent"
)

// Coupon es un cupón de descuento. Invariante: CurrentUsage nunca supera
// MaxUsage cuando MaxUsage > 0; el incremento se hace con un UPDATE
// condicional en la DB, nunca leer-modificar-escribir.
type Coupon struct {
	ID             string
	Code           string // único
	DiscountAmount decimal.Decimal
	DiscountType   string // nominal, percent
	StartDate      time.Time
	EndDate        time.Time
	IsActive       bool
	MaxUsage       int // 0 = ilimitado
	CurrentUsage   int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Redeemable indica si el cupón puede canjearse en el instante dado:
// activo, dentro de la ventana [StartDate, EndDate] y con usos restantes.
func (c *Coupon) Redeemable(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if now.Before(c.StartDate) || now.After(c.EndDate) {
		return false
	}
	if c.MaxUsage > 0 && c.CurrentUsage >= c.MaxUsage {
		return false
	}
	return true
}
