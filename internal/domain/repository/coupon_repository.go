package repository

import (
	"time"

	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
)

// CouponRepository define el puerto de persistencia para Coupon.
type CouponRepository interface {
	Create(c *entity.Coupon) error
	GetByID(id string) (*entity.Coupon, error)
	GetByCode(code string) (*entity.Coupon, error)
	Update(c *entity.Coupon) error
	SetActive(id string, active bool) error
	List(f ListFilter) ([]*entity.Coupon, error)
	Search(query string, f ListFilter) ([]*entity.Coupon, error)
	// ListActive devuelve cupones activos, en ventana y con usos restantes.
	ListActive(now time.Time) ([]*entity.Coupon, error)
	// Redeem incrementa current_usage de forma atómica con verificación de
	// vigencia y cupo (UPDATE condicional). Devuelve domain.ErrCouponExhausted
	// si el cupón existe pero no es canjeable, domain.ErrNotFound si no existe.
	Redeem(code string, now time.Time) (*entity.Coupon, error)
	Delete(id string) error
}
