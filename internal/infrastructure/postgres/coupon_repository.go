package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

var _ repository.CouponRepository = (*CouponRepo)(nil)

const couponColumns = `id, code, discount_amount, discount_type, start_date, end_date, is_active, max_usage, current_usage, created_at, updated_at`

// CouponRepo implementación del puerto CouponRepository sobre PostgreSQL.
type CouponRepo struct {
	q Querier
}

// NewCouponRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCouponRepository(q Querier) *CouponRepo {
	return &CouponRepo{q: q}
}

// Create persiste un cupón. Código único.
func (r *CouponRepo) Create(c *entity.Coupon) error {
	query := `
		INSERT INTO kupons (id, code, discount_amount, discount_type, start_date, end_date, is_active, max_usage, current_usage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Code, c.DiscountAmount, c.DiscountType, c.StartDate, c.EndDate,
		c.IsActive, c.MaxUsage, c.CurrentUsage, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

// GetByID obtiene un cupón por ID.
func (r *CouponRepo) GetByID(id string) (*entity.Coupon, error) {
	return r.getOne(`SELECT `+couponColumns+` FROM kupons WHERE id = $1`, id)
}

// GetByCode obtiene un cupón por código.
func (r *CouponRepo) GetByCode(code string) (*entity.Coupon, error) {
	return r.getOne(`SELECT `+couponColumns+` FROM kupons WHERE code = $1`, code)
}

func (r *CouponRepo) getOne(query string, arg any) (*entity.Coupon, error) {
	var c entity.Coupon
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Code, &c.DiscountAmount, &c.DiscountType, &c.StartDate, &c.EndDate,
		&c.IsActive, &c.MaxUsage, &c.CurrentUsage, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	return &c, nil
}

// Update actualiza un cupón existente. CurrentUsage no se toca aquí (solo vía Redeem).
func (r *CouponRepo) Update(c *entity.Coupon) error {
	query := `
		UPDATE kupons SET code = $2, discount_amount = $3, discount_type = $4, start_date = $5, end_date = $6, is_active = $7, max_usage = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Code, c.DiscountAmount, c.DiscountType, c.StartDate, c.EndDate, c.IsActive, c.MaxUsage, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update coupon: %w", err)
	}
	return nil
}

// SetActive cambia solo la bandera is_active.
func (r *CouponRepo) SetActive(id string, active bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE kupons SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set coupon active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista cupones con paginación.
func (r *CouponRepo) List(f repository.ListFilter) ([]*entity.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM kupons ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.scanMany(query, f.Limit, f.Offset)
}

// Search busca cupones por código.
func (r *CouponRepo) Search(q string, f repository.ListFilter) ([]*entity.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM kupons WHERE code ILIKE $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, likePattern(q), f.Limit, f.Offset)
}

// ListActive devuelve cupones activos, en ventana y con usos restantes.
func (r *CouponRepo) ListActive(now time.Time) ([]*entity.Coupon, error) {
	query := `
		SELECT ` + couponColumns + ` FROM kupons
		WHERE is_active = true AND start_date <= $1 AND end_date >= $1
		  AND (max_usage = 0 OR current_usage < max_usage)
		ORDER BY created_at DESC`
	return r.scanMany(query, now)
}

// Redeem incrementa current_usage de forma atómica. El WHERE reevalúa vigencia
// y cupo dentro del mismo UPDATE, así el invariante current_usage <= max_usage
// se sostiene bajo canjes concurrentes sin lock explícito.
func (r *CouponRepo) Redeem(code string, now time.Time) (*entity.Coupon, error) {
	query := `
		UPDATE kupons SET current_usage = current_usage + 1, updated_at = $2
		WHERE code = $1 AND is_active = true AND start_date <= $2 AND end_date >= $2
		  AND (max_usage = 0 OR current_usage < max_usage)
		RETURNING ` + couponColumns
	var c entity.Coupon
	err := r.q.QueryRow(context.Background(), query, code, now).Scan(
		&c.ID, &c.Code, &c.DiscountAmount, &c.DiscountType, &c.StartDate, &c.EndDate,
		&c.IsActive, &c.MaxUsage, &c.CurrentUsage, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguir inexistente de agotado/fuera de ventana.
			existing, gerr := r.GetByCode(code)
			if gerr != nil {
				return nil, gerr
			}
			if existing == nil {
				return nil, domain.ErrNotFound
			}
			return nil, domain.ErrCouponExhausted
		}
		return nil, fmt.Errorf("redeem coupon: %w", err)
	}
	return &c, nil
}

func (r *CouponRepo) scanMany(query string, args ...any) ([]*entity.Coupon, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()
	var list []*entity.Coupon
	for rows.Next() {
		var c entity.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.DiscountAmount, &c.DiscountType, &c.StartDate, &c.EndDate,
			&c.IsActive, &c.MaxUsage, &c.CurrentUsage, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina un cupón por ID.
func (r *CouponRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM kupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete coupon: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
