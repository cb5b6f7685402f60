package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

var _ repository.SizeRepository = (*SizeRepo)(nil)
var _ repository.ColorRepository = (*ColorRepo)(nil)

// SizeRepo implementación del puerto SizeRepository sobre PostgreSQL.
type SizeRepo struct {
	q Querier
}

// NewSizeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSizeRepository(q Querier) *SizeRepo {
	return &SizeRepo{q: q}
}

// Create persiste una talla.
func (r *SizeRepo) Create(s *entity.Size) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO sizes (id, name, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.Name, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert size: %w", err)
	}
	return nil
}

// GetByID obtiene una talla por ID.
func (r *SizeRepo) GetByID(id string) (*entity.Size, error) {
	var s entity.Size
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, status, created_at, updated_at FROM sizes WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get size: %w", err)
	}
	return &s, nil
}

// Update actualiza una talla.
func (r *SizeRepo) Update(s *entity.Size) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sizes SET name = $2, status = $3, updated_at = $4 WHERE id = $1`,
		s.ID, s.Name, s.Status, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update size: %w", err)
	}
	return nil
}

// SetStatus cambia solo la visibilidad.
func (r *SizeRepo) SetStatus(id string, status bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sizes SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set size status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista tallas; con OnlyVisible solo las activas.
func (r *SizeRepo) List(f repository.ListFilter) ([]*entity.Size, error) {
	query := `SELECT id, name, status, created_at, updated_at FROM sizes`
	if f.OnlyVisible {
		query += ` WHERE status = true`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`
	return r.scanMany(query, f.Limit, f.Offset)
}

// Search busca tallas por nombre.
func (r *SizeRepo) Search(q string, f repository.ListFilter) ([]*entity.Size, error) {
	query := `SELECT id, name, status, created_at, updated_at FROM sizes WHERE name ILIKE $1`
	if f.OnlyVisible {
		query += ` AND status = true`
	}
	query += ` ORDER BY name LIMIT $2 OFFSET $3`
	return r.scanMany(query, likePattern(q), f.Limit, f.Offset)
}

func (r *SizeRepo) scanMany(query string, args ...any) ([]*entity.Size, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Size
	for rows.Next() {
		var s entity.Size
		if err := rows.Scan(&s.ID, &s.Name, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan size: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina una talla. Pivots y variantes caen por FK en cascada.
func (r *SizeRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM sizes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete size: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceColors reemplaza el pivot size_colors para la talla.
func (r *SizeRepo) ReplaceColors(sizeID string, colorIDs []string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM size_colors WHERE size_id = $1`, sizeID); err != nil {
		return fmt.Errorf("clear size colors: %w", err)
	}
	for _, colorID := range colorIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO size_colors (size_id, color_id) VALUES ($1, $2)`, sizeID, colorID)
		if err != nil {
			return fmt.Errorf("insert size color: %w", err)
		}
	}
	return nil
}

// ListColors lista los colores asociados a la talla.
func (r *SizeRepo) ListColors(sizeID string) ([]*entity.Color, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT c.id, c.name, c.hex, c.status, c.created_at, c.updated_at
		 FROM colors c JOIN size_colors sc ON sc.color_id = c.id
		 WHERE sc.size_id = $1 ORDER BY c.name`, sizeID)
	if err != nil {
		return nil, fmt.Errorf("list size colors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Color
	for rows.Next() {
		var c entity.Color
		if err := rows.Scan(&c.ID, &c.Name, &c.Hex, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan color: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ColorRepo implementación del puerto ColorRepository sobre PostgreSQL.
type ColorRepo struct {
	q Querier
}

// NewColorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewColorRepository(q Querier) *ColorRepo {
	return &ColorRepo{q: q}
}

// Create persiste un color.
func (r *ColorRepo) Create(c *entity.Color) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO colors (id, name, hex, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Hex, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert color: %w", err)
	}
	return nil
}

// GetByID obtiene un color por ID.
func (r *ColorRepo) GetByID(id string) (*entity.Color, error) {
	var c entity.Color
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, hex, status, created_at, updated_at FROM colors WHERE id = $1`, id).Scan(
		&c.ID, &c.Name, &c.Hex, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get color: %w", err)
	}
	return &c, nil
}

// Update actualiza un color.
func (r *ColorRepo) Update(c *entity.Color) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE colors SET name = $2, hex = $3, status = $4, updated_at = $5 WHERE id = $1`,
		c.ID, c.Name, c.Hex, c.Status, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update color: %w", err)
	}
	return nil
}

// SetStatus cambia solo la visibilidad.
func (r *ColorRepo) SetStatus(id string, status bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE colors SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set color status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista colores; con OnlyVisible solo los activos.
func (r *ColorRepo) List(f repository.ListFilter) ([]*entity.Color, error) {
	query := `SELECT id, name, hex, status, created_at, updated_at FROM colors`
	if f.OnlyVisible {
		query += ` WHERE status = true`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`
	return r.scanMany(query, f.Limit, f.Offset)
}

// Search busca colores por nombre.
func (r *ColorRepo) Search(q string, f repository.ListFilter) ([]*entity.Color, error) {
	query := `SELECT id, name, hex, status, created_at, updated_at FROM colors WHERE name ILIKE $1`
	if f.OnlyVisible {
		query += ` AND status = true`
	}
	query += ` ORDER BY name LIMIT $2 OFFSET $3`
	return r.scanMany(query, likePattern(q), f.Limit, f.Offset)
}

func (r *ColorRepo) scanMany(query string, args ...any) ([]*entity.Color, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list colors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Color
	for rows.Next() {
		var c entity.Color
		if err := rows.Scan(&c.ID, &c.Name, &c.Hex, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan color: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina un color. Pivots y variantes caen por FK en cascada.
func (r *ColorRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM colors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete color: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
