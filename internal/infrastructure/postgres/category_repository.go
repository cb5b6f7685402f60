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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, name, slug, image, status, created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(c *entity.Category) error {
	query := `
		INSERT INTO kategoris (id, name, slug, image, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Slug, c.Image, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(),
		`SELECT `+categoryColumns+` FROM kategoris WHERE id = $1`, id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Image, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Update actualiza una categoría existente.
func (r *CategoryRepo) Update(c *entity.Category) error {
	query := `
		UPDATE kategoris SET name = $2, slug = $3, image = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Slug, c.Image, c.Status, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// SetStatus cambia solo la visibilidad.
func (r *CategoryRepo) SetStatus(id string, status bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE kategoris SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set category status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista categorías; con OnlyVisible solo las activas.
func (r *CategoryRepo) List(f repository.ListFilter) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM kategoris`
	if f.OnlyVisible {
		query += ` WHERE status = true`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.scanMany(query, f.Limit, f.Offset)
}

// Search busca categorías por nombre (subcadena, sin distinguir mayúsculas).
func (r *CategoryRepo) Search(q string, f repository.ListFilter) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM kategoris WHERE name ILIKE $1`
	if f.OnlyVisible {
		query += ` AND status = true`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, likePattern(q), f.Limit, f.Offset)
}

func (r *CategoryRepo) scanMany(query string, args ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Image, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina una categoría. Los productos asociados caen por FK en cascada.
func (r *CategoryRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM kategoris WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
