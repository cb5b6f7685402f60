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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, kategori_id, name, slug, description, price, stock, status, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto (sin imágenes ni variantes; esas van por sus repos en la misma tx).
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, kategori_id, name, slug, description, price, stock, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CategoryID, p.Name, p.Slug, p.Description, p.Price, p.Stock, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (plano; imágenes y variantes se cargan aparte).
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Stock, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET kategori_id = $2, name = $3, slug = $4, description = $5, price = $6, stock = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CategoryID, p.Name, p.Slug, p.Description, p.Price, p.Stock, p.Status, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SetStatus cambia solo el estado published/draft.
func (r *ProductRepo) SetStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set product status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos. Con OnlyVisible se exige producto publicado y
// categoría activa (la visibilidad de la categoría compone).
func (r *ProductRepo) List(f repository.ProductFilter) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.kategori_id, p.name, p.slug, p.description, p.price, p.stock, p.status, p.created_at, p.updated_at
		FROM products p`
	args := []any{}
	where := ""
	if f.OnlyVisible {
		query += ` JOIN kategoris k ON k.id = p.kategori_id`
		where = ` WHERE p.status = 'published' AND k.status = true`
	}
	if f.CategoryID != "" {
		if where == "" {
			where = ` WHERE`
		} else {
			where += ` AND`
		}
		args = append(args, f.CategoryID)
		where += fmt.Sprintf(` p.kategori_id = $%d`, len(args))
	}
	args = append(args, f.Limit, f.Offset)
	query += where + fmt.Sprintf(` ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	return r.scanMany(query, args...)
}

// Search busca productos por nombre (subcadena, sin distinguir mayúsculas).
func (r *ProductRepo) Search(q string, f repository.ListFilter) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.kategori_id, p.name, p.slug, p.description, p.price, p.stock, p.status, p.created_at, p.updated_at
		FROM products p`
	if f.OnlyVisible {
		query += ` JOIN kategoris k ON k.id = p.kategori_id
		WHERE p.name ILIKE $1 AND p.status = 'published' AND k.status = true`
	} else {
		query += ` WHERE p.name ILIKE $1`
	}
	query += ` ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, likePattern(q), f.Limit, f.Offset)
}

func (r *ProductRepo) scanMany(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Stock, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un producto. Imágenes, pivots y variantes caen por FK ON DELETE CASCADE.
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
