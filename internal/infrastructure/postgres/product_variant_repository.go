package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

var _ repository.ProductImageRepository = (*ProductImageRepo)(nil)
var _ repository.ProductVariantRepository = (*ProductVariantRepo)(nil)

// ProductImageRepo persiste imágenes de producto.
type ProductImageRepo struct {
	q Querier
}

// NewProductImageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductImageRepository(q Querier) *ProductImageRepo {
	return &ProductImageRepo{q: q}
}

// ReplaceForProduct reemplaza el conjunto de imágenes del producto.
// Se usa dentro de la tx de create/update de producto.
func (r *ProductImageRepo) ReplaceForProduct(productID string, images []entity.ProductImage) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM product_images WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear product images: %w", err)
	}
	for _, img := range images {
		_, err := r.q.Exec(ctx,
			`INSERT INTO product_images (id, product_id, path, is_primary, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			img.ID, productID, img.Path, img.IsPrimary, img.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert product image: %w", err)
		}
	}
	return nil
}

// ListByProduct lista las imágenes del producto (la primaria primero).
func (r *ProductImageRepo) ListByProduct(productID string) ([]entity.ProductImage, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, product_id, path, is_primary, created_at
		 FROM product_images WHERE product_id = $1 ORDER BY is_primary DESC, created_at`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()
	var list []entity.ProductImage
	for rows.Next() {
		var img entity.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.Path, &img.IsPrimary, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		list = append(list, img)
	}
	return list, rows.Err()
}

// DeleteByProduct elimina todas las imágenes del producto.
func (r *ProductImageRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM product_images WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete product images: %w", err)
	}
	return nil
}

// ProductVariantRepo persiste variantes talla×color y los pivots product_sizes.
type ProductVariantRepo struct {
	q Querier
}

// NewProductVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductVariantRepository(q Querier) *ProductVariantRepo {
	return &ProductVariantRepo{q: q}
}

// ReplaceForProduct reemplaza las variantes del producto (todo-o-nada dentro de la tx).
func (r *ProductVariantRepo) ReplaceForProduct(productID string, variants []entity.ProductVariant) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM product_variants WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear product variants: %w", err)
	}
	for _, v := range variants {
		_, err := r.q.Exec(ctx,
			`INSERT INTO product_variants (id, product_id, size_id, color_id, stock, additional_price, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			v.ID, productID, v.SizeID, v.ColorID, v.Stock, v.AdditionalPrice, v.CreatedAt, v.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("variante duplicada talla/color: %w", err)
			}
			return fmt.Errorf("insert product variant: %w", err)
		}
	}
	return nil
}

// ReplaceSizePivots reemplaza el pivot product_sizes derivado de las variantes.
func (r *ProductVariantRepo) ReplaceSizePivots(productID string, pivots []entity.ProductSize) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM product_sizes WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear product sizes: %w", err)
	}
	for _, p := range pivots {
		_, err := r.q.Exec(ctx,
			`INSERT INTO product_sizes (product_id, size_id, stock, additional_price)
			 VALUES ($1, $2, $3, $4)`,
			productID, p.SizeID, p.Stock, p.AdditionalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert product size pivot: %w", err)
		}
	}
	return nil
}

// ListByProduct lista las variantes del producto.
func (r *ProductVariantRepo) ListByProduct(productID string) ([]entity.ProductVariant, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, product_id, size_id, color_id, stock, additional_price, created_at, updated_at
		 FROM product_variants WHERE product_id = $1 ORDER BY created_at`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product variants: %w", err)
	}
	defer rows.Close()
	var list []entity.ProductVariant
	for rows.Next() {
		var v entity.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SizeID, &v.ColorID, &v.Stock, &v.AdditionalPrice, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product variant: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// DeleteByProduct elimina todas las variantes del producto.
func (r *ProductVariantRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM product_variants WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete product variants: %w", err)
	}
	return nil
}
