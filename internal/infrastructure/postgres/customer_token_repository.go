package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

var _ repository.CustomerTokenRepository = (*CustomerTokenRepo)(nil)

// CustomerTokenRepo persiste tokens opacos de customers (solo el hash SHA-256).
type CustomerTokenRepo struct {
	q Querier
}

// NewCustomerTokenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerTokenRepository(q Querier) *CustomerTokenRepo {
	return &CustomerTokenRepo{q: q}
}

// Create persiste un token emitido.
func (r *CustomerTokenRepo) Create(t *entity.CustomerToken) error {
	query := `
		INSERT INTO customer_tokens (id, customer_id, token_hash, created_at, last_used_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.CustomerID, t.TokenHash, t.CreatedAt, t.LastUsedAt, t.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer token: %w", err)
	}
	return nil
}

// GetByHash resuelve un token por su hash. (nil, nil) si no existe.
func (r *CustomerTokenRepo) GetByHash(hash string) (*entity.CustomerToken, error) {
	query := `
		SELECT id, customer_id, token_hash, created_at, last_used_at, expires_at
		FROM customer_tokens WHERE token_hash = $1`
	var t entity.CustomerToken
	err := r.q.QueryRow(context.Background(), query, hash).Scan(
		&t.ID, &t.CustomerID, &t.TokenHash, &t.CreatedAt, &t.LastUsedAt, &t.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer token: %w", err)
	}
	return &t, nil
}

// TouchLastUsed registra el último uso del token.
func (r *CustomerTokenRepo) TouchLastUsed(id string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE customer_tokens SET last_used_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("touch customer token: %w", err)
	}
	return nil
}

// DeleteByHash revoca un token individual (logout).
func (r *CustomerTokenRepo) DeleteByHash(hash string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM customer_tokens WHERE token_hash = $1`, hash)
	if err != nil {
		return fmt.Errorf("delete customer token: %w", err)
	}
	return nil
}

// DeleteByCustomer revoca todos los tokens del customer.
func (r *CustomerTokenRepo) DeleteByCustomer(customerID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM customer_tokens WHERE customer_id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("delete customer tokens: %w", err)
	}
	return nil
}
