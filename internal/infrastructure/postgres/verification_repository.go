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

var _ repository.VerificationCodeRepository = (*VerificationCodeRepo)(nil)
var _ repository.PasswordResetRepository = (*PasswordResetRepo)(nil)

// VerificationCodeRepo persiste los OTP de verificación de email.
type VerificationCodeRepo struct {
	q Querier
}

// NewVerificationCodeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVerificationCodeRepository(q Querier) *VerificationCodeRepo {
	return &VerificationCodeRepo{q: q}
}

// Create persiste un OTP recién emitido.
func (r *VerificationCodeRepo) Create(v *entity.VerificationCode) error {
	query := `
		INSERT INTO email_verification_codes (id, customer_id, code, expires_at, consumed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.CustomerID, v.Code, v.ExpiresAt, v.ConsumedAt, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert verification code: %w", err)
	}
	return nil
}

// GetLatestByCustomer devuelve el código más reciente no consumido, o (nil, nil).
func (r *VerificationCodeRepo) GetLatestByCustomer(customerID string) (*entity.VerificationCode, error) {
	query := `
		SELECT id, customer_id, code, expires_at, consumed_at, created_at
		FROM email_verification_codes
		WHERE customer_id = $1 AND consumed_at IS NULL
		ORDER BY created_at DESC LIMIT 1`
	var v entity.VerificationCode
	err := r.q.QueryRow(context.Background(), query, customerID).Scan(
		&v.ID, &v.CustomerID, &v.Code, &v.ExpiresAt, &v.ConsumedAt, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get verification code: %w", err)
	}
	return &v, nil
}

// Consume marca el código como usado (un solo uso).
func (r *VerificationCodeRepo) Consume(id string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE email_verification_codes SET consumed_at = $2 WHERE id = $1 AND consumed_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("consume verification code: %w", err)
	}
	return nil
}

// DeleteByCustomer elimina los códigos pendientes del customer (al reenviar OTP).
func (r *VerificationCodeRepo) DeleteByCustomer(customerID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM email_verification_codes WHERE customer_id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("delete verification codes: %w", err)
	}
	return nil
}

// PasswordResetRepo persiste tokens de restablecimiento de contraseña.
type PasswordResetRepo struct {
	q Querier
}

// NewPasswordResetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPasswordResetRepository(q Querier) *PasswordResetRepo {
	return &PasswordResetRepo{q: q}
}

// Create persiste un token de reset.
func (r *PasswordResetRepo) Create(p *entity.PasswordReset) error {
	query := `
		INSERT INTO password_resets (id, guard, email, token_hash, expires_at, consumed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Guard, p.Email, p.TokenHash, p.ExpiresAt, p.ConsumedAt, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert password reset: %w", err)
	}
	return nil
}

// GetByHash resuelve un token de reset por hash. (nil, nil) si no existe.
func (r *PasswordResetRepo) GetByHash(hash string) (*entity.PasswordReset, error) {
	query := `
		SELECT id, guard, email, token_hash, expires_at, consumed_at, created_at
		FROM password_resets WHERE token_hash = $1`
	var p entity.PasswordReset
	err := r.q.QueryRow(context.Background(), query, hash).Scan(
		&p.ID, &p.Guard, &p.Email, &p.TokenHash, &p.ExpiresAt, &p.ConsumedAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get password reset: %w", err)
	}
	return &p, nil
}

// Consume marca el token como usado (un solo uso).
func (r *PasswordResetRepo) Consume(id string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE password_resets SET consumed_at = $2 WHERE id = $1 AND consumed_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("consume password reset: %w", err)
	}
	return nil
}
