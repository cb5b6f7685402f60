package repository

import (
	"time"

	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	Create(c *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByEmail(email string) (*entity.Customer, error)
	GetByUsername(username string) (*entity.Customer, error)
	Update(c *entity.Customer) error
	UpdateStatus(id, status string) error
	TouchLastLogin(id string, at time.Time) error
	List(limit, offset int) ([]*entity.Customer, error)
	Search(query string, limit, offset int) ([]*entity.Customer, error)
	// Delete elimina el customer; la FK en cascada elimina tokens y códigos.
	Delete(id string) error
}

// CustomerTokenRepository persiste tokens opacos de customers (solo hash).
type CustomerTokenRepository interface {
	Create(t *entity.CustomerToken) error
	GetByHash(hash string) (*entity.CustomerToken, error)
	TouchLastUsed(id string, at time.Time) error
	DeleteByHash(hash string) error
	DeleteByCustomer(customerID string) error
}

// VerificationCodeRepository persiste los OTP de verificación de email.
type VerificationCodeRepository interface {
	Create(v *entity.VerificationCode) error
	// GetLatestByCustomer devuelve el código más reciente no consumido, o (nil, nil).
	GetLatestByCustomer(customerID string) (*entity.VerificationCode, error)
	Consume(id string, at time.Time) error
	DeleteByCustomer(customerID string) error
}

// PasswordResetRepository persiste tokens de restablecimiento de contraseña.
type PasswordResetRepository interface {
	Create(p *entity.PasswordReset) error
	GetByHash(hash string) (*entity.PasswordReset, error)
	Consume(id string, at time.Time) error
}
