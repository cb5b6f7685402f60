// Package authcustomer implementa la autenticación del guard customer:
// registro con verificación de email por OTP, tokens opacos persistidos por
// hash y gestión de contraseña. Es un guard independiente del guard
// admin/staff: mecanismos y almacenes distintos, sin principal unificado.
package authcustomer

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/application/notifier"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

const guardCustomer = "customer"

// Vigencias fijas del guard customer.
const (
	otpTTL   = 3 * time.Minute
	tokenTTL = 30 * 24 * time.Hour
)

// Config parámetros del guard customer.
type Config struct {
	ResetTTL     time.Duration
	ResetLinkURL string // base del enlace de reset, se le anexa ?token=
}

// UseCase casos de uso de autenticación de clientes.
type UseCase struct {
	customers  repository.CustomerRepository
	tokens     repository.CustomerTokenRepository
	codes      repository.VerificationCodeRepository
	resets     repository.PasswordResetRepository
	dispatcher *notifier.Dispatcher
	cfg        Config
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	customers repository.CustomerRepository,
	tokens repository.CustomerTokenRepository,
	codes repository.VerificationCodeRepository,
	resets repository.PasswordResetRepository,
	dispatcher *notifier.Dispatcher,
	cfg Config,
) *UseCase {
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = time.Hour
	}
	return &UseCase{
		customers:  customers,
		tokens:     tokens,
		codes:      codes,
		resets:     resets,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// Register crea la cuenta en estado pending y encola el OTP de verificación.
func (uc *UseCase) Register(req dto.RegisterCustomerRequest) (*dto.CustomerResponse, error) {
	ve := domain.NewValidationError()
	username := strings.TrimSpace(req.Username)
	if username == "" {
		ve.Add("username", "el username es requerido")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		ve.Add("email", "el email es requerido")
	}
	if len(req.Password) < 8 {
		ve.Add("password", "mínimo 8 caracteres")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Status:       entity.CustomerStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.customers.Create(customer); err != nil {
		return nil, err
	}
	if err := uc.issueOTP(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// VerifyOTP canjea el código. Único camino pending -> active; el código es de
// un solo uso y expira.
func (uc *UseCase) VerifyOTP(req dto.VerifyOTPRequest) (*dto.CustomerResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	customer, err := uc.customers.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.Status != entity.CustomerStatusPending {
		return nil, domain.ErrConflict
	}
	code, err := uc.codes.GetLatestByCustomer(customer.ID)
	if err != nil {
		return nil, err
	}
	if code == nil || code.Code != strings.TrimSpace(req.Code) {
		return nil, domain.ErrCodeInvalid
	}
	now := time.Now()
	if !code.Usable(now) {
		return nil, domain.ErrCodeExpired
	}
	if err := uc.codes.Consume(code.ID, now); err != nil {
		return nil, err
	}
	if err := uc.customers.UpdateStatus(customer.ID, entity.CustomerStatusActive); err != nil {
		return nil, err
	}
	customer.Status = entity.CustomerStatusActive
	customer.UpdatedAt = now
	return toCustomerResponse(customer), nil
}

// ResendOTP invalida los códigos previos y emite uno nuevo. Solo aplica a
// cuentas pending.
func (uc *UseCase) ResendOTP(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	customer, err := uc.customers.GetByEmail(email)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	if customer.Status != entity.CustomerStatusPending {
		return domain.ErrConflict
	}
	if err := uc.codes.DeleteByCustomer(customer.ID); err != nil {
		return err
	}
	return uc.issueOTP(customer)
}

// Login verifica credenciales y luego el estado de la cuenta: credenciales
// malas dan ErrInvalidCredentials; credenciales buenas con cuenta no activa
// dan ErrInactiveAccount (respuesta distinguible). Emite un token opaco cuyo
// plano se entrega una sola vez.
func (uc *UseCase) Login(req dto.CustomerLoginRequest) (*dto.CustomerLoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	customer, err := uc.customers.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !customer.IsActive() {
		return nil, domain.ErrInactiveAccount
	}

	plain, hash, err := newOpaqueToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	token := &entity.CustomerToken{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		TokenHash:  hash,
		CreatedAt:  now,
		ExpiresAt:  now.Add(tokenTTL),
	}
	if err := uc.tokens.Create(token); err != nil {
		return nil, err
	}
	if err := uc.customers.TouchLastLogin(customer.ID, now); err != nil {
		return nil, err
	}
	customer.LastLoginAt = &now
	return &dto.CustomerLoginResponse{
		Token:    plain,
		Customer: *toCustomerResponse(customer),
	}, nil
}

// Logout revoca el token de la sesión actual.
func (uc *UseCase) Logout(plainToken string) error {
	return uc.tokens.DeleteByHash(hashToken(plainToken))
}

// Me devuelve el perfil del cliente autenticado.
func (uc *UseCase) Me(customerID string) (*dto.CustomerResponse, error) {
	customer, err := uc.customers.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrUnauthorized
	}
	return toCustomerResponse(customer), nil
}

// ChangePassword cambia la contraseña verificando la actual, revoca el resto
// de sesiones y notifica por correo.
func (uc *UseCase) ChangePassword(customerID string, req dto.ChangePasswordRequest, currentToken string) error {
	customer, err := uc.customers.GetByID(customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}
	if len(req.NewPassword) < 8 {
		ve := domain.NewValidationError()
		ve.Add("new_password", "mínimo 8 caracteres")
		return ve
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	customer.PasswordHash = string(hash)
	customer.UpdatedAt = time.Now()
	if err := uc.customers.Update(customer); err != nil {
		return err
	}
	// Revocar todas las sesiones y reemitir solo la actual.
	if err := uc.tokens.DeleteByCustomer(customer.ID); err != nil {
		return err
	}
	now := time.Now()
	token := &entity.CustomerToken{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		TokenHash:  hashToken(currentToken),
		CreatedAt:  now,
		ExpiresAt:  now.Add(tokenTTL),
	}
	if err := uc.tokens.Create(token); err != nil {
		return err
	}
	uc.dispatcher.Enqueue(notifier.Task{Kind: notifier.KindPasswordChanged, To: customer.Email})
	return nil
}

// ForgotPassword emite un token de reset y encola el correo; respuesta
// idéntica exista o no la cuenta.
func (uc *UseCase) ForgotPassword(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		ve := domain.NewValidationError()
		ve.Add("email", "el email es requerido")
		return ve
	}
	customer, err := uc.customers.GetByEmail(email)
	if err != nil {
		return err
	}
	if customer == nil {
		return nil
	}
	plain, hash, err := newOpaqueToken()
	if err != nil {
		return err
	}
	now := time.Now()
	reset := &entity.PasswordReset{
		ID:        uuid.New().String(),
		Guard:     guardCustomer,
		Email:     email,
		TokenHash: hash,
		ExpiresAt: now.Add(uc.cfg.ResetTTL),
		CreatedAt: now,
	}
	if err := uc.resets.Create(reset); err != nil {
		return err
	}
	uc.dispatcher.Enqueue(notifier.Task{
		Kind:      notifier.KindPasswordReset,
		To:        email,
		ResetLink: fmt.Sprintf("%s?token=%s", uc.cfg.ResetLinkURL, plain),
	})
	return nil
}

// ResetPassword canjea el token de reset (un solo uso), fija la nueva
// contraseña y revoca todas las sesiones del cliente.
func (uc *UseCase) ResetPassword(req dto.ResetPasswordRequest) error {
	ve := domain.NewValidationError()
	if req.Token == "" {
		ve.Add("token", "el token es requerido")
	}
	if len(req.Password) < 8 {
		ve.Add("password", "mínimo 8 caracteres")
	}
	if ve.HasErrors() {
		return ve
	}
	reset, err := uc.resets.GetByHash(hashToken(req.Token))
	if err != nil {
		return err
	}
	now := time.Now()
	if reset == nil || reset.Guard != guardCustomer || !reset.Usable(now) {
		return domain.ErrCodeInvalid
	}
	customer, err := uc.customers.GetByEmail(reset.Email)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrCodeInvalid
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	customer.PasswordHash = string(hash)
	customer.UpdatedAt = now
	if err := uc.customers.Update(customer); err != nil {
		return err
	}
	if err := uc.resets.Consume(reset.ID, now); err != nil {
		return err
	}
	if err := uc.tokens.DeleteByCustomer(customer.ID); err != nil {
		return err
	}
	uc.dispatcher.Enqueue(notifier.Task{Kind: notifier.KindPasswordChanged, To: customer.Email})
	return nil
}

// issueOTP genera un código de 6 dígitos, lo persiste y encola el correo.
func (uc *UseCase) issueOTP(customer *entity.Customer) error {
	code, err := newOTPCode()
	if err != nil {
		return err
	}
	now := time.Now()
	record := &entity.VerificationCode{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		Code:       code,
		ExpiresAt:  now.Add(otpTTL),
		CreatedAt:  now,
	}
	if err := uc.codes.Create(record); err != nil {
		return err
	}
	uc.dispatcher.Enqueue(notifier.Task{
		Kind:    notifier.KindSignupOTP,
		To:      customer.Email,
		Code:    code,
		CodeTTL: otpTTL,
	})
	return nil
}

// newOTPCode genera un código numérico de 6 dígitos con crypto/rand.
func newOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// newOpaqueToken genera el token plano y su hash SHA-256 para persistir.
func newOpaqueToken() (plain, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	plain = hex.EncodeToString(buf)
	return plain, hashToken(plain), nil
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:          c.ID,
		Username:    c.Username,
		Email:       c.Email,
		Status:      c.Status,
		LastLoginAt: c.LastLoginAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
