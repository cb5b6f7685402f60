// Package authadmin implementa la autenticación del guard admin/staff:
// login con JWT sin estado y restablecimiento de contraseña por correo.
package authadmin

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/application/notifier"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
	"github.com/jhoicas/tienda-admin-api/pkg/jwt"
)

const guardAdmin = "admin"

// Config parámetros del guard admin/staff.
type Config struct {
	JWTSecret    string
	JWTIssuer    string
	JWTExpMin    int
	ResetTTL     time.Duration
	ResetLinkURL string // base del enlace de reset, se le anexa ?token=
}

// UseCase casos de uso de autenticación del panel.
type UseCase struct {
	users      repository.AdminUserRepository
	resets     repository.PasswordResetRepository
	dispatcher *notifier.Dispatcher
	cfg        Config
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	users repository.AdminUserRepository,
	resets repository.PasswordResetRepository,
	dispatcher *notifier.Dispatcher,
	cfg Config,
) *UseCase {
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = time.Hour
	}
	return &UseCase{users: users, resets: resets, dispatcher: dispatcher, cfg: cfg}
}

// Login verifica credenciales y emite un JWT con el rol en los claims.
func (uc *UseCase) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := uc.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.cfg.JWTSecret, user.ID, user.Role.String(), uc.cfg.JWTIssuer, uc.cfg.JWTExpMin)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.AdminUserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role.String(),
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		},
	}, nil
}

// Me devuelve el perfil del admin autenticado.
func (uc *UseCase) Me(adminID string) (*dto.AdminUserResponse, error) {
	user, err := uc.users.GetByID(adminID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return &dto.AdminUserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

// ForgotPassword emite un token de reset y encola el correo. Para no filtrar
// qué emails existen, responde igual exista o no la cuenta.
func (uc *UseCase) ForgotPassword(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		ve := domain.NewValidationError()
		ve.Add("email", "el email es requerido")
		return ve
	}
	user, err := uc.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	plain, hash, err := newResetToken()
	if err != nil {
		return err
	}
	now := time.Now()
	reset := &entity.PasswordReset{
		ID:        uuid.New().String(),
		Guard:     guardAdmin,
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

// ResetPassword canjea el token de reset (un solo uso) y fija la nueva
// contraseña. Notifica el cambio por correo.
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
	if reset == nil || reset.Guard != guardAdmin || !reset.Usable(now) {
		return domain.ErrCodeInvalid
	}
	user, err := uc.users.GetByEmail(reset.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrCodeInvalid
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = now
	if err := uc.users.Update(user); err != nil {
		return err
	}
	if err := uc.resets.Consume(reset.ID, now); err != nil {
		return err
	}
	uc.dispatcher.Enqueue(notifier.Task{Kind: notifier.KindPasswordChanged, To: user.Email})
	return nil
}

// newResetToken genera el token plano y su hash SHA-256 para persistir.
func newResetToken() (plain, hash string, err error) {
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
