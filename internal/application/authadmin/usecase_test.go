package authadmin_test

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-admin-api/internal/application/authadmin"
	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/application/notifier"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/pkg/jwt"
	"github.com/jhoicas/tienda-admin-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	byID map[string]*entity.AdminUser
}

func (m *memUserRepo) Create(u *entity.AdminUser) error {
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}
func (m *memUserRepo) GetByID(id string) (*entity.AdminUser, error) {
	if u, exists := m.byID[id]; exists {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}
func (m *memUserRepo) GetByEmail(email string) (*entity.AdminUser, error) {
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
func (m *memUserRepo) Update(u *entity.AdminUser) error {
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}
func (m *memUserRepo) List(limit, offset int) ([]*entity.AdminUser, error) { return nil, nil }
func (m *memUserRepo) Search(q string, limit, offset int) ([]*entity.AdminUser, error) {
	return nil, nil
}
func (m *memUserRepo) Delete(id string) error { return nil }

type memResetRepo struct {
	byHash map[string]*entity.PasswordReset
}

func (m *memResetRepo) Create(p *entity.PasswordReset) error {
	cp := *p
	m.byHash[p.TokenHash] = &cp
	return nil
}
func (m *memResetRepo) GetByHash(hash string) (*entity.PasswordReset, error) {
	return m.byHash[hash], nil
}
func (m *memResetRepo) Consume(id string, at time.Time) error {
	for _, p := range m.byHash {
		if p.ID == id {
			p.ConsumedAt = &at
			return nil
		}
	}
	return domain.ErrNotFound
}

// captureMailer guarda los cuerpos enviados para inspeccionar el enlace.
type captureMailer struct {
	mu     sync.Mutex
	bodies []string
}

func (c *captureMailer) Send(to, subject, htmlBody string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bodies = append(c.bodies, htmlBody)
	return nil
}

func (c *captureMailer) lastBody() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.bodies) == 0 {
		return ""
	}
	return c.bodies[len(c.bodies)-1]
}

func sha256Hex(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// resetTokenFrom extrae el token plano del enlace incluido en el correo.
func resetTokenFrom(t *testing.T, body string) string {
	t.Helper()
	i := strings.Index(body, "token=")
	require.GreaterOrEqual(t, i, 0, "el correo trae el enlace de reset")
	rest := body[i+len("token="):]
	if j := strings.IndexByte(rest, '"'); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

const (
	adminEmail  = "admin@tienda.local"
	adminPass   = "claveAdmin1"
	adminSecret = "secreto-de-pruebas"
)

func newAdminFixture(t *testing.T) (*authadmin.UseCase, *memUserRepo, *memResetRepo, *captureMailer, *notifier.Dispatcher) {
	t.Helper()
	users := &memUserRepo{byID: map[string]*entity.AdminUser{}}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, users.Create(&entity.AdminUser{
		ID:           "user-1",
		Name:         "Admin",
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         entity.RoleSuperAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
	resets := &memResetRepo{byHash: map[string]*entity.PasswordReset{}}
	mailer := &captureMailer{}
	d := notifier.NewDispatcher(mailer, logger.NewNop(), 16)
	d.Start()
	uc := authadmin.NewUseCase(users, resets, d, authadmin.Config{
		JWTSecret:    adminSecret,
		JWTIssuer:    "tienda-admin-api",
		JWTExpMin:    60,
		ResetTTL:     time.Hour,
		ResetLinkURL: "http://localhost/admin/reset-password",
	})
	return uc, users, resets, mailer, d
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: login correcto emite un JWT con el id y el rol en los claims.
func TestLogin_EmiteJWTConRol(t *testing.T) {
	uc, _, _, _, d := newAdminFixture(t)
	defer d.Close()

	out, err := uc.Login(dto.LoginRequest{Email: adminEmail, Password: adminPass})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "super_admin", out.User.Role)

	id, role, err := jwt.Parse(adminSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, "super_admin", role)
}

// Caso 2: contraseña incorrecta o email desconocido → ErrInvalidCredentials,
// sin distinguir cuál de los dos falló.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _, _, _, d := newAdminFixture(t)
	defer d.Close()

	_, err := uc.Login(dto.LoginRequest{Email: adminEmail, Password: "incorrecta1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@tienda.local", Password: adminPass})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(dto.LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// Caso 3: forgot responde igual exista o no el email, y solo persiste el hash
// del token (nunca el plano).
func TestForgotPassword_NoFiltraEmails(t *testing.T) {
	uc, _, resets, mailer, d := newAdminFixture(t)

	require.NoError(t, uc.ForgotPassword(adminEmail))
	require.NoError(t, uc.ForgotPassword("nadie@tienda.local"))
	d.Close()

	// Solo la cuenta existente genera token y correo.
	require.Len(t, resets.byHash, 1)
	require.Len(t, mailer.bodies, 1)

	plain := resetTokenFrom(t, mailer.lastBody())
	_, stored := resets.byHash[plain]
	assert.False(t, stored, "se persiste el hash, no el token plano")
}

// Caso 4: flujo completo forgot → reset; el token es de un solo uso y la
// contraseña vieja deja de servir.
func TestResetPassword_UnSoloUso(t *testing.T) {
	uc, _, _, mailer, d := newAdminFixture(t)

	require.NoError(t, uc.ForgotPassword(adminEmail))
	d.Close()
	plain := resetTokenFrom(t, mailer.lastBody())

	err := uc.ResetPassword(dto.ResetPasswordRequest{Token: plain, Password: "claveNueva99"})
	require.NoError(t, err)

	// La nueva contraseña entra, la vieja no.
	_, err = uc.Login(dto.LoginRequest{Email: adminEmail, Password: "claveNueva99"})
	assert.NoError(t, err)
	_, err = uc.Login(dto.LoginRequest{Email: adminEmail, Password: adminPass})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Segundo canje del mismo token falla.
	err = uc.ResetPassword(dto.ResetPasswordRequest{Token: plain, Password: "otraClave123"})
	assert.ErrorIs(t, err, domain.ErrCodeInvalid)
}

// Caso 5: token vencido → ErrCodeInvalid.
func TestResetPassword_TokenVencido(t *testing.T) {
	uc, _, resets, mailer, d := newAdminFixture(t)

	require.NoError(t, uc.ForgotPassword(adminEmail))
	d.Close()
	plain := resetTokenFrom(t, mailer.lastBody())

	for _, r := range resets.byHash {
		r.ExpiresAt = time.Now().Add(-time.Minute)
	}
	err := uc.ResetPassword(dto.ResetPasswordRequest{Token: plain, Password: "claveNueva99"})
	assert.ErrorIs(t, err, domain.ErrCodeInvalid)
}

// Caso 6: un token emitido para el guard customer no sirve en el guard admin.
func TestResetPassword_GuardCruzado(t *testing.T) {
	uc, _, resets, _, d := newAdminFixture(t)
	defer d.Close()

	// Simular un reset emitido por el otro guard con el mismo email.
	now := time.Now()
	require.NoError(t, resets.Create(&entity.PasswordReset{
		ID:        "reset-x",
		Guard:     "customer",
		Email:     adminEmail,
		TokenHash: sha256Hex("token-plano"),
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}))
	err := uc.ResetPassword(dto.ResetPasswordRequest{Token: "token-plano", Password: "claveNueva99"})
	assert.ErrorIs(t, err, domain.ErrCodeInvalid)
}

// Caso 7: Me devuelve el perfil; un id inexistente da ErrUnauthorized.
func TestMe(t *testing.T) {
	uc, _, _, _, d := newAdminFixture(t)
	defer d.Close()

	out, err := uc.Me("user-1")
	require.NoError(t, err)
	assert.Equal(t, adminEmail, out.Email)

	_, err = uc.Me("fantasma")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
