package authcustomer_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin-api/internal/application/authcustomer"
	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/application/notifier"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memCustomerRepo struct {
	byID map[string]*entity.Customer
	// onDelete simula la FK en cascada de la DB.
	onDelete func(customerID string)
}

func (m *memCustomerRepo) Create(c *entity.Customer) error {
	for _, e := range m.byID {
		if e.Email == c.Email || e.Username == c.Username {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}
func (m *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if c, exists := m.byID[id]; exists {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}
func (m *memCustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	for _, c := range m.byID {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}
func (m *memCustomerRepo) GetByUsername(username string) (*entity.Customer, error) {
	for _, c := range m.byID {
		if c.Username == username {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}
func (m *memCustomerRepo) Update(c *entity.Customer) error {
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}
func (m *memCustomerRepo) UpdateStatus(id, status string) error {
	c, exists := m.byID[id]
	if !exists {
		return domain.ErrNotFound
	}
	c.Status = status
	return nil
}
func (m *memCustomerRepo) TouchLastLogin(id string, at time.Time) error {
	if c := m.byID[id]; c != nil {
		c.LastLoginAt = &at
	}
	return nil
}
func (m *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }
func (m *memCustomerRepo) Search(q string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (m *memCustomerRepo) Delete(id string) error {
	if _, exists := m.byID[id]; !exists {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	if m.onDelete != nil {
		m.onDelete(id)
	}
	return nil
}

type memTokenRepo struct {
	byHash map[string]*entity.CustomerToken
}

func (m *memTokenRepo) Create(t *entity.CustomerToken) error {
	cp := *t
	m.byHash[t.TokenHash] = &cp
	return nil
}
func (m *memTokenRepo) GetByHash(hash string) (*entity.CustomerToken, error) {
	return m.byHash[hash], nil
}
func (m *memTokenRepo) TouchLastUsed(id string, at time.Time) error { return nil }
func (m *memTokenRepo) DeleteByHash(hash string) error {
	delete(m.byHash, hash)
	return nil
}
func (m *memTokenRepo) DeleteByCustomer(customerID string) error {
	for h, tok := range m.byHash {
		if tok.CustomerID == customerID {
			delete(m.byHash, h)
		}
	}
	return nil
}

type memCodeRepo struct {
	byCustomer map[string][]*entity.VerificationCode
}

func (m *memCodeRepo) Create(v *entity.VerificationCode) error {
	cp := *v
	m.byCustomer[v.CustomerID] = append(m.byCustomer[v.CustomerID], &cp)
	return nil
}
func (m *memCodeRepo) GetLatestByCustomer(customerID string) (*entity.VerificationCode, error) {
	codes := m.byCustomer[customerID]
	for i := len(codes) - 1; i >= 0; i-- {
		if codes[i].ConsumedAt == nil {
			cp := *codes[i]
			return &cp, nil
		}
	}
	return nil, nil
}
func (m *memCodeRepo) Consume(id string, at time.Time) error {
	for _, codes := range m.byCustomer {
		for _, c := range codes {
			if c.ID == id {
				c.ConsumedAt = &at
				return nil
			}
		}
	}
	return domain.ErrNotFound
}
func (m *memCodeRepo) DeleteByCustomer(customerID string) error {
	delete(m.byCustomer, customerID)
	return nil
}

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

// noopMailer satisface notifier.Mailer; registra destinos.
type noopMailer struct {
	mu   sync.Mutex
	sent []string
}

func (n *noopMailer) Send(to, subject, htmlBody string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, to)
	return nil
}

type fixture struct {
	uc        *authcustomer.UseCase
	customers *memCustomerRepo
	tokens    *memTokenRepo
	codes     *memCodeRepo
	d         *notifier.Dispatcher
}

func newFixture() *fixture {
	customers := &memCustomerRepo{byID: map[string]*entity.Customer{}}
	tokens := &memTokenRepo{byHash: map[string]*entity.CustomerToken{}}
	customers.onDelete = func(id string) { _ = tokens.DeleteByCustomer(id) }
	codes := &memCodeRepo{byCustomer: map[string][]*entity.VerificationCode{}}
	resets := &memResetRepo{byHash: map[string]*entity.PasswordReset{}}
	d := notifier.NewDispatcher(&noopMailer{}, logger.NewNop(), 16)
	d.Start()
	uc := authcustomer.NewUseCase(customers, tokens, codes, resets, d, authcustomer.Config{
		ResetTTL:     time.Hour,
		ResetLinkURL: "http://localhost/reset-password",
	})
	return &fixture{uc: uc, customers: customers, tokens: tokens, codes: codes, d: d}
}

func (f *fixture) register(t *testing.T) *dto.CustomerResponse {
	t.Helper()
	out, err := f.uc.Register(dto.RegisterCustomerRequest{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "secreta123",
	})
	require.NoError(t, err)
	return out
}

// latestCode lee el OTP vigente directo del repo fake.
func (f *fixture) latestCode(t *testing.T, customerID string) *entity.VerificationCode {
	t.Helper()
	code, err := f.codes.GetLatestByCustomer(customerID)
	require.NoError(t, err)
	require.NotNil(t, code)
	return code
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: registro deja la cuenta pending con un OTP de 6 dígitos y vigencia
// de 3 minutos.
func TestRegister_QuedaPendingConOTP(t *testing.T) {
	f := newFixture()
	defer f.d.Close()

	out := f.register(t)
	assert.Equal(t, entity.CustomerStatusPending, out.Status)

	code := f.latestCode(t, out.ID)
	assert.Len(t, code.Code, 6)
	assert.WithinDuration(t, time.Now().Add(3*time.Minute), code.ExpiresAt, 5*time.Second)
}

// Caso 2: verificar el OTP activa la cuenta; el código queda consumido.
func TestVerifyOTP_ActivaCuenta(t *testing.T) {
	f := newFixture()
	defer f.d.Close()

	out := f.register(t)
	code := f.latestCode(t, out.ID)

	verified, err := f.uc.VerifyOTP(dto.VerifyOTPRequest{Email: "ana@example.com", Code: code.Code})
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerStatusActive, verified.Status)

	// Un segundo canje del mismo código falla: la cuenta ya no está pending.
	_, err = f.uc.VerifyOTP(dto.VerifyOTPRequest{Email: "ana@example.com", Code: code.Code})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Caso 3: código incorrecto → ErrCodeInvalid; la cuenta sigue pending.
func TestVerifyOTP_CodigoIncorrecto(t *testing.T) {
	f := newFixture()
	defer f.d.Close()

	out := f.register(t)
	_, err := f.uc.VerifyOTP(dto.VerifyOTPRequest{Email: "ana@example.com", Code: "000000"})
	assert.ErrorIs(t, err, domain.ErrCodeInvalid)

	c, _ := f.customers.GetByID(out.ID)
	assert.Equal(t, entity.CustomerStatusPending, c.Status)
}

// Caso 4: código vencido → ErrCodeExpired.
func TestVerifyOTP_CodigoVencido(t *testing.T) {
	f := newFixture()
	defer f.d.Close()

	out := f.register(t)
	// Forzar la expiración directamente en el fake.
	for _, c := range f.codes.byCustomer[out.ID] {
		c.ExpiresAt = time.Now().Add(-time.Minute)
	}
	code := f.latestCode(t, out.ID)

	_, err := f.uc.VerifyOTP(dto.VerifyOTPRequest{Email: "ana@example.com", Code: code.Code})
	assert.ErrorIs(t, err, domain.ErrCodeExpired)
}

// Caso 5: reenviar invalida el código anterior y emite uno nuevo.
func TestResendOTP_InvalidaAnterior(t *testing.T) {
	f := newFixture()
	defer f.d.Close()

	out := f.register(t)
	first := f.latestCode(t, out.ID).Code

	require.NoError(t, f.uc.ResendOTP("ana@example.com"))
	second := f.latestCode(t, out.ID)

	if first == second.Code {
		t.Skip("colisión improbable de OTP aleatorio")
	}
	_, err := f.uc.VerifyOTP(dto.VerifyOTPRequest{Email: "ana@example.com", Code: first})
	assert.ErrorIs(t, err, domain.ErrCodeInvalid, "el código previo ya no vale")
}

// Caso 6: login con credenciales malas → ErrInvalidCredentials; con
// credenciales buenas y cuenta pending → ErrInactiveAccount (distinguible).
func TestLogin_CredencialesVsCuentaInactiva(t *testing.T) {
	f := newFixture()
	defer f.d.Close()

	f.register(t)

	_, err := f.uc.Login(dto.CustomerLoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.uc.Login(dto.CustomerLoginRequest{Email: "ana@example.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrInactiveAccount,
		"credenciales correctas con cuenta pending se distinguen de credenciales malas")
}

// Caso 7: login exitoso emite un token opaco que se persiste solo como hash.
func TestLogin_EmiteTokenOpaco(t *testing.T) {
	f := newFixture()
	defer f.d.Close()

	out := f.register(t)
	code := f.latestCode(t, out.ID)
	_, err := f.uc.VerifyOTP(dto.VerifyOTPRequest{Email: "ana@example.com", Code: code.Code})
	require.NoError(t, err)

	login, err := f.uc.Login(dto.CustomerLoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
	assert.NotNil(t, login.Customer.LastLoginAt)

	_, stored := f.tokens.byHash[login.Token]
	assert.False(t, stored, "el token plano jamás se persiste")
	require.Len(t, f.tokens.byHash, 1)

	// Logout revoca la sesión.
	require.NoError(t, f.uc.Logout(login.Token))
	assert.Empty(t, f.tokens.byHash)
}

// Caso 8: eliminar la cuenta revoca todos los tokens emitidos (cascada).
func TestDeleteCustomer_RevocaTokens(t *testing.T) {
	f := newFixture()
	defer f.d.Close()

	out := f.register(t)
	code := f.latestCode(t, out.ID)
	_, err := f.uc.VerifyOTP(dto.VerifyOTPRequest{Email: "ana@example.com", Code: code.Code})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := f.uc.Login(dto.CustomerLoginRequest{Email: "ana@example.com", Password: "secreta123"})
		require.NoError(t, err)
	}
	require.Len(t, f.tokens.byHash, 3)

	require.NoError(t, f.customers.Delete(out.ID))
	assert.Empty(t, f.tokens.byHash, "ningún token sobrevive a la cuenta")
}

// Caso 9: cambiar contraseña revoca las otras sesiones y conserva la actual.
func TestChangePassword_RevocaOtrasSesiones(t *testing.T) {
	f := newFixture()
	defer f.d.Close()

	out := f.register(t)
	code := f.latestCode(t, out.ID)
	_, err := f.uc.VerifyOTP(dto.VerifyOTPRequest{Email: "ana@example.com", Code: code.Code})
	require.NoError(t, err)

	first, err := f.uc.Login(dto.CustomerLoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)
	second, err := f.uc.Login(dto.CustomerLoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)
	require.Len(t, f.tokens.byHash, 2)

	err = f.uc.ChangePassword(out.ID, dto.ChangePasswordRequest{
		CurrentPassword: "secreta123",
		NewPassword:     "todaviaMasSecreta",
	}, second.Token)
	require.NoError(t, err)

	require.Len(t, f.tokens.byHash, 1, "solo sobrevive la sesión actual")
	_ = first // la primera sesión quedó revocada

	// Y la nueva contraseña funciona.
	_, err = f.uc.Login(dto.CustomerLoginRequest{Email: "ana@example.com", Password: "todaviaMasSecreta"})
	assert.NoError(t, err)
}

// Caso 10: email duplicado al registrar → ErrDuplicate.
func TestRegister_EmailDuplicado(t *testing.T) {
	f := newFixture()
	defer f.d.Close()

	f.register(t)
	_, err := f.uc.Register(dto.RegisterCustomerRequest{
		Username: "otra",
		Email:    "ana@example.com",
		Password: "secreta123",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
