package http_test

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	apphttp "github.com/jhoicas/tienda-admin-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el guard customer
// ──────────────────────────────────────────────────────────────────────────────

type fakeTokenRepo struct {
	byHash map[string]*entity.CustomerToken
}

func (f *fakeTokenRepo) Create(t *entity.CustomerToken) error {
	f.byHash[t.TokenHash] = t
	return nil
}
func (f *fakeTokenRepo) GetByHash(hash string) (*entity.CustomerToken, error) {
	return f.byHash[hash], nil
}
func (f *fakeTokenRepo) TouchLastUsed(id string, at time.Time) error { return nil }
func (f *fakeTokenRepo) DeleteByHash(hash string) error {
	delete(f.byHash, hash)
	return nil
}
func (f *fakeTokenRepo) DeleteByCustomer(customerID string) error {
	for h, tok := range f.byHash {
		if tok.CustomerID == customerID {
			delete(f.byHash, h)
		}
	}
	return nil
}

type fakeCustomerRepo struct {
	byID map[string]*entity.Customer
}

func (f *fakeCustomerRepo) Create(c *entity.Customer) error { f.byID[c.ID] = c; return nil }
func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return f.byID[id], nil
}
func (f *fakeCustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	for _, c := range f.byID {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeCustomerRepo) GetByUsername(username string) (*entity.Customer, error) {
	for _, c := range f.byID {
		if c.Username == username {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeCustomerRepo) Update(c *entity.Customer) error { f.byID[c.ID] = c; return nil }
func (f *fakeCustomerRepo) UpdateStatus(id, status string) error {
	if c := f.byID[id]; c != nil {
		c.Status = status
	}
	return nil
}
func (f *fakeCustomerRepo) TouchLastLogin(id string, at time.Time) error { return nil }
func (f *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepo) Search(q string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepo) Delete(id string) error { delete(f.byID, id); return nil }

func hashPlain(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// buildCustomerApp prepara la ruta protegida y siembra un customer con el
// estado dado y un token vigente "token-valido".
func buildCustomerApp(status string) *fiber.App {
	tokens := &fakeTokenRepo{byHash: map[string]*entity.CustomerToken{}}
	customers := &fakeCustomerRepo{byID: map[string]*entity.Customer{}}

	customers.byID["cust-1"] = &entity.Customer{
		ID: "cust-1", Username: "ana", Email: "ana@example.com", Status: status,
	}
	tokens.byHash[hashPlain("token-valido")] = &entity.CustomerToken{
		ID: "tok-1", CustomerID: "cust-1", TokenHash: hashPlain("token-valido"),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	tokens.byHash[hashPlain("token-vencido")] = &entity.CustomerToken{
		ID: "tok-2", CustomerID: "cust-1", TokenHash: hashPlain("token-vencido"),
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	app := fiber.New()
	app.Get("/customer/me",
		apphttp.CustomerAuthMiddleware(tokens, customers),
		apphttp.RequireActiveCustomer(),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"customer_id": apphttp.GetCustomerID(c)})
		},
	)
	return app
}

func doCustomerRequest(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/customer/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: token válido + cuenta active → 200.
func TestCustomerAuth_TokenValidoCuentaActiva(t *testing.T) {
	app := buildCustomerApp(entity.CustomerStatusActive)
	resp := doCustomerRequest(t, app, "token-valido")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "cust-1", body["customer_id"])
}

// Caso 2: sin token → 401 plano (sin code account_inactive).
func TestCustomerAuth_SinToken(t *testing.T) {
	app := buildCustomerApp(entity.CustomerStatusActive)
	resp := doCustomerRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 3: token desconocido → 401.
func TestCustomerAuth_TokenDesconocido(t *testing.T) {
	app := buildCustomerApp(entity.CustomerStatusActive)
	resp := doCustomerRequest(t, app, "token-falso")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 4: token vencido → 401.
func TestCustomerAuth_TokenVencido(t *testing.T) {
	app := buildCustomerApp(entity.CustomerStatusActive)
	resp := doCustomerRequest(t, app, "token-vencido")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: token válido pero cuenta pending → 403 con code account_inactive,
// distinguible del 401 de no autenticado.
func TestCustomerAuth_CuentaInactivaEsDistinguible(t *testing.T) {
	app := buildCustomerApp(entity.CustomerStatusPending)
	resp := doCustomerRequest(t, app, "token-valido")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"token válido con cuenta no activa es 403, no 401")

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Code string `json:"code"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "account_inactive", body.Data.Code)
	assert.Contains(t, body.Message, "verifica")
}

// Caso 6: cuenta suspended recibe el mismo payload distinguible.
func TestCustomerAuth_CuentaSuspendida(t *testing.T) {
	app := buildCustomerApp(entity.CustomerStatusSuspended)
	resp := doCustomerRequest(t, app, "token-valido")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
