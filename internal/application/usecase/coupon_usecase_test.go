package usecase_test

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/application/usecase"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// fakeKuponRepo implementa CouponRepository en memoria. Redeem replica la
// semántica del UPDATE condicional: verificación y incremento bajo el mismo
// lock, nunca leer-modificar-escribir por separado.
type fakeKuponRepo struct {
	mu     sync.Mutex
	byID   map[string]*entity.Coupon
	byCode map[string]*entity.Coupon
}

func newFakeKuponRepo() *fakeKuponRepo {
	return &fakeKuponRepo{byID: map[string]*entity.Coupon{}, byCode: map[string]*entity.Coupon{}}
}

func (f *fakeKuponRepo) Create(c *entity.Coupon) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, dup := f.byCode[c.Code]; dup {
		return domain.ErrDuplicate
	}
	cp := *c
	f.byID[c.ID] = &cp
	f.byCode[c.Code] = &cp
	return nil
}

func (f *fakeKuponRepo) GetByID(id string) (*entity.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, okID := f.byID[id]; okID {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeKuponRepo) GetByCode(code string) (*entity.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, okCode := f.byCode[code]; okCode {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeKuponRepo) Update(c *entity.Coupon) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, exists := f.byID[c.ID]
	if !exists {
		return domain.ErrNotFound
	}
	delete(f.byCode, cur.Code)
	cp := *c
	f.byID[c.ID] = &cp
	f.byCode[c.Code] = &cp
	return nil
}

func (f *fakeKuponRepo) SetActive(id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, exists := f.byID[id]
	if !exists {
		return domain.ErrNotFound
	}
	c.IsActive = active
	return nil
}

func (f *fakeKuponRepo) List(fl repository.ListFilter) ([]*entity.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Coupon
	for _, c := range f.byID {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeKuponRepo) Search(q string, fl repository.ListFilter) ([]*entity.Coupon, error) {
	return f.List(fl)
}

func (f *fakeKuponRepo) ListActive(now time.Time) ([]*entity.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Coupon
	for _, c := range f.byID {
		if c.Redeemable(now) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeKuponRepo) Redeem(code string, now time.Time) (*entity.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, exists := f.byCode[code]
	if !exists {
		return nil, domain.ErrNotFound
	}
	if !c.Redeemable(now) {
		return nil, domain.ErrCouponExhausted
	}
	c.CurrentUsage++
	cp := *c
	return &cp, nil
}

func (f *fakeKuponRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, exists := f.byID[id]
	if !exists {
		return domain.ErrNotFound
	}
	delete(f.byCode, c.Code)
	delete(f.byID, id)
	return nil
}

func validKuponRequest() dto.CreateKuponRequest {
	return dto.CreateKuponRequest{
		Code:           "verano10",
		DiscountAmount: decimal.RequireFromString("10.00"),
		DiscountType:   entity.DiscountTypePercent,
		StartDate:      time.Now().Add(-time.Hour),
		EndDate:        time.Now().Add(24 * time.Hour),
		MaxUsage:       3,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el código se normaliza a mayúsculas al crear.
func TestKupon_CreateNormalizaCodigo(t *testing.T) {
	uc := usecase.NewKuponUseCase(newFakeKuponRepo())
	out, err := uc.Create(validKuponRequest())
	require.NoError(t, err)
	assert.Equal(t, "VERANO10", out.Code)
	assert.True(t, out.IsActive, "activo por defecto")
}

// Caso 2: código duplicado → ErrDuplicate (409).
func TestKupon_CreateCodigoDuplicado(t *testing.T) {
	uc := usecase.NewKuponUseCase(newFakeKuponRepo())
	_, err := uc.Create(validKuponRequest())
	require.NoError(t, err)

	_, err = uc.Create(validKuponRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Caso 3: validaciones de alta (tipo, ventana, cupo).
func TestKupon_CreateValidaciones(t *testing.T) {
	uc := usecase.NewKuponUseCase(newFakeKuponRepo())

	req := validKuponRequest()
	req.DiscountType = "gratis"
	req.MaxUsage = -1
	req.EndDate = req.StartDate.Add(-time.Hour)
	_, err := uc.Create(req)

	ve, isVal := domain.AsValidation(err)
	require.True(t, isVal, "debe ser error de validación")
	assert.Contains(t, ve.Fields, "discount_type")
	assert.Contains(t, ve.Fields, "max_usage")
	assert.Contains(t, ve.Fields, "end_date")
}

// Caso 4: canjear un código inexistente distingue NotFound de agotado.
func TestKupon_RedeemInexistente(t *testing.T) {
	uc := usecase.NewKuponUseCase(newFakeKuponRepo())
	_, err := uc.Redeem("NOEXISTE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Caso 5: un cupón fuera de ventana o agotado devuelve ErrCouponExhausted.
func TestKupon_RedeemAgotado(t *testing.T) {
	repo := newFakeKuponRepo()
	uc := usecase.NewKuponUseCase(repo)
	req := validKuponRequest()
	req.MaxUsage = 1
	_, err := uc.Create(req)
	require.NoError(t, err)

	_, err = uc.Redeem("VERANO10")
	require.NoError(t, err)

	_, err = uc.Redeem("VERANO10")
	assert.ErrorIs(t, err, domain.ErrCouponExhausted)
}

// Caso 6 (propiedad): bajo canje concurrente el uso jamás supera el cupo.
func TestKupon_RedeemConcurrenteNoSuperaCupo(t *testing.T) {
	repo := newFakeKuponRepo()
	uc := usecase.NewKuponUseCase(repo)
	req := validKuponRequest()
	req.MaxUsage = 5
	created, err := uc.Create(req)
	require.NoError(t, err)

	const goroutines = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	okCount := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.Redeem("VERANO10"); err == nil {
				mu.Lock()
				okCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, okCount, "solo max_usage canjes pueden pasar")
	final, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, final.CurrentUsage, "current_usage nunca supera max_usage")
}

// Caso 7: ListActive excluye inactivos, fuera de ventana y agotados.
func TestKupon_ListActive(t *testing.T) {
	repo := newFakeKuponRepo()
	uc := usecase.NewKuponUseCase(repo)

	vigente := validKuponRequest()
	_, err := uc.Create(vigente)
	require.NoError(t, err)

	vencido := validKuponRequest()
	vencido.Code = "VENCIDO"
	vencido.StartDate = time.Now().Add(-48 * time.Hour)
	vencido.EndDate = time.Now().Add(-24 * time.Hour)
	_, err = uc.Create(vencido)
	require.NoError(t, err)

	inactivo := validKuponRequest()
	inactivo.Code = "APAGADO"
	off := false
	inactivo.IsActive = &off
	_, err = uc.Create(inactivo)
	require.NoError(t, err)

	activos, err := uc.ListActive()
	require.NoError(t, err)
	require.Len(t, activos, 1)
	assert.Equal(t, "VERANO10", activos[0].Code)
}
