package usecase_test

import (
	"context"
	"errors"
	"mime/multipart"
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

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	byID    map[string]*entity.Product
	failIns bool
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	if f.failIns {
		return errors.New("insert falló")
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, exists := f.byID[id]; exists {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}
func (f *fakeProductRepo) SetStatus(id, status string) error {
	p, exists := f.byID[id]
	if !exists {
		return domain.ErrNotFound
	}
	p.Status = status
	return nil
}
func (f *fakeProductRepo) List(fl repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.byID {
		if fl.OnlyVisible && p.Status != entity.ProductStatusPublished {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}
func (f *fakeProductRepo) Search(q string, fl repository.ListFilter) ([]*entity.Product, error) {
	return f.List(repository.ProductFilter{ListFilter: fl})
}
func (f *fakeProductRepo) Delete(id string) error {
	if _, exists := f.byID[id]; !exists {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeImageRepo struct {
	byProduct map[string][]entity.ProductImage
}

func (f *fakeImageRepo) ReplaceForProduct(productID string, images []entity.ProductImage) error {
	f.byProduct[productID] = images
	return nil
}
func (f *fakeImageRepo) ListByProduct(productID string) ([]entity.ProductImage, error) {
	return f.byProduct[productID], nil
}
func (f *fakeImageRepo) DeleteByProduct(productID string) error {
	delete(f.byProduct, productID)
	return nil
}

type fakeVariantRepo struct {
	byProduct map[string][]entity.ProductVariant
	pivots    map[string][]entity.ProductSize
}

func (f *fakeVariantRepo) ReplaceForProduct(productID string, variants []entity.ProductVariant) error {
	f.byProduct[productID] = variants
	return nil
}
func (f *fakeVariantRepo) ReplaceSizePivots(productID string, pivots []entity.ProductSize) error {
	f.pivots[productID] = pivots
	return nil
}
func (f *fakeVariantRepo) ListByProduct(productID string) ([]entity.ProductVariant, error) {
	return f.byProduct[productID], nil
}
func (f *fakeVariantRepo) DeleteByProduct(productID string) error {
	delete(f.byProduct, productID)
	delete(f.pivots, productID)
	return nil
}

type fakeCategoryRepo struct {
	byID map[string]*entity.Category
}

func (f *fakeCategoryRepo) Create(c *entity.Category) error { f.byID[c.ID] = c; return nil }
func (f *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return f.byID[id], nil
}
func (f *fakeCategoryRepo) Update(c *entity.Category) error { f.byID[c.ID] = c; return nil }
func (f *fakeCategoryRepo) SetStatus(id string, status bool) error {
	if c := f.byID[id]; c != nil {
		c.Status = status
		return nil
	}
	return domain.ErrNotFound
}
func (f *fakeCategoryRepo) List(fl repository.ListFilter) ([]*entity.Category, error) {
	return nil, nil
}
func (f *fakeCategoryRepo) Search(q string, fl repository.ListFilter) ([]*entity.Category, error) {
	return nil, nil
}
func (f *fakeCategoryRepo) Delete(id string) error { delete(f.byID, id); return nil }

// fakeTxRunner ejecuta el callback contra los mismos fakes; si el callback
// falla simula el rollback restaurando el estado previo.
type fakeTxRunner struct {
	products *fakeProductRepo
	images   *fakeImageRepo
	variants *fakeVariantRepo
}

func (f *fakeTxRunner) RunProduct(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	imageRepo repository.ProductImageRepository,
	variantRepo repository.ProductVariantRepository,
) error) error {
	snapProducts := map[string]*entity.Product{}
	for k, v := range f.products.byID {
		cp := *v
		snapProducts[k] = &cp
	}
	snapImages := map[string][]entity.ProductImage{}
	for k, v := range f.images.byProduct {
		snapImages[k] = append([]entity.ProductImage(nil), v...)
	}
	snapVariants := map[string][]entity.ProductVariant{}
	for k, v := range f.variants.byProduct {
		snapVariants[k] = append([]entity.ProductVariant(nil), v...)
	}

	if err := fn(f.products, f.images, f.variants); err != nil {
		f.products.byID = snapProducts
		f.images.byProduct = snapImages
		f.variants.byProduct = snapVariants
		return err
	}
	return nil
}

// fakeStore registra guardados y borrados de archivos.
type fakeStore struct {
	saved   []string
	deleted []string
	n       int
}

func (f *fakeStore) Save(fh *multipart.FileHeader) (string, error) {
	f.n++
	path := "/uploads/img-" + string(rune('a'+f.n-1)) + ".jpg"
	f.saved = append(f.saved, path)
	return path, nil
}
func (f *fakeStore) Delete(publicPath string) error {
	f.deleted = append(f.deleted, publicPath)
	return nil
}

func newProductFixture() (*usecase.ProductUseCase, *fakeProductRepo, *fakeImageRepo, *fakeVariantRepo, *fakeStore) {
	products := newFakeProductRepo()
	images := &fakeImageRepo{byProduct: map[string][]entity.ProductImage{}}
	variants := &fakeVariantRepo{byProduct: map[string][]entity.ProductVariant{}, pivots: map[string][]entity.ProductSize{}}
	cats := &fakeCategoryRepo{byID: map[string]*entity.Category{
		"cat-1": {ID: "cat-1", Name: "Camisas", Status: true},
	}}
	store := &fakeStore{}
	tx := &fakeTxRunner{products: products, images: images, variants: variants}
	uc := usecase.NewProductUseCase(products, images, variants, cats, tx, store)
	return uc, products, images, variants, store
}

func validProductRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		CategoryID: "cat-1",
		Name:       "Camisa Azul",
		Price:      decimal.RequireFromString("49.90"),
		Stock:      10,
		Status:     entity.ProductStatusPublished,
		Variants: []dto.VariantRequest{
			{SizeID: "s-m", ColorID: "c-azul", Stock: 5, AdditionalPrice: decimal.Zero},
			{SizeID: "s-l", ColorID: "c-azul", Stock: 5, AdditionalPrice: decimal.RequireFromString("2.00")},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: alta completa persiste producto, variantes y pivots.
func TestProduct_CreateConVariantes(t *testing.T) {
	uc, products, _, variants, _ := newProductFixture()

	out, err := uc.Create(context.Background(), validProductRequest(), nil)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "camisa-azul", out.Slug)
	assert.Len(t, out.Variants, 2)

	assert.Len(t, products.byID, 1)
	assert.Len(t, variants.byProduct[out.ID], 2)
	assert.Len(t, variants.pivots[out.ID], 2, "un pivot por talla")
}

// Caso 2: combinación talla×color duplicada → validación, nada persiste.
func TestProduct_CreateVarianteDuplicada(t *testing.T) {
	uc, products, _, _, _ := newProductFixture()

	req := validProductRequest()
	req.Variants = append(req.Variants, req.Variants[0])
	_, err := uc.Create(context.Background(), req, nil)

	ve, isVal := domain.AsValidation(err)
	require.True(t, isVal)
	assert.Contains(t, ve.Fields, "variants")
	assert.Empty(t, products.byID, "no debe quedar producto huérfano")
}

// Caso 3: categoría inexistente → validación.
func TestProduct_CreateCategoriaInexistente(t *testing.T) {
	uc, _, _, _, _ := newProductFixture()

	req := validProductRequest()
	req.CategoryID = "cat-fantasma"
	_, err := uc.Create(context.Background(), req, nil)

	ve, isVal := domain.AsValidation(err)
	require.True(t, isVal)
	assert.Contains(t, ve.Fields, "kategori_id")
}

// Caso 4: si la transacción falla, el rollback no deja filas y los archivos
// guardados se compensan (todo-o-nada).
func TestProduct_CreateFalloTransaccionCompensaArchivos(t *testing.T) {
	uc, products, _, _, store := newProductFixture()
	products.failIns = true

	fh := &multipart.FileHeader{Filename: "foto.jpg"}
	_, err := uc.Create(context.Background(), validProductRequest(), []*multipart.FileHeader{fh})
	require.Error(t, err)

	assert.Empty(t, products.byID, "rollback: sin producto")
	assert.Equal(t, store.saved, store.deleted,
		"cada archivo guardado debe borrarse al compensar")
}

// Caso 5: borrar dispara el hook de limpieza de archivos y no deja hijos.
func TestProduct_DeleteLimpiaArchivos(t *testing.T) {
	uc, products, images, _, store := newProductFixture()

	fh := &multipart.FileHeader{Filename: "foto.jpg"}
	out, err := uc.Create(context.Background(), validProductRequest(), []*multipart.FileHeader{fh})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(out.ID))
	assert.Empty(t, products.byID)
	assert.Contains(t, store.deleted, images.byProduct[out.ID][0].Path,
		"el hook post-delete borra el archivo de imagen")
}

// Caso 6: borrar un producto inexistente → ErrNotFound.
func TestProduct_DeleteInexistente(t *testing.T) {
	uc, _, _, _, _ := newProductFixture()
	assert.ErrorIs(t, uc.Delete("no-existe"), domain.ErrNotFound)
}

// Caso 7: visibilidad pública — un draft no aparece para anónimos y aparece
// al publicarse.
func TestProduct_DraftAPublicado(t *testing.T) {
	uc, _, _, _, _ := newProductFixture()

	req := validProductRequest()
	req.Status = entity.ProductStatusDraft
	out, err := uc.Create(context.Background(), req, nil)
	require.NoError(t, err)

	publicList, err := uc.List(true, "", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, publicList, "draft invisible para anónimos")

	adminList, err := uc.List(false, "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, adminList, 1, "el panel sí ve el draft")

	_, err = uc.SetStatus(out.ID, entity.ProductStatusPublished)
	require.NoError(t, err)

	publicList, err = uc.List(true, "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, publicList, 1, "al publicar aparece en el listado público")
}

// Caso 8: timestamps se asignan al crear.
func TestProduct_CreateAsignaTimestamps(t *testing.T) {
	uc, _, _, _, _ := newProductFixture()
	before := time.Now().Add(-time.Second)

	out, err := uc.Create(context.Background(), validProductRequest(), nil)
	require.NoError(t, err)
	assert.True(t, out.CreatedAt.After(before))
	assert.Equal(t, out.CreatedAt, out.UpdatedAt)
}
