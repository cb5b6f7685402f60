package repository

import "github.com/jhoicas/tienda-admin-api/internal/domain/entity"

// ListFilter filtros comunes de listado. OnlyVisible=true restringe a
// registros con estado visible (listados públicos sin principal admin).
type ListFilter struct {
	OnlyVisible bool
	Limit       int
	Offset      int
}

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(c *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	Update(c *entity.Category) error
	SetStatus(id string, status bool) error
	List(f ListFilter) ([]*entity.Category, error)
	Search(query string, f ListFilter) ([]*entity.Category, error)
	Delete(id string) error
}

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	ListFilter
	CategoryID string
}

// ProductRepository define el puerto de persistencia para Product.
// Las operaciones sobre imágenes, pivots y variantes viven en sus propios
// puertos para poder atarlas a una misma transacción vía CatalogTxRunner.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(p *entity.Product) error
	SetStatus(id, status string) error
	List(f ProductFilter) ([]*entity.Product, error)
	Search(query string, f ListFilter) ([]*entity.Product, error)
	Delete(id string) error
}

// ProductImageRepository persiste imágenes de producto.
type ProductImageRepository interface {
	ReplaceForProduct(productID string, images []entity.ProductImage) error
	ListByProduct(productID string) ([]entity.ProductImage, error)
	DeleteByProduct(productID string) error
}

// ProductVariantRepository persiste variantes talla×color y los pivots crudos.
type ProductVariantRepository interface {
	ReplaceForProduct(productID string, variants []entity.ProductVariant) error
	ReplaceSizePivots(productID string, pivots []entity.ProductSize) error
	ListByProduct(productID string) ([]entity.ProductVariant, error)
	DeleteByProduct(productID string) error
}

// SizeRepository define el puerto de persistencia para Size (dato maestro).
type SizeRepository interface {
	Create(s *entity.Size) error
	GetByID(id string) (*entity.Size, error)
	Update(s *entity.Size) error
	SetStatus(id string, status bool) error
	List(f ListFilter) ([]*entity.Size, error)
	Search(query string, f ListFilter) ([]*entity.Size, error)
	Delete(id string) error
	// ReplaceColors reemplaza el pivot size_colors para la talla.
	ReplaceColors(sizeID string, colorIDs []string) error
	ListColors(sizeID string) ([]*entity.Color, error)
}

// ColorRepository define el puerto de persistencia para Color (dato maestro).
type ColorRepository interface {
	Create(c *entity.Color) error
	GetByID(id string) (*entity.Color, error)
	Update(c *entity.Color) error
	SetStatus(id string, status bool) error
	List(f ListFilter) ([]*entity.Color, error)
	Search(query string, f ListFilter) ([]*entity.Color, error)
	Delete(id string) error
}

// SliderRepository define el puerto de persistencia para Slider.
type SliderRepository interface {
	Create(s *entity.Slider) error
	GetByID(id string) (*entity.Slider, error)
	Update(s *entity.Slider) error
	SetStatus(id string, status bool) error
	List(f ListFilter) ([]*entity.Slider, error)
	Search(query string, f ListFilter) ([]*entity.Slider, error)
	ListActive() ([]*entity.Slider, error)
	Delete(id string) error
}
