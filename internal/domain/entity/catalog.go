package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Product.
const (
	ProductStatusPublished = "published"
	ProductStatusDraft     = "draft"
)

// Category agrupa productos. Solo las categorías con Status=true son
// visibles en listados públicos.
type Category struct {
	ID        string
	Name      string
	Slug      string
	Image     string
	Status    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product es un artículo del catálogo. El stock a nivel de producto es el
// agregado base; el inventario por combinación talla×color vive en
// ProductVariant y en los pivots.
type Product struct {
	ID          string
	CategoryID  string
	Name        string
	Slug        string
	Description string
	Price       decimal.Decimal // 2 decimales
	Stock       int
	Status      string // published, draft
	Images      []ProductImage
	Variants    []ProductVariant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Visible indica si el producto aparece en el listado público.
func (p *Product) Visible() bool {
	return p.Status == ProductStatusPublished
}

// ProductImage es una imagen de producto; exactamente una por producto se
// marca como primaria.
type ProductImage struct {
	ID        string
	ProductID string
	Path      string
	IsPrimary bool
	CreatedAt time.Time
}

// Size es dato maestro de tallas.
type Size struct {
	ID        string
	Name      string
	Status    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Color es dato maestro de colores.
type Color struct {
	ID        string
	Name      string
	Hex       string
	Status    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductVariant es una combinación concreta talla×color de un producto con
// stock y delta de precio propios, independiente de los pivots crudos.
type ProductVariant struct {
	ID              string
	ProductID       string
	SizeID          string
	ColorID         string
	Stock           int
	AdditionalPrice decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProductSize es el pivot product×size con stock y delta de precio por par.
type ProductSize struct {
	ProductID       string
	SizeID          string
	Stock           int
	AdditionalPrice decimal.Decimal
}

// SizeColor es el pivot size×color.
type SizeColor struct {
	SizeID  string
	ColorID string
}

// Slider es un banner promocional de la portada. Al eliminarlo se borra
// también el archivo de imagen que lo respalda.
type Slider struct {
	ID        string
	Image     string
	Caption   string
	Status    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
