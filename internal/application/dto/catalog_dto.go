package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// KategoriResponse representación pública de una categoría.
type KategoriResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Image     string    `json:"image"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VariantRequest una combinación talla×color en el alta/edición de producto.
type VariantRequest struct {
	SizeID          string          `json:"size_id"`
	ColorID         string          `json:"color_id"`
	Stock           int             `json:"stock"`
	AdditionalPrice decimal.Decimal `json:"additional_price"`
}

// CreateProductRequest alta de producto. Images llega como archivos multipart
// y Variants como campo JSON del mismo form; el handler los separa.
type CreateProductRequest struct {
	CategoryID  string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Status      string // published | draft
	Variants    []VariantRequest
}

// UpdateProductRequest modificación parcial de producto. Variants nil
// significa "no tocar"; slice vacío significa "eliminar todas".
type UpdateProductRequest struct {
	CategoryID  *string
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Status      *string
	Variants    []VariantRequest
	HasVariants bool // true si el form traía el campo variants
}

// ProductImageResponse una imagen del producto.
type ProductImageResponse struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	IsPrimary bool   `json:"is_primary"`
}

// VariantResponse una variante talla×color persistida.
type VariantResponse struct {
	ID              string          `json:"id"`
	SizeID          string          `json:"size_id"`
	ColorID         string          `json:"color_id"`
	Stock           int             `json:"stock"`
	AdditionalPrice decimal.Decimal `json:"additional_price"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID          string                 `json:"id"`
	CategoryID  string                 `json:"kategori_id"`
	Name        string                 `json:"name"`
	Slug        string                 `json:"slug"`
	Description string                 `json:"description"`
	Price       decimal.Decimal        `json:"price"`
	Stock       int                    `json:"stock"`
	Status      string                 `json:"status"`
	Images      []ProductImageResponse `json:"images,omitempty"`
	Variants    []VariantResponse      `json:"variants,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// SizeResponse representación pública de una talla.
type SizeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSizeRequest alta/edición de talla. ColorIDs repuebla el pivot size_colors.
type CreateSizeRequest struct {
	Name     string   `json:"name"`
	Status   *bool    `json:"status"`
	ColorIDs []string `json:"color_ids"`
}

// ColorResponse representación pública de un color.
type ColorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Hex       string    `json:"hex"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateColorRequest alta/edición de color.
type CreateColorRequest struct {
	Name   string `json:"name"`
	Hex    string `json:"hex"`
	Status *bool  `json:"status"`
}

// SliderResponse representación pública de un slider.
type SliderResponse struct {
	ID        string    `json:"id"`
	Image     string    `json:"image"`
	Caption   string    `json:"caption"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
