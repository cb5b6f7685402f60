package usecase

import (
	"context"
	"mime/multipart"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta un callback con los repos de producto atados a una
// misma transacción (upsert producto+imágenes+variantes todo-o-nada).
// Lo implementa postgres.TxRunner.
type CatalogTxRunner interface {
	RunProduct(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		imageRepo repository.ProductImageRepository,
		variantRepo repository.ProductVariantRepository,
	) error) error
}

// ImageStore es el puerto hacia el almacenamiento de imágenes subidas.
// Lo implementa storage.LocalStore.
type ImageStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Delete(publicPath string) error
}

// CatalogPDFItem una fila del catálogo exportado.
type CatalogPDFItem struct {
	Name         string
	CategoryName string
	Price        decimal.Decimal
	Stock        int
	Status       string
}

// CatalogPDFGenerator es el puerto hacia la generación del PDF del catálogo.
// Lo implementa pdf.CatalogPDFGenerator.
type CatalogPDFGenerator interface {
	GenerateCatalogPDF(storeName string, items []CatalogPDFItem) ([]byte, error)
}
