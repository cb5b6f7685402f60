package usecase

import (
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// CatalogExportUseCase exporta el catálogo de productos a PDF (panel admin).
type CatalogExportUseCase struct {
	productRepo repository.ProductRepository
	catRepo     repository.CategoryRepository
	generator   CatalogPDFGenerator
	storeName   string
}

// NewCatalogExportUseCase construye el caso de uso.
func NewCatalogExportUseCase(
	productRepo repository.ProductRepository,
	catRepo repository.CategoryRepository,
	generator CatalogPDFGenerator,
	storeName string,
) *CatalogExportUseCase {
	return &CatalogExportUseCase{
		productRepo: productRepo,
		catRepo:     catRepo,
		generator:   generator,
		storeName:   storeName,
	}
}

// ExportPDF genera el PDF con todos los productos (cualquier estado).
func (uc *CatalogExportUseCase) ExportPDF() ([]byte, error) {
	const batch = 500
	catNames := map[string]string{}
	var items []CatalogPDFItem
	for offset := 0; ; offset += batch {
		products, err := uc.productRepo.List(repository.ProductFilter{
			ListFilter: repository.ListFilter{Limit: batch, Offset: offset},
		})
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			name, ok := catNames[p.CategoryID]
			if !ok {
				cat, err := uc.catRepo.GetByID(p.CategoryID)
				if err != nil {
					return nil, err
				}
				if cat != nil {
					name = cat.Name
				}
				catNames[p.CategoryID] = name
			}
			items = append(items, CatalogPDFItem{
				Name:         p.Name,
				CategoryName: name,
				Price:        p.Price,
				Stock:        p.Stock,
				Status:       p.Status,
			})
		}
		if len(products) < batch {
			break
		}
	}
	return uc.generator.GenerateCatalogPDF(uc.storeName, items)
}
