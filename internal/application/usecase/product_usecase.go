package usecase

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
	"github.com/jhoicas/tienda-admin-api/pkg/slug"
)

// ProductUseCase casos de uso CRUD para productos con imágenes y variantes
// talla×color. Las mutaciones que tocan varias tablas van por CatalogTxRunner
// para que el upsert sea todo-o-nada.
type ProductUseCase struct {
	repo        repository.ProductRepository
	imageRepo   repository.ProductImageRepository
	variantRepo repository.ProductVariantRepository
	catRepo     repository.CategoryRepository
	tx          CatalogTxRunner
	store       ImageStore
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	imageRepo repository.ProductImageRepository,
	variantRepo repository.ProductVariantRepository,
	catRepo repository.CategoryRepository,
	tx CatalogTxRunner,
	store ImageStore,
) *ProductUseCase {
	return &ProductUseCase{
		repo:        repo,
		imageRepo:   imageRepo,
		variantRepo: variantRepo,
		catRepo:     catRepo,
		tx:          tx,
		store:       store,
	}
}

func validateVariants(variants []dto.VariantRequest, ve *domain.ValidationError) {
	seen := map[[2]string]bool{}
	for _, v := range variants {
		if v.SizeID == "" || v.ColorID == "" {
			ve.Add("variants", "size_id y color_id son requeridos en cada variante")
			return
		}
		if v.Stock < 0 {
			ve.Add("variants", "stock de variante no puede ser negativo")
			return
		}
		key := [2]string{v.SizeID, v.ColorID}
		if seen[key] {
			ve.Add("variants", fmt.Sprintf("combinación talla/color duplicada (%s, %s)", v.SizeID, v.ColorID))
			return
		}
		seen[key] = true
	}
}

// Create crea un producto con sus imágenes y variantes en una sola transacción.
// Un fallo parcial no deja producto huérfano: rollback y limpieza de archivos.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, images []*multipart.FileHeader) (*dto.ProductResponse, error) {
	ve := domain.NewValidationError()
	if in.Name == "" {
		ve.Add("name", "el nombre es requerido")
	}
	if in.CategoryID == "" {
		ve.Add("kategori_id", "la categoría es requerida")
	}
	if in.Price.IsNegative() {
		ve.Add("price", "el precio no puede ser negativo")
	}
	if in.Stock < 0 {
		ve.Add("stock", "el stock no puede ser negativo")
	}
	if in.Status == "" {
		in.Status = entity.ProductStatusDraft
	}
	if in.Status != entity.ProductStatusPublished && in.Status != entity.ProductStatusDraft {
		ve.Add("status", "status debe ser published o draft")
	}
	validateVariants(in.Variants, ve)
	if ve.HasErrors() {
		return nil, ve
	}

	if in.CategoryID != "" {
		cat, err := uc.catRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			ve.Add("kategori_id", "la categoría no existe")
			return nil, ve
		}
	}

	savedPaths, imgEntities, err := uc.saveImages(images)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Slug:        slug.Make(in.Name),
		Description: in.Description,
		Price:       in.Price.Round(2),
		Stock:       in.Stock,
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	variants := buildVariants(product.ID, in.Variants, now)

	err = uc.tx.RunProduct(ctx, func(
		productRepo repository.ProductRepository,
		imageRepo repository.ProductImageRepository,
		variantRepo repository.ProductVariantRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if err := imageRepo.ReplaceForProduct(product.ID, imgEntities); err != nil {
			return err
		}
		if err := variantRepo.ReplaceForProduct(product.ID, variants); err != nil {
			return err
		}
		return variantRepo.ReplaceSizePivots(product.ID, derivePivots(variants))
	})
	if err != nil {
		// Rollback ya deshizo la DB; compensar los archivos guardados.
		for _, p := range savedPaths {
			_ = uc.store.Delete(p)
		}
		return nil, err
	}

	product.Images = imgEntities
	product.Variants = variants
	return toProductResponse(product), nil
}

// GetByID obtiene un producto con imágenes y variantes. (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil || product == nil {
		return nil, err
	}
	if product.Images, err = uc.imageRepo.ListByProduct(id); err != nil {
		return nil, err
	}
	if product.Variants, err = uc.variantRepo.ListByProduct(id); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update modifica un producto; imágenes nuevas reemplazan las anteriores y
// Variants (si el form las traía) repuebla variantes y pivots, todo en una tx.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest, images []*multipart.FileHeader) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil || product == nil {
		return nil, err
	}

	ve := domain.NewValidationError()
	if in.Name != nil {
		if *in.Name == "" {
			ve.Add("name", "el nombre no puede ser vacío")
		} else {
			product.Name = *in.Name
			product.Slug = slug.Make(*in.Name)
		}
	}
	if in.CategoryID != nil {
		cat, err := uc.catRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			ve.Add("kategori_id", "la categoría no existe")
		} else {
			product.CategoryID = *in.CategoryID
		}
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			ve.Add("price", "el precio no puede ser negativo")
		} else {
			product.Price = in.Price.Round(2)
		}
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			ve.Add("stock", "el stock no puede ser negativo")
		} else {
			product.Stock = *in.Stock
		}
	}
	if in.Status != nil {
		if *in.Status != entity.ProductStatusPublished && *in.Status != entity.ProductStatusDraft {
			ve.Add("status", "status debe ser published o draft")
		} else {
			product.Status = *in.Status
		}
	}
	if in.HasVariants {
		validateVariants(in.Variants, ve)
	}
	if ve.HasErrors() {
		return nil, ve
	}

	oldImages, err := uc.imageRepo.ListByProduct(id)
	if err != nil {
		return nil, err
	}
	var savedPaths []string
	var imgEntities []entity.ProductImage
	if len(images) > 0 {
		savedPaths, imgEntities, err = uc.saveImages(images)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	product.UpdatedAt = now
	var variants []entity.ProductVariant
	if in.HasVariants {
		variants = buildVariants(id, in.Variants, now)
	}

	err = uc.tx.RunProduct(ctx, func(
		productRepo repository.ProductRepository,
		imageRepo repository.ProductImageRepository,
		variantRepo repository.ProductVariantRepository,
	) error {
		if err := productRepo.Update(product); err != nil {
			return err
		}
		if len(images) > 0 {
			if err := imageRepo.ReplaceForProduct(id, imgEntities); err != nil {
				return err
			}
		}
		if in.HasVariants {
			if err := variantRepo.ReplaceForProduct(id, variants); err != nil {
				return err
			}
			if err := variantRepo.ReplaceSizePivots(id, derivePivots(variants)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		for _, p := range savedPaths {
			_ = uc.store.Delete(p)
		}
		return nil, err
	}

	// Commit confirmado: ahora sí borrar los archivos reemplazados.
	if len(images) > 0 {
		for _, img := range oldImages {
			_ = uc.store.Delete(img.Path)
		}
	}
	return uc.GetByID(id)
}

// SetStatus cambia el estado published/draft.
func (uc *ProductUseCase) SetStatus(id, status string) (*dto.ProductResponse, error) {
	if status != entity.ProductStatusPublished && status != entity.ProductStatusDraft {
		ve := domain.NewValidationError()
		ve.Add("status", "status debe ser published o draft")
		return nil, ve
	}
	if err := uc.repo.SetStatus(id, status); err != nil {
		if err == domain.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return uc.GetByID(id)
}

// List lista productos. onlyVisible en listados públicos: solo publicados en
// categorías activas.
func (uc *ProductUseCase) List(onlyVisible bool, categoryID string, limit, offset int) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(repository.ProductFilter{
		ListFilter: repository.ListFilter{OnlyVisible: onlyVisible, Limit: limit, Offset: offset},
		CategoryID: categoryID,
	})
	if err != nil {
		return nil, err
	}
	return mapProducts(list), nil
}

// Search busca productos por nombre.
func (uc *ProductUseCase) Search(query string, onlyVisible bool, limit, offset int) ([]dto.ProductResponse, error) {
	list, err := uc.repo.Search(query, repository.ListFilter{OnlyVisible: onlyVisible, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return mapProducts(list), nil
}

// Delete elimina el producto. La FK en cascada elimina imágenes, pivots y
// variantes; el hook post-delete limpia los archivos de imagen.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	images, err := uc.imageRepo.ListByProduct(id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.afterDelete(images)
	return nil
}

// afterDelete es el hook post-delete: limpieza de archivos de imagen.
func (uc *ProductUseCase) afterDelete(images []entity.ProductImage) {
	for _, img := range images {
		_ = uc.store.Delete(img.Path)
	}
}

func (uc *ProductUseCase) saveImages(images []*multipart.FileHeader) ([]string, []entity.ProductImage, error) {
	var paths []string
	var entities []entity.ProductImage
	now := time.Now()
	for i, fh := range images {
		path, err := uc.store.Save(fh)
		if err != nil {
			for _, p := range paths {
				_ = uc.store.Delete(p)
			}
			return nil, nil, err
		}
		paths = append(paths, path)
		entities = append(entities, entity.ProductImage{
			ID:        uuid.New().String(),
			Path:      path,
			IsPrimary: i == 0, // la primera imagen subida es la primaria
			CreatedAt: now,
		})
	}
	return paths, entities, nil
}

func buildVariants(productID string, in []dto.VariantRequest, now time.Time) []entity.ProductVariant {
	variants := make([]entity.ProductVariant, 0, len(in))
	for _, v := range in {
		variants = append(variants, entity.ProductVariant{
			ID:              uuid.New().String(),
			ProductID:       productID,
			SizeID:          v.SizeID,
			ColorID:         v.ColorID,
			Stock:           v.Stock,
			AdditionalPrice: v.AdditionalPrice.Round(2),
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	return variants
}

// derivePivots agrega las variantes a nivel product_sizes (stock sumado por
// talla, delta de precio mínimo por talla).
func derivePivots(variants []entity.ProductVariant) []entity.ProductSize {
	bySize := map[string]*entity.ProductSize{}
	order := []string{}
	for _, v := range variants {
		p, ok := bySize[v.SizeID]
		if !ok {
			p = &entity.ProductSize{ProductID: v.ProductID, SizeID: v.SizeID, AdditionalPrice: v.AdditionalPrice}
			bySize[v.SizeID] = p
			order = append(order, v.SizeID)
		}
		p.Stock += v.Stock
		if v.AdditionalPrice.LessThan(p.AdditionalPrice) {
			p.AdditionalPrice = v.AdditionalPrice
		}
	}
	pivots := make([]entity.ProductSize, 0, len(order))
	for _, sizeID := range order {
		pivots = append(pivots, *bySize[sizeID])
	}
	return pivots
}

func mapProducts(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, img := range p.Images {
		resp.Images = append(resp.Images, dto.ProductImageResponse{ID: img.ID, Path: img.Path, IsPrimary: img.IsPrimary})
	}
	for _, v := range p.Variants {
		resp.Variants = append(resp.Variants, dto.VariantResponse{
			ID: v.ID, SizeID: v.SizeID, ColorID: v.ColorID, Stock: v.Stock, AdditionalPrice: v.AdditionalPrice,
		})
	}
	return resp
}
