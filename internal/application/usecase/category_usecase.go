package usecase

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
	"github.com/jhoicas/tienda-admin-api/pkg/slug"
)

// KategoriUseCase casos de uso CRUD para categorías.
type KategoriUseCase struct {
	repo  repository.CategoryRepository
	store ImageStore
}

// NewKategoriUseCase construye el caso de uso.
func NewKategoriUseCase(repo repository.CategoryRepository, store ImageStore) *KategoriUseCase {
	return &KategoriUseCase{repo: repo, store: store}
}

// Create crea una categoría, guardando la imagen subida si viene.
func (uc *KategoriUseCase) Create(name string, status bool, image *multipart.FileHeader) (*dto.KategoriResponse, error) {
	ve := domain.NewValidationError()
	if name == "" {
		ve.Add("name", "el nombre es requerido")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	imagePath := ""
	if image != nil {
		path, err := uc.store.Save(image)
		if err != nil {
			return nil, err
		}
		imagePath = path
	}

	now := time.Now()
	cat := &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug.Make(name),
		Image:     imagePath,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(cat); err != nil {
		if imagePath != "" {
			_ = uc.store.Delete(imagePath)
		}
		return nil, err
	}
	return toKategoriResponse(cat), nil
}

// GetByID obtiene una categoría por ID. (nil, nil) si no existe.
func (uc *KategoriUseCase) GetByID(id string) (*dto.KategoriResponse, error) {
	cat, err := uc.repo.GetByID(id)
	if err != nil || cat == nil {
		return nil, err
	}
	return toKategoriResponse(cat), nil
}

// Update modifica una categoría. Reemplazar la imagen borra el archivo anterior.
func (uc *KategoriUseCase) Update(id string, name *string, status *bool, image *multipart.FileHeader) (*dto.KategoriResponse, error) {
	cat, err := uc.repo.GetByID(id)
	if err != nil || cat == nil {
		return nil, err
	}
	if name != nil {
		if *name == "" {
			ve := domain.NewValidationError()
			ve.Add("name", "el nombre no puede ser vacío")
			return nil, ve
		}
		cat.Name = *name
		cat.Slug = slug.Make(*name)
	}
	if status != nil {
		cat.Status = *status
	}
	oldImage := ""
	if image != nil {
		path, err := uc.store.Save(image)
		if err != nil {
			return nil, err
		}
		oldImage = cat.Image
		cat.Image = path
	}
	cat.UpdatedAt = time.Now()
	if err := uc.repo.Update(cat); err != nil {
		if image != nil {
			_ = uc.store.Delete(cat.Image)
		}
		return nil, err
	}
	if oldImage != "" {
		_ = uc.store.Delete(oldImage)
	}
	return toKategoriResponse(cat), nil
}

// SetStatus cambia la visibilidad.
func (uc *KategoriUseCase) SetStatus(id string, status bool) (*dto.KategoriResponse, error) {
	if err := uc.repo.SetStatus(id, status); err != nil {
		if err == domain.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return uc.GetByID(id)
}

// List lista categorías. onlyVisible=true en listados públicos sin principal admin.
func (uc *KategoriUseCase) List(onlyVisible bool, limit, offset int) ([]dto.KategoriResponse, error) {
	list, err := uc.repo.List(repository.ListFilter{OnlyVisible: onlyVisible, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return mapKategoris(list), nil
}

// Search busca categorías por nombre.
func (uc *KategoriUseCase) Search(query string, onlyVisible bool, limit, offset int) ([]dto.KategoriResponse, error) {
	list, err := uc.repo.Search(query, repository.ListFilter{OnlyVisible: onlyVisible, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return mapKategoris(list), nil
}

// Delete elimina la categoría. Hook post-delete: borrar el archivo de imagen.
func (uc *KategoriUseCase) Delete(id string) error {
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.afterDelete(cat)
	return nil
}

// afterDelete es el hook post-delete: limpieza del archivo de imagen.
func (uc *KategoriUseCase) afterDelete(cat *entity.Category) {
	if cat.Image != "" {
		_ = uc.store.Delete(cat.Image)
	}
}

func mapKategoris(list []*entity.Category) []dto.KategoriResponse {
	items := make([]dto.KategoriResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toKategoriResponse(c))
	}
	return items
}

func toKategoriResponse(c *entity.Category) *dto.KategoriResponse {
	return &dto.KategoriResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		Image:     c.Image,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
