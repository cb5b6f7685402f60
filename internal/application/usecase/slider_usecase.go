package usecase

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// SliderUseCase casos de uso CRUD para sliders de portada.
type SliderUseCase struct {
	repo  repository.SliderRepository
	store ImageStore
}

// NewSliderUseCase construye el caso de uso.
func NewSliderUseCase(repo repository.SliderRepository, store ImageStore) *SliderUseCase {
	return &SliderUseCase{repo: repo, store: store}
}

// Create crea un slider. La imagen es obligatoria.
func (uc *SliderUseCase) Create(caption string, status bool, image *multipart.FileHeader) (*dto.SliderResponse, error) {
	if image == nil {
		ve := domain.NewValidationError()
		ve.Add("image", "la imagen es requerida")
		return nil, ve
	}
	path, err := uc.store.Save(image)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	slider := &entity.Slider{
		ID:        uuid.New().String(),
		Image:     path,
		Caption:   caption,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(slider); err != nil {
		_ = uc.store.Delete(path)
		return nil, err
	}
	return toSliderResponse(slider), nil
}

// GetByID obtiene un slider por ID. (nil, nil) si no existe.
func (uc *SliderUseCase) GetByID(id string) (*dto.SliderResponse, error) {
	slider, err := uc.repo.GetByID(id)
	if err != nil || slider == nil {
		return nil, err
	}
	return toSliderResponse(slider), nil
}

// Update modifica un slider. Reemplazar la imagen borra el archivo anterior.
func (uc *SliderUseCase) Update(id string, caption *string, status *bool, image *multipart.FileHeader) (*dto.SliderResponse, error) {
	slider, err := uc.repo.GetByID(id)
	if err != nil || slider == nil {
		return nil, err
	}
	if caption != nil {
		slider.Caption = *caption
	}
	if status != nil {
		slider.Status = *status
	}
	oldImage := ""
	if image != nil {
		path, err := uc.store.Save(image)
		if err != nil {
			return nil, err
		}
		oldImage = slider.Image
		slider.Image = path
	}
	slider.UpdatedAt = time.Now()
	if err := uc.repo.Update(slider); err != nil {
		if image != nil {
			_ = uc.store.Delete(slider.Image)
		}
		return nil, err
	}
	if oldImage != "" {
		_ = uc.store.Delete(oldImage)
	}
	return toSliderResponse(slider), nil
}

// SetStatus cambia la visibilidad del slider.
func (uc *SliderUseCase) SetStatus(id string, status bool) (*dto.SliderResponse, error) {
	if err := uc.repo.SetStatus(id, status); err != nil {
		if err == domain.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return uc.GetByID(id)
}

// List lista sliders. onlyVisible=true en la portada pública.
func (uc *SliderUseCase) List(onlyVisible bool, limit, offset int) ([]dto.SliderResponse, error) {
	list, err := uc.repo.List(repository.ListFilter{OnlyVisible: onlyVisible, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return mapSliders(list), nil
}

// Search busca sliders por caption.
func (uc *SliderUseCase) Search(query string, onlyVisible bool, limit, offset int) ([]dto.SliderResponse, error) {
	list, err := uc.repo.Search(query, repository.ListFilter{OnlyVisible: onlyVisible, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return mapSliders(list), nil
}

// ListActive devuelve los sliders visibles para la portada.
func (uc *SliderUseCase) ListActive() ([]dto.SliderResponse, error) {
	list, err := uc.repo.ListActive()
	if err != nil {
		return nil, err
	}
	return mapSliders(list), nil
}

// Delete elimina el slider. Hook post-delete: borrar el archivo de imagen.
func (uc *SliderUseCase) Delete(id string) error {
	slider, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if slider == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.afterDelete(slider)
	return nil
}

// afterDelete es el hook post-delete: limpieza del archivo de imagen.
func (uc *SliderUseCase) afterDelete(s *entity.Slider) {
	if s.Image != "" {
		_ = uc.store.Delete(s.Image)
	}
}

func mapSliders(list []*entity.Slider) []dto.SliderResponse {
	items := make([]dto.SliderResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSliderResponse(s))
	}
	return items
}

func toSliderResponse(s *entity.Slider) *dto.SliderResponse {
	return &dto.SliderResponse{
		ID:        s.ID,
		Image:     s.Image,
		Caption:   s.Caption,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
