package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// SizeUseCase casos de uso CRUD para tallas y su pivot de colores.
type SizeUseCase struct {
	repo      repository.SizeRepository
	colorRepo repository.ColorRepository
}

// NewSizeUseCase construye el caso de uso.
func NewSizeUseCase(repo repository.SizeRepository, colorRepo repository.ColorRepository) *SizeUseCase {
	return &SizeUseCase{repo: repo, colorRepo: colorRepo}
}

// Create crea una talla y puebla el pivot size_colors si vienen colores.
func (uc *SizeUseCase) Create(req dto.CreateSizeRequest) (*dto.SizeResponse, error) {
	ve := domain.NewValidationError()
	if req.Name == "" {
		ve.Add("name", "el nombre es requerido")
	}
	if err := uc.checkColors(req.ColorIDs, ve); err != nil {
		return nil, err
	}
	if ve.HasErrors() {
		return nil, ve
	}

	status := true
	if req.Status != nil {
		status = *req.Status
	}
	now := time.Now()
	size := &entity.Size{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(size); err != nil {
		return nil, err
	}
	if len(req.ColorIDs) > 0 {
		if err := uc.repo.ReplaceColors(size.ID, req.ColorIDs); err != nil {
			return nil, err
		}
	}
	return toSizeResponse(size), nil
}

// GetByID obtiene una talla por ID. (nil, nil) si no existe.
func (uc *SizeUseCase) GetByID(id string) (*dto.SizeResponse, error) {
	size, err := uc.repo.GetByID(id)
	if err != nil || size == nil {
		return nil, err
	}
	return toSizeResponse(size), nil
}

// Update modifica una talla. ColorIDs no-nil repuebla el pivot completo.
func (uc *SizeUseCase) Update(id string, req dto.CreateSizeRequest) (*dto.SizeResponse, error) {
	size, err := uc.repo.GetByID(id)
	if err != nil || size == nil {
		return nil, err
	}
	ve := domain.NewValidationError()
	if req.Name == "" {
		ve.Add("name", "el nombre es requerido")
	}
	if err := uc.checkColors(req.ColorIDs, ve); err != nil {
		return nil, err
	}
	if ve.HasErrors() {
		return nil, ve
	}

	size.Name = req.Name
	if req.Status != nil {
		size.Status = *req.Status
	}
	size.UpdatedAt = time.Now()
	if err := uc.repo.Update(size); err != nil {
		return nil, err
	}
	if req.ColorIDs != nil {
		if err := uc.repo.ReplaceColors(size.ID, req.ColorIDs); err != nil {
			return nil, err
		}
	}
	return toSizeResponse(size), nil
}

// SetStatus cambia la visibilidad de la talla.
func (uc *SizeUseCase) SetStatus(id string, status bool) (*dto.SizeResponse, error) {
	if err := uc.repo.SetStatus(id, status); err != nil {
		if err == domain.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return uc.GetByID(id)
}

// List lista tallas.
func (uc *SizeUseCase) List(onlyVisible bool, limit, offset int) ([]dto.SizeResponse, error) {
	list, err := uc.repo.List(repository.ListFilter{OnlyVisible: onlyVisible, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return mapSizes(list), nil
}

// Search busca tallas por nombre.
func (uc *SizeUseCase) Search(query string, onlyVisible bool, limit, offset int) ([]dto.SizeResponse, error) {
	list, err := uc.repo.Search(query, repository.ListFilter{OnlyVisible: onlyVisible, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return mapSizes(list), nil
}

// ListColors devuelve los colores asociados a la talla vía el pivot.
func (uc *SizeUseCase) ListColors(sizeID string) ([]dto.ColorResponse, error) {
	size, err := uc.repo.GetByID(sizeID)
	if err != nil {
		return nil, err
	}
	if size == nil {
		return nil, domain.ErrNotFound
	}
	colors, err := uc.repo.ListColors(sizeID)
	if err != nil {
		return nil, err
	}
	return mapColors(colors), nil
}

// Delete elimina la talla; los pivots caen por cascada en la DB.
func (uc *SizeUseCase) Delete(id string) error {
	size, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if size == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// checkColors valida que cada color referenciado exista.
func (uc *SizeUseCase) checkColors(colorIDs []string, ve *domain.ValidationError) error {
	for _, cid := range colorIDs {
		color, err := uc.colorRepo.GetByID(cid)
		if err != nil {
			return err
		}
		if color == nil {
			ve.Add("color_ids", "el color "+cid+" no existe")
		}
	}
	return nil
}

func mapSizes(list []*entity.Size) []dto.SizeResponse {
	items := make([]dto.SizeResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSizeResponse(s))
	}
	return items
}

func toSizeResponse(s *entity.Size) *dto.SizeResponse {
	return &dto.SizeResponse{
		ID:        s.ID,
		Name:      s.Name,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ColorUseCase casos de uso CRUD para colores.
type ColorUseCase struct {
	repo repository.ColorRepository
}

// NewColorUseCase construye el caso de uso.
func NewColorUseCase(repo repository.ColorRepository) *ColorUseCase {
	return &ColorUseCase{repo: repo}
}

// Create crea un color.
func (uc *ColorUseCase) Create(req dto.CreateColorRequest) (*dto.ColorResponse, error) {
	ve := domain.NewValidationError()
	if req.Name == "" {
		ve.Add("name", "el nombre es requerido")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	status := true
	if req.Status != nil {
		status = *req.Status
	}
	now := time.Now()
	color := &entity.Color{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Hex:       req.Hex,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(color); err != nil {
		return nil, err
	}
	return toColorResponse(color), nil
}

// GetByID obtiene un color por ID. (nil, nil) si no existe.
func (uc *ColorUseCase) GetByID(id string) (*dto.ColorResponse, error) {
	color, err := uc.repo.GetByID(id)
	if err != nil || color == nil {
		return nil, err
	}
	return toColorResponse(color), nil
}

// Update modifica un color.
func (uc *ColorUseCase) Update(id string, req dto.CreateColorRequest) (*dto.ColorResponse, error) {
	color, err := uc.repo.GetByID(id)
	if err != nil || color == nil {
		return nil, err
	}
	if req.Name == "" {
		ve := domain.NewValidationError()
		ve.Add("name", "el nombre es requerido")
		return nil, ve
	}
	color.Name = req.Name
	color.Hex = req.Hex
	if req.Status != nil {
		color.Status = *req.Status
	}
	color.UpdatedAt = time.Now()
	if err := uc.repo.Update(color); err != nil {
		return nil, err
	}
	return toColorResponse(color), nil
}

// SetStatus cambia la visibilidad del color.
func (uc *ColorUseCase) SetStatus(id string, status bool) (*dto.ColorResponse, error) {
	if err := uc.repo.SetStatus(id, status); err != nil {
		if err == domain.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return uc.GetByID(id)
}

// List lista colores.
func (uc *ColorUseCase) List(onlyVisible bool, limit, offset int) ([]dto.ColorResponse, error) {
	list, err := uc.repo.List(repository.ListFilter{OnlyVisible: onlyVisible, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return mapColors(list), nil
}

// Search busca colores por nombre.
func (uc *ColorUseCase) Search(query string, onlyVisible bool, limit, offset int) ([]dto.ColorResponse, error) {
	list, err := uc.repo.Search(query, repository.ListFilter{OnlyVisible: onlyVisible, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return mapColors(list), nil
}

// Delete elimina el color; el pivot size_colors cae por cascada.
func (uc *ColorUseCase) Delete(id string) error {
	color, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if color == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func mapColors(list []*entity.Color) []dto.ColorResponse {
	items := make([]dto.ColorResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toColorResponse(c))
	}
	return items
}

func toColorResponse(c *entity.Color) *dto.ColorResponse {
	return &dto.ColorResponse{
		ID:        c.ID,
		Name:      c.Name,
		Hex:       c.Hex,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
