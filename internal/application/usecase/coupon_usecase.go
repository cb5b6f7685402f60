package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// KuponUseCase casos de uso CRUD y canje de cupones.
type KuponUseCase struct {
	repo repository.CouponRepository
}

// NewKuponUseCase construye el caso de uso.
func NewKuponUseCase(repo repository.CouponRepository) *KuponUseCase {
	return &KuponUseCase{repo: repo}
}

// Create crea un cupón. El código se normaliza a mayúsculas y es único.
func (uc *KuponUseCase) Create(req dto.CreateKuponRequest) (*dto.KuponResponse, error) {
	ve := domain.NewValidationError()
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		ve.Add("code", "el código es requerido")
	}
	validateKuponFields(ve, req.DiscountType, req.DiscountAmount.IsNegative(), req.StartDate, req.EndDate, req.MaxUsage)
	if ve.HasErrors() {
		return nil, ve
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	now := time.Now()
	kupon := &entity.Coupon{
		ID:             uuid.New().String(),
		Code:           code,
		DiscountAmount: req.DiscountAmount,
		DiscountType:   req.DiscountType,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IsActive:       active,
		MaxUsage:       req.MaxUsage,
		CurrentUsage:   0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(kupon); err != nil {
		return nil, err
	}
	return toKuponResponse(kupon), nil
}

// GetByID obtiene un cupón por ID. (nil, nil) si no existe.
func (uc *KuponUseCase) GetByID(id string) (*dto.KuponResponse, error) {
	kupon, err := uc.repo.GetByID(id)
	if err != nil || kupon == nil {
		return nil, err
	}
	return toKuponResponse(kupon), nil
}

// Update modifica un cupón de forma parcial.
func (uc *KuponUseCase) Update(id string, req dto.UpdateKuponRequest) (*dto.KuponResponse, error) {
	kupon, err := uc.repo.GetByID(id)
	if err != nil || kupon == nil {
		return nil, err
	}
	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		if code == "" {
			ve := domain.NewValidationError()
			ve.Add("code", "el código no puede ser vacío")
			return nil, ve
		}
		kupon.Code = code
	}
	if req.DiscountAmount != nil {
		kupon.DiscountAmount = *req.DiscountAmount
	}
	if req.DiscountType != nil {
		kupon.DiscountType = *req.DiscountType
	}
	if req.StartDate != nil {
		kupon.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		kupon.EndDate = *req.EndDate
	}
	if req.IsActive != nil {
		kupon.IsActive = *req.IsActive
	}
	if req.MaxUsage != nil {
		kupon.MaxUsage = *req.MaxUsage
	}

	ve := domain.NewValidationError()
	validateKuponFields(ve, kupon.DiscountType, kupon.DiscountAmount.IsNegative(), kupon.StartDate, kupon.EndDate, kupon.MaxUsage)
	if ve.HasErrors() {
		return nil, ve
	}

	kupon.UpdatedAt = time.Now()
	if err := uc.repo.Update(kupon); err != nil {
		return nil, err
	}
	return toKuponResponse(kupon), nil
}

// SetActive activa o desactiva un cupón.
func (uc *KuponUseCase) SetActive(id string, active bool) (*dto.KuponResponse, error) {
	if err := uc.repo.SetActive(id, active); err != nil {
		if err == domain.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return uc.GetByID(id)
}

// List lista cupones (panel admin).
func (uc *KuponUseCase) List(limit, offset int) ([]dto.KuponResponse, error) {
	list, err := uc.repo.List(repository.ListFilter{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return mapKupons(list), nil
}

// Search busca cupones por código.
func (uc *KuponUseCase) Search(query string, limit, offset int) ([]dto.KuponResponse, error) {
	list, err := uc.repo.Search(query, repository.ListFilter{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return mapKupons(list), nil
}

// ListActive devuelve los cupones canjeables en este momento.
func (uc *KuponUseCase) ListActive() ([]dto.KuponResponse, error) {
	list, err := uc.repo.ListActive(time.Now())
	if err != nil {
		return nil, err
	}
	return mapKupons(list), nil
}

// Redeem canjea un cupón por código. El incremento de uso es atómico en la
// DB; dos canjes concurrentes del último cupo no pueden pasar ambos.
func (uc *KuponUseCase) Redeem(code string) (*dto.KuponResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		ve := domain.NewValidationError()
		ve.Add("code", "el código es requerido")
		return nil, ve
	}
	kupon, err := uc.repo.Redeem(code, time.Now())
	if err != nil {
		return nil, err
	}
	return toKuponResponse(kupon), nil
}

// Delete elimina el cupón.
func (uc *KuponUseCase) Delete(id string) error {
	kupon, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if kupon == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// validateKuponFields validaciones compartidas entre alta y edición.
func validateKuponFields(ve *domain.ValidationError, discountType string, negativeAmount bool, start, end time.Time, maxUsage int) {
	if discountType != entity.DiscountTypeNominal && discountType != entity.DiscountTypePercent {
		ve.Add("discount_type", "debe ser nominal o percent")
	}
	if negativeAmount {
		ve.Add("discount_amount", "no puede ser negativo")
	}
	if start.IsZero() || end.IsZero() {
		ve.Add("start_date", "la ventana de vigencia es requerida")
	} else if end.Before(start) {
		ve.Add("end_date", "debe ser posterior a start_date")
	}
	if maxUsage < 0 {
		ve.Add("max_usage", "no puede ser negativo")
	}
}

func mapKupons(list []*entity.Coupon) []dto.KuponResponse {
	items := make([]dto.KuponResponse, 0, len(list))
	for _, k := range list {
		items = append(items, *toKuponResponse(k))
	}
	return items
}

func toKuponResponse(k *entity.Coupon) *dto.KuponResponse {
	return &dto.KuponResponse{
		ID:             k.ID,
		Code:           k.Code,
		DiscountAmount: k.DiscountAmount,
		DiscountType:   k.DiscountType,
		StartDate:      k.StartDate,
		EndDate:        k.EndDate,
		IsActive:       k.IsActive,
		MaxUsage:       k.MaxUsage,
		CurrentUsage:   k.CurrentUsage,
		CreatedAt:      k.CreatedAt,
		UpdatedAt:      k.UpdatedAt,
	}
}
