package usecase

import (
	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// CustomerAdminUseCase gestión de cuentas de clientes desde el panel
// (solo super_admin). La activación por OTP vive en authcustomer; aquí solo
// se suspende/reactiva y se elimina.
type CustomerAdminUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerAdminUseCase construye el caso de uso.
func NewCustomerAdminUseCase(repo repository.CustomerRepository) *CustomerAdminUseCase {
	return &CustomerAdminUseCase{repo: repo}
}

// GetByID obtiene un customer por ID. (nil, nil) si no existe.
func (uc *CustomerAdminUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil || c == nil {
		return nil, err
	}
	return toCustomerAdminResponse(c), nil
}

// List lista customers paginados.
func (uc *CustomerAdminUseCase) List(limit, offset int) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return mapCustomers(list), nil
}

// Search busca customers por username o email.
func (uc *CustomerAdminUseCase) Search(query string, limit, offset int) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.Search(query, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapCustomers(list), nil
}

// SetStatus suspende o reactiva una cuenta. Una cuenta pending solo se
// activa verificando el OTP, no desde el panel; la reactivación de una
// suspendida no vuelve a exigir OTP.
func (uc *CustomerAdminUseCase) SetStatus(id, status string) (*dto.CustomerResponse, error) {
	if status != entity.CustomerStatusActive && status != entity.CustomerStatusSuspended {
		ve := domain.NewValidationError()
		ve.Add("status", "debe ser active o suspended")
		return nil, ve
	}
	c, err := uc.repo.GetByID(id)
	if err != nil || c == nil {
		return nil, err
	}
	if c.Status == entity.CustomerStatusPending {
		return nil, domain.ErrConflict
	}
	if err := uc.repo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	c.Status = status
	return toCustomerAdminResponse(c), nil
}

// Delete elimina la cuenta; la cascada revoca tokens y códigos emitidos.
func (uc *CustomerAdminUseCase) Delete(id string) error {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func mapCustomers(list []*entity.Customer) []dto.CustomerResponse {
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerAdminResponse(c))
	}
	return items
}

func toCustomerAdminResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:          c.ID,
		Username:    c.Username,
		Email:       c.Email,
		Status:      c.Status,
		LastLoginAt: c.LastLoginAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
