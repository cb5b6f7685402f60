package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// UserUseCase casos de uso CRUD para usuarios del panel (solo super_admin).
type UserUseCase struct {
	repo repository.AdminUserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.AdminUserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crea un usuario admin/staff con el rol indicado. El rol queda fijo
// desde el alta.
func (uc *UserUseCase) Create(req dto.CreateUserRequest) (*dto.AdminUserResponse, error) {
	ve := domain.NewValidationError()
	if req.Name == "" {
		ve.Add("name", "el nombre es requerido")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		ve.Add("email", "el email es requerido")
	}
	if len(req.Password) < 8 {
		ve.Add("password", "mínimo 8 caracteres")
	}
	role, ok := entity.ParseRole(req.Role)
	if !ok {
		ve.Add("role", "debe ser super_admin o staff")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.AdminUser{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return toAdminUserResponse(user), nil
}

// GetByID obtiene un usuario por ID. (nil, nil) si no existe.
func (uc *UserUseCase) GetByID(id string) (*dto.AdminUserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil || user == nil {
		return nil, err
	}
	return toAdminUserResponse(user), nil
}

// Update modifica nombre, email o contraseña. El rol nunca cambia.
func (uc *UserUseCase) Update(id string, req dto.UpdateUserRequest) (*dto.AdminUserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil || user == nil {
		return nil, err
	}
	ve := domain.NewValidationError()
	if req.Name != nil {
		if *req.Name == "" {
			ve.Add("name", "el nombre no puede ser vacío")
		} else {
			user.Name = *req.Name
		}
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			ve.Add("email", "el email no puede ser vacío")
		} else {
			user.Email = email
		}
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			ve.Add("password", "mínimo 8 caracteres")
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			user.PasswordHash = string(hash)
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toAdminUserResponse(user), nil
}

// List lista usuarios del panel.
func (uc *UserUseCase) List(limit, offset int) ([]dto.AdminUserResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return mapAdminUsers(list), nil
}

// Search busca usuarios por nombre o email.
func (uc *UserUseCase) Search(query string, limit, offset int) ([]dto.AdminUserResponse, error) {
	list, err := uc.repo.Search(query, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapAdminUsers(list), nil
}

// Delete elimina un usuario del panel. Un usuario no puede eliminarse a sí
// mismo.
func (uc *UserUseCase) Delete(id, requesterID string) error {
	if id == requesterID {
		return domain.ErrConflict
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func mapAdminUsers(list []*entity.AdminUser) []dto.AdminUserResponse {
	items := make([]dto.AdminUserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toAdminUserResponse(u))
	}
	return items
}

func toAdminUserResponse(u *entity.AdminUser) *dto.AdminUserResponse {
	return &dto.AdminUserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
