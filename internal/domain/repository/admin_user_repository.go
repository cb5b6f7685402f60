package repository

import "github.com/jhoicas/tienda-admin-api/internal/domain/entity"

// AdminUserRepository define el puerto de persistencia para AdminUser (DIP).
// GetByID/GetByEmail devuelven (nil, nil) si no existe.
type AdminUserRepository interface {
	Create(user *entity.AdminUser) error
	GetByID(id string) (*entity.AdminUser, error)
	GetByEmail(email string) (*entity.AdminUser, error)
	Update(user *entity.AdminUser) error
	List(limit, offset int) ([]*entity.AdminUser, error)
	Search(query string, limit, offset int) ([]*entity.AdminUser, error)
	Delete(id string) error
}
