package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

var _ repository.AdminUserRepository = (*AdminUserRepo)(nil)

const adminUserColumns = `id, name, email, password_hash, role, created_at, updated_at`

// AdminUserRepo implementación del puerto AdminUserRepository sobre PostgreSQL.
type AdminUserRepo struct {
	q Querier
}

// NewAdminUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdminUserRepository(q Querier) *AdminUserRepo {
	return &AdminUserRepo{q: q}
}

// Create persiste un nuevo usuario admin/staff.
func (r *AdminUserRepo) Create(u *entity.AdminUser) error {
	query := `
		INSERT INTO admin_users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert admin user: %w", err)
	}
	return nil
}

// GetByID obtiene un admin por ID.
func (r *AdminUserRepo) GetByID(id string) (*entity.AdminUser, error) {
	return r.getOne(`SELECT `+adminUserColumns+` FROM admin_users WHERE id = $1`, id)
}

// GetByEmail obtiene un admin por email.
func (r *AdminUserRepo) GetByEmail(email string) (*entity.AdminUser, error) {
	return r.getOne(`SELECT `+adminUserColumns+` FROM admin_users WHERE email = $1`, email)
}

func (r *AdminUserRepo) getOne(query string, arg any) (*entity.AdminUser, error) {
	var u entity.AdminUser
	var role string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin user: %w", err)
	}
	u.Role = entity.Role(role)
	return &u, nil
}

// Update actualiza nombre, email y password. El rol no se modifica después de asignado.
func (r *AdminUserRepo) Update(u *entity.AdminUser) error {
	query := `
		UPDATE admin_users SET name = $2, email = $3, password_hash = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update admin user: %w", err)
	}
	return nil
}

// List lista admins con paginación.
func (r *AdminUserRepo) List(limit, offset int) ([]*entity.AdminUser, error) {
	query := `SELECT ` + adminUserColumns + ` FROM admin_users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.scanMany(query, limit, offset)
}

// Search busca admins por nombre o email (subcadena, sin distinguir mayúsculas).
func (r *AdminUserRepo) Search(q string, limit, offset int) ([]*entity.AdminUser, error) {
	query := `
		SELECT ` + adminUserColumns + ` FROM admin_users
		WHERE name ILIKE $1 OR email ILIKE $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, likePattern(q), limit, offset)
}

func (r *AdminUserRepo) scanMany(query string, args ...any) ([]*entity.AdminUser, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list admin users: %w", err)
	}
	defer rows.Close()
	var list []*entity.AdminUser
	for rows.Next() {
		var u entity.AdminUser
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan admin user: %w", err)
		}
		u.Role = entity.Role(role)
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete elimina un admin por ID.
func (r *AdminUserRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM admin_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete admin user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
