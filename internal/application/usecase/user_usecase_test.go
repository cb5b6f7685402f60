package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/application/usecase"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
)

type fakeUserRepo struct {
	byID map[string]*entity.AdminUser
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.AdminUser{}}
}

func (f *fakeUserRepo) Create(u *entity.AdminUser) error {
	for _, e := range f.byID {
		if e.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}
func (f *fakeUserRepo) GetByID(id string) (*entity.AdminUser, error) {
	if u, exists := f.byID[id]; exists {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*entity.AdminUser, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) Update(u *entity.AdminUser) error {
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}
func (f *fakeUserRepo) List(limit, offset int) ([]*entity.AdminUser, error) {
	out := make([]*entity.AdminUser, 0, len(f.byID))
	for _, u := range f.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}
func (f *fakeUserRepo) Search(q string, limit, offset int) ([]*entity.AdminUser, error) {
	return nil, nil
}
func (f *fakeUserRepo) Delete(id string) error {
	if _, exists := f.byID[id]; !exists {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func strPtr(s string) *string { return &s }

// Caso 1: el alta guarda el hash bcrypt, nunca la contraseña en claro, y
// normaliza el email.
func TestUser_CreateGuardaHash(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Create(dto.CreateUserRequest{
		Name:     "Sofía",
		Email:    "  Sofia@Tienda.LOCAL ",
		Password: "claveStaff1",
		Role:     "staff",
	})
	require.NoError(t, err)
	assert.Equal(t, "sofia@tienda.local", out.Email)
	assert.Equal(t, "staff", out.Role)

	stored := repo.byID[out.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "claveStaff1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("claveStaff1")))
}

// Caso 2: rol fuera del enum cerrado → error de validación en "role".
func TestUser_CreateRolInvalido(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	_, err := uc.Create(dto.CreateUserRequest{
		Name:     "Sofía",
		Email:    "sofia@tienda.local",
		Password: "claveStaff1",
		Role:     "vendedor",
	})
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "role")
}

// Caso 3: Update cambia nombre y contraseña pero jamás el rol.
func TestUser_UpdateNoTocaRol(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Create(dto.CreateUserRequest{
		Name: "Sofía", Email: "sofia@tienda.local", Password: "claveStaff1", Role: "staff",
	})
	require.NoError(t, err)

	updated, err := uc.Update(out.ID, dto.UpdateUserRequest{
		Name:     strPtr("Sofía Díaz"),
		Password: strPtr("otraClave123"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Sofía Díaz", updated.Name)
	assert.Equal(t, "staff", updated.Role, "el rol queda fijo desde el alta")

	stored := repo.byID[out.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("otraClave123")))
}

// Caso 4: un usuario no puede eliminarse a sí mismo.
func TestUser_DeleteASiMismo(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Create(dto.CreateUserRequest{
		Name: "Root", Email: "root@tienda.local", Password: "claveRoot12", Role: "super_admin",
	})
	require.NoError(t, err)

	err = uc.Delete(out.ID, out.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, repo.byID, out.ID, "la cuenta sigue existiendo")

	// Otro super_admin sí puede eliminarlo.
	require.NoError(t, uc.Delete(out.ID, "otro-admin"))
	assert.NotContains(t, repo.byID, out.ID)
}

// Caso 5: eliminar un id inexistente → ErrNotFound.
func TestUser_DeleteInexistente(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())
	err := uc.Delete("fantasma", "otro-admin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
