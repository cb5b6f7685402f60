package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
)

// ParseRole es un enum cerrado: solo super_admin y staff son válidos.
func TestParseRole(t *testing.T) {
	r, ok := entity.ParseRole("super_admin")
	assert.True(t, ok)
	assert.Equal(t, entity.RoleSuperAdmin, r)

	r, ok = entity.ParseRole("staff")
	assert.True(t, ok)
	assert.Equal(t, entity.RoleStaff, r)

	_, ok = entity.ParseRole("admin")
	assert.False(t, ok, "cualquier valor fuera del enum es inválido")

	_, ok = entity.ParseRole("")
	assert.False(t, ok)
}

func TestRoleAllows(t *testing.T) {
	assert.True(t, entity.RoleSuperAdmin.Allows(entity.RoleSuperAdmin))
	assert.True(t, entity.RoleStaff.Allows(entity.RoleSuperAdmin, entity.RoleStaff))
	assert.False(t, entity.RoleStaff.Allows(entity.RoleSuperAdmin),
		"staff no pertenece al conjunto solo-super_admin")
	assert.False(t, entity.RoleStaff.Allows(), "conjunto vacío no permite a nadie")
}
