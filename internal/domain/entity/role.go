package entity

// Role es el rol de un usuario admin/staff. Enum cerrado: cualquier otro
// valor se considera inválido al parsear.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleStaff      Role = "staff"
)

// ParseRole valida un rol recibido como string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSuperAdmin, RoleStaff:
		return Role(s), true
	}
	return "", false
}

// Allows indica si el rol pertenece al conjunto permitido.
func (r Role) Allows(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// String implementa fmt.Stringer.
func (r Role) String() string { return string(r) }
