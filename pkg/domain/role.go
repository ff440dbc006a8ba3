package domain

import "fmt"

// Role is the stable role identifier carried in tokens and used for
// authorization checks. The Spanish display label is presentation-only and is
// never parsed back.
type Role string

const (
	RoleAssessor      Role = "assessor"
	RoleSupervisor    Role = "supervisor"
	RoleAdministrator Role = "administrator"
)

// Roles returns the fixed role set seeded at initialization.
func Roles() []Role {
	return []Role{RoleAssessor, RoleSupervisor, RoleAdministrator}
}

// Label returns the display name stored in the roles table.
func (r Role) Label() string {
	switch r {
	case RoleAssessor:
		return "Asesor"
	case RoleSupervisor:
		return "Supervisor"
	case RoleAdministrator:
		return "Administrador"
	}
	return string(r)
}

// ParseRole maps a stable role code back to a Role.
func ParseRole(code string) (Role, error) {
	switch Role(code) {
	case RoleAssessor, RoleSupervisor, RoleAdministrator:
		return Role(code), nil
	}
	return "", fmt.Errorf("invalid role %q", code)
}
