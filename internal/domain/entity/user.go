package entity

import "time"

// Roles válidos para User (enumeración cerrada).
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// ValidRole indica si s es uno de los roles de la enumeración.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleOperator || s == RoleViewer
}

// User representa un usuario del sistema (pertenece a una Company).
// IsSuperuser omite todo el scoping por empresa; para superusuarios el rol no aplica.
// IsStaff habilita el acceso a los módulos de gestión.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, operator, viewer
	IsSuperuser  bool
	IsStaff      bool
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
