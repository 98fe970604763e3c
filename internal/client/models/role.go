package models

// Role is the closed set of principal kinds recognized by the platform.
// Role-dependent branching must switch exhaustively over these constants so a
// new role is a compile-time concern rather than a silent fall-through.
type Role string

const (
	RoleAdmin            Role = "ADMIN"
	RoleCollector        Role = "COLLECTOR"
	RoleHousehold        Role = "HOUSEHOLD"
	RoleMunicipality     Role = "MUNICIPALITY"
	RoleMunicipalManager Role = "MUNICIPAL_MANAGER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCollector, RoleHousehold, RoleMunicipality, RoleMunicipalManager:
		return true
	}
	return false
}
