package user

// Role slugs.
const (
	RoleNormalUser   = "normal_user"
	RoleDev          = "dev"
	RoleAdmin        = "admin"
	RoleStaffManager = "staff_manager"
	RoleInfraManager = "infra_manager"
	RoleViewer       = "viewer"
)

var (
	// PersonnelManagers resolve solicitudes, justificaciones and omisiones.
	PersonnelManagers = []string{RoleAdmin, RoleDev, RoleStaffManager}

	// InfraManagers resolve infrastructure reports.
	InfraManagers = []string{RoleAdmin, RoleDev, RoleInfraManager}

	// StaffAdministrators manage users and role grants.
	StaffAdministrators = []string{RoleStaffManager, RoleAdmin}

	// ElevatedRoles may only be granted or revoked by an admin.
	ElevatedRoles = []string{RoleAdmin, RoleDev}
)

// Readers returns the roles that may read every row managed by managers.
func Readers(managers []string) []string {
	return append(append([]string{}, managers...), RoleViewer)
}

// IsKnownRole reports whether slug is one of the seeded roles.
func IsKnownRole(slug string) bool {
	switch slug {
	case RoleNormalUser, RoleDev, RoleAdmin, RoleStaffManager, RoleInfraManager, RoleViewer:
		return true
	}
	return false
}
