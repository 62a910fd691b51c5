package model

// Role is the role string the backend attaches to a user. The backend is not
// consistent about casing, so every accepted spelling is listed here and nothing
// is normalized.
type Role string

const (
	RolePlayer     Role = "Player"
	RoleAdmin      Role = "Admin"
	RoleSuperAdmin Role = "SuperAdmin"
	// RoleSuperadmin is the lower-case variant some endpoints return
	RoleSuperadmin Role = "Superadmin"
)

// KnownRoles lists every accepted role spelling
var KnownRoles = []Role{RolePlayer, RoleAdmin, RoleSuperAdmin, RoleSuperadmin}

// DefaultRoleChoices is offered when the roles endpoint cannot be reached
var DefaultRoleChoices = []Role{RoleAdmin, RolePlayer}

// IsPlayer reports whether the role selects the player layout
func (r Role) IsPlayer() bool {
	return r == RolePlayer
}

// IsAdmin reports whether the role is one of the administrative spellings
func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// Known reports whether the role is one of the accepted spellings
func (r Role) Known() bool {
	for _, k := range KnownRoles {
		if r == k {
			return true
		}
	}
	return false
}

// String returns the role as sent to the backend
func (r Role) String() string {
	return string(r)
}
