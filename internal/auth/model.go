package auth

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), true
	}
	return "", false
}

// Fine-grained permissions granted through roles. Routes are gated on these,
// never on role names directly.
const (
	PermAdminRead   = "admin:read"
	PermAdminCreate = "admin:create"
	PermUserRead    = "user:read"
	PermUserCreate  = "user:create"
)

// rolePermissions is static, process-wide policy checked at the route
// boundary. Lifecycle and summary services never consult it.
var rolePermissions = map[Role][]string{
	RoleAdmin: {PermAdminRead, PermAdminCreate},
	RoleUser:  {PermUserRead, PermUserCreate},
}

// HasPermission reports whether the role grants perm.
func (r Role) HasPermission(perm string) bool {
	for _, p := range rolePermissions[r] {
		if p == perm {
			return true
		}
	}
	return false
}

// Permissions returns a copy of the permissions granted to the role.
func (r Role) Permissions() []string {
	perms := rolePermissions[r]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// User is a persisted account record.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Firstname    string
	Lastname     string
	Role         Role
	Deleted      bool
	CreatedAt    time.Time
}
