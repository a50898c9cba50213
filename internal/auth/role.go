package auth

// Role is the closed set of account roles.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// Predefined role sets for route guards.
var (
	AdminOnly        = []Role{RoleAdmin}
	UserOnly         = []Role{RoleUser}
	AllAuthenticated = []Role{RoleUser, RoleAdmin}
)

func HasRole(role Role, allowed []Role) bool {
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}
