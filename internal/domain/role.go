package domain

// Role is the viewer's role, which affects price visibility.
type Role string

const (
	RoleUser   Role = "user"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// IsOperator reports whether the role always sees real prices.
func (r Role) IsOperator() bool {
	return r == RoleVendor || r == RoleAdmin
}

// RoleFromString parses a role, defaulting to the consumer role for
// unknown or anonymous viewers.
func RoleFromString(s string) Role {
	r := Role(s)
	if !r.IsValid() {
		return RoleUser
	}
	return r
}

func (r Role) String() string {
	return string(r)
}
