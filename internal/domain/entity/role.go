// Package entity contains the core business objects of the project.
package entity

// Role is the closed set of account kinds a credential can hold.
type Role string

const (
	// RoleCustomer hires services.
	RoleCustomer Role = "customer"
	// RoleProvider offers services and must be identified by a tax id.
	RoleProvider Role = "provider"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is one of the known values.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleProvider:
		return true
	default:
		return false
	}
}

// RequiresIdentifier reports whether accounts with this role must carry a
// tax identifier as their subject.
func (r Role) RequiresIdentifier() bool {
	return r == RoleProvider
}

// ParseRole converts a raw string into a Role. ok is false for unknown values.
func ParseRole(s string) (role Role, ok bool) {
	role = Role(s)

	return role, role.IsValid()
}
