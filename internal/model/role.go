package model

import "fmt"

// Role classifies an account. The set is closed: every account holds exactly
// one of these values and authorization decisions are derived from it.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

// Roles lists all valid roles.
var Roles = []Role{RoleCustomer, RoleEmployee, RoleAdmin}

// ParseRole converts a string into a Role, rejecting anything outside the
// closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

// Authority returns the granted-authority token the authorization layer
// recognizes, e.g. CUSTOMER -> "ROLE_CUSTOMER".
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}
