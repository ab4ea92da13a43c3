package domain

import (
	"fmt"
	"strings"
)

// Role is the caller's role as provided by the gateway
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStylist  Role = "stylist"
	RoleCustomer Role = "customer"
)

// ParseRole validates a role name
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleStylist, RoleCustomer:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// IsStaff returns true for salon staff (admin and stylist)
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleStylist
}

// Actor identifies who performs an action
type Actor struct {
	UserID int64
	Role   Role
}

// CanActOn reports whether the actor may act on the appointment:
// admins on any, stylists on their own, customers on the ones they booked.
func (a Actor) CanActOn(app *Appointment) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleStylist:
		return app.StylistID == a.UserID
	case RoleCustomer:
		return app.CustomerID == a.UserID
	default:
		return false
	}
}
