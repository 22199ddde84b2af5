// Package policy centralizes the authorization predicates used by the
// handlers. Visibility is scoped by filtering queries on society, flat
// or user IDs; these predicates decide which scope applies.
package policy

import "nestify/internal/model"

// IsAdmin reports whether the user holds the admin role
func IsAdmin(u *model.User) bool {
	return u.Role == model.RoleAdmin
}

// CanManageBilling reports whether the user sees and manages
// society-wide invoices and payments
func CanManageBilling(u *model.User) bool {
	return u.Role == model.RoleAdmin || u.Role == model.RoleTreasurer
}

// CanOverseeVisitors reports whether the user sees the society-wide
// visitor log
func CanOverseeVisitors(u *model.User) bool {
	return u.Role == model.RoleAdmin || u.Role == model.RoleSecurity
}

// CanActOn reports whether the user may mutate a record owned by
// ownerID: owners act on their own records, admins on anyone's.
func CanActOn(u *model.User, ownerID uint) bool {
	return u.ID == ownerID || u.Role == model.RoleAdmin
}
