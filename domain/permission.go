package domain

import "github.com/x-xyz/auction/base/ctx"

// PermissionAll grants every permission
const PermissionAll = "*"

type PermissionUsecase interface {
	Fetch(c ctx.Ctx) ([]string, error)
	// HasPermission is true for an empty permission
	HasPermission(c ctx.Ctx, permission string) bool
	Invalidate(c ctx.Ctx) error
}

// Granted tells whether perms allow permission
func Granted(perms []string, permission string) bool {
	if permission == "" {
		return true
	}
	for _, p := range perms {
		if p == PermissionAll || p == permission {
			return true
		}
	}
	return false
}
