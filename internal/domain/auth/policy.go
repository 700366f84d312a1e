package auth

import (
	"stocktrack/internal/core/apperror"
)

// Operation identifies a role-gated API operation.
type Operation string

const (
	OpInventoryRead   Operation = "inventory:read"
	OpInventoryWrite  Operation = "inventory:write"
	OpInventoryDelete Operation = "inventory:delete"
	OpSaleCreate      Operation = "sale:create"
	OpSaleRead        Operation = "sale:read"
	OpStatsRead       Operation = "stats:read"
)

// allowedRoles is the static operation -> role-set table. The gate is
// checked once in middleware, not scattered per handler.
var allowedRoles = map[Operation][]Role{
	OpInventoryRead:   {RoleAdministrator, RoleManager, RoleEmployee},
	OpInventoryWrite:  {RoleAdministrator, RoleManager},
	OpInventoryDelete: {RoleAdministrator},
	OpSaleCreate:      {RoleAdministrator, RoleManager, RoleEmployee},
	OpSaleRead:        {RoleAdministrator, RoleManager, RoleEmployee},
	OpStatsRead:       {RoleAdministrator, RoleManager, RoleEmployee},
}

// Authorize checks the role against the operation's allowed set.
// Returns nil when allowed, Forbidden otherwise.
func Authorize(role Role, op Operation) error {
	roles, ok := allowedRoles[op]
	if !ok {
		return apperror.NewForbidden("unknown operation").
			WithDetail("operation", string(op))
	}
	for _, r := range roles {
		if r == role {
			return nil
		}
	}
	return apperror.NewForbidden("insufficient permissions").
		WithDetail("operation", string(op)).
		WithDetail("role", string(role))
}
