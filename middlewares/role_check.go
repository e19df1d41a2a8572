package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/utils"
)

// Capability names the permission level an endpoint requires. Capabilities
// are flat role-set lookups, not a hierarchy.
type Capability string

const (
	CapAdmin    Capability = "admin"
	CapOwner    Capability = "owner"
	CapManager  Capability = "manager"
	CapEmployee Capability = "employee"
)

var capabilityRoles = map[Capability]map[models.AccountRole]bool{
	CapAdmin: {
		models.RoleAdmin: true,
	},
	CapOwner: {
		models.RoleOwner: true,
	},
	CapManager: {
		models.RoleManager: true,
		models.RoleOwner:   true,
	},
	CapEmployee: {
		models.RoleEmployee: true,
		models.RoleManager:  true,
		models.RoleCashier:  true,
		models.RoleKitchen:  true,
		models.RoleOwner:    true,
	},
}

// HasCapability reports whether a role satisfies a capability.
func HasCapability(role models.AccountRole, cap Capability) bool {
	return capabilityRoles[cap][role]
}

// requireCapability layers a role check on the resolved staff principal.
// A missing principal is an authentication failure; a valid principal with
// the wrong role is an authorization failure.
func requireCapability(cap Capability, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := CurrentStaff(c)
		if !ok {
			utils.RespondAppError(c, utils.AuthenticationError("authentication required"))
			c.Abort()
			return
		}
		if !HasCapability(account.Role, cap) {
			utils.RespondAppError(c, utils.AuthorizationError(message))
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return requireCapability(CapAdmin, "admin access required")
}

func RequireOwner() gin.HandlerFunc {
	return requireCapability(CapOwner, "owner access required")
}

func RequireManager() gin.HandlerFunc {
	return requireCapability(CapManager, "manager access required")
}

func RequireEmployee() gin.HandlerFunc {
	return requireCapability(CapEmployee, "employee access required")
}
