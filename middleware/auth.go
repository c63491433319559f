package middleware

import (
	"fleetflow/constants"
	"fleetflow/services/authtoken"
	"fleetflow/types"

	"github.com/gofiber/fiber/v2"
)

var tokenService *authtoken.Service

// Init wires the token service used by the auth middleware
func Init(svc *authtoken.Service) {
	tokenService = svc
}

// RequirePermissions creates a middleware that requires one of the given permissions
func RequirePermissions(permissions ...string) fiber.Handler {
	return isAuthenticated(permissions)
}

// RequireAuthentication only requires a valid token without specific permissions
func RequireAuthentication() fiber.Handler {
	return isAuthenticated([]string{constants.PermAny})
}

// SessionFromCtx returns the resolved session claims, or nil outside auth routes
func SessionFromCtx(c *fiber.Ctx) *authtoken.Claims {
	claims, ok := c.Locals("session").(*authtoken.Claims)
	if !ok {
		return nil
	}
	return claims
}

func isAuthenticated(requiredPermissions []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Authorization token required",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := tokenService.ValidateAccess(authHeader)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Invalid or expired token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		// Token may outlive its session if the user logged out
		if !tokenService.SessionActive(claims.SessionID) {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Session is no longer active",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !hasAnyPermission(claims.Permissions, requiredPermissions) {
			return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
				Message: "Insufficient permissions",
				Status:  fiber.StatusForbidden,
			})
		}

		// Resolve the session once; controllers read it from locals
		c.Locals("session", claims)
		return c.Next()
	}
}

func hasAnyPermission(userPermissions, requiredPermissions []string) bool {
	for _, required := range requiredPermissions {
		if required == constants.PermAny {
			return true
		}
	}

	permissionSet := make(map[string]bool)
	for _, p := range userPermissions {
		permissionSet[p] = true
	}

	for _, required := range requiredPermissions {
		if permissionSet[required] {
			return true
		}
	}
	return false
}
