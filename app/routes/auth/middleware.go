package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// AuthMiddleware validates the JWT from the jwt_token cookie or a Bearer
// header and stores its claims on the request.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies("jwt_token")

		if tokenString == "" {
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				tokenString = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "No token found"})
		}

		claims, err := ValidateJWT(secret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid token"})
		}

		c.Locals(claimsKey, claims)
		c.Locals("user_id", claims.UserID)
		c.Locals("user_roles", claims.Roles)

		return c.Next()
	}
}

// Claims returns the claims stored by AuthMiddleware, nil when absent.
func Claims(c *fiber.Ctx) *JWTClaims {
	claims, _ := c.Locals(claimsKey).(*JWTClaims)
	return claims
}

// RoleMiddleware checks if user has required role
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims := Claims(c); claims != nil && claims.HasRole(allowedRoles...) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Insufficient permissions"})
	}
}

// SchoolScope rejects tokens bound to a different school than the :schoolId
// path parameter. Tokens without a school and admins pass.
func SchoolScope(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil || claims.SchoolID == "" || claims.HasRole("admin") || claims.SchoolID == c.Params(param) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Token is not valid for this school"})
	}
}
