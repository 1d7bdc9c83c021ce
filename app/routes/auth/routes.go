package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	api := app.Group("/api/auth")

	api.Post("/login", LoginAPI)
	api.Post("/logout", LogoutAPI)
	api.Post("/change-password", AuthMiddleware, ChangePasswordAPI)
}

// AuthMiddleware validates the JWT from the jwt_token cookie or the
// Authorization header and stores the claims in the request locals.
func AuthMiddleware(c *fiber.Ctx) error {
	token := c.Cookies("jwt_token")
	if token == "" {
		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if token == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_role", claims.Role)

	return c.Next()
}
