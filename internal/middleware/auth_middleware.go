package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/oladayo/exambank/internal/models"
	"github.com/oladayo/exambank/internal/services"
)

// Protect authenticates the request. The token may arrive as a bearer
// Authorization header or as the jwt cookie; missing or unverifiable tokens
// fail closed, and a token whose user has since been deleted or deactivated
// is not trusted either. On success the live user is stored in c.Locals.
func Protect(c *fiber.Ctx) error {
	var tokenString string
	if auth := c.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		tokenString = strings.TrimPrefix(auth, "Bearer ")
	} else if cookie := c.Cookies("jwt"); cookie != "" {
		tokenString = cookie
	}

	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "fail",
			"message": "You are not logged in. Please log in to get access.",
		})
	}

	userID, issuedAt, err := services.VerifySessionToken(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "fail",
			"message": "Token is invalid or has expired.",
		})
	}

	// The token only proves who the user was at issue time; the account must
	// still exist now.
	user, err := services.GetUserByID(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "fail",
			"message": "The user belonging to this token no longer exists.",
		})
	}

	if user.ChangedPasswordAfter(issuedAt) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "fail",
			"message": "Password was changed recently. Please log in again.",
		})
	}

	c.Locals("user", user)
	return c.Next()
}

// RestrictTo gates a route to a fixed set of roles. It must run after
// Protect.
func RestrictTo(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(models.User)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "fail",
				"message": "You are not logged in. Please log in to get access.",
			})
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You do not have permission to perform this action",
		})
	}
}

// CurrentUser returns the authenticated principal attached by Protect.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals("user").(models.User)
	return user, ok
}
