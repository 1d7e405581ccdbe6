package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/vianne/todo-api/models"
)

// HeaderAuth is the request header carrying the auth token.
const HeaderAuth = "x-auth"

// UserFinder resolves a token to the user it belongs to, or nil when the
// token is invalid, revoked or unknown.
type UserFinder interface {
	FindByToken(ctx context.Context, tok string) (*models.User, error)
}

// Auth authenticates the request from the x-auth header. On failure it ends
// the request with an empty 401 and the handler never runs; on success the
// user and the exact token used are stored in the request locals.
func Auth(users UserFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := c.Get(HeaderAuth)
		if tok == "" {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		user, err := users.FindByToken(c.Context(), tok)
		if err != nil || user == nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		c.Locals("user", user)
		c.Locals("token", tok)
		return c.Next()
	}
}

// AuthedUser returns the user bound by Auth.
func AuthedUser(c *fiber.Ctx) *models.User {
	return c.Locals("user").(*models.User)
}

// AuthedToken returns the token string the request authenticated with.
func AuthedToken(c *fiber.Ctx) string {
	return c.Locals("token").(string)
}
