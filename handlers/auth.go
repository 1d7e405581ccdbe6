package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vianne/todo-api/middleware"
	"github.com/vianne/todo-api/models"
	"github.com/vianne/todo-api/store"
	"github.com/vianne/todo-api/token"
)

// HandleSignup registers a new user and logs them in right away: the fresh
// auth token is returned in the x-auth header.
func (h *Handler) HandleSignup(c *fiber.Ctx) error {
	body := new(models.Credentials)
	if err := c.BodyParser(body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := h.users.Create(c.Context(), body.Email, body.Password)
	if errors.Is(err, store.ErrValidation) || errors.Is(err, store.ErrDuplicateEmail) {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return h.respondWithToken(c, user)
}

// HandleLogin exchanges email and password for a new auth token. Unknown
// email and wrong password produce the same 400.
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	body := new(models.Credentials)
	if err := c.BodyParser(body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := h.users.FindByCredentials(c.Context(), body.Email, body.Password)
	if errors.Is(err, store.ErrInvalidCredentials) {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return h.respondWithToken(c, user)
}

// respondWithToken issues an auth token, records it on the user's token list
// and sends the user back with the token in the x-auth header.
func (h *Handler) respondWithToken(c *fiber.Ctx, user *models.User) error {
	tok, err := h.codec.Issue(user.ID, token.PurposeAuth)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.users.AddToken(c.Context(), user.ID, token.PurposeAuth, tok); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(middleware.HeaderAuth, tok)
	return c.Status(200).JSON(user)
}

// HandleMe returns the authenticated user.
func (h *Handler) HandleMe(c *fiber.Ctx) error {
	return c.Status(200).JSON(middleware.AuthedUser(c))
}

// HandleLogout removes exactly the token this request authenticated with.
// Other sessions of the same user stay logged in.
func (h *Handler) HandleLogout(c *fiber.Ctx) error {
	user := middleware.AuthedUser(c)
	tok := middleware.AuthedToken(c)

	if err := h.users.RemoveToken(c.Context(), user.ID, tok); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(200)
}
