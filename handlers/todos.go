package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vianne/todo-api/middleware"
	"github.com/vianne/todo-api/models"
	"github.com/vianne/todo-api/store"
)

// HandleCreateTodo creates a todo owned by the authenticated user.
func (h *Handler) HandleCreateTodo(c *fiber.Ctx) error {
	body := new(struct {
		Text string `json:"text"`
	})
	if err := c.BodyParser(body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	todo, err := h.todos.Create(c.Context(), middleware.AuthedUser(c).ID, body.Text)
	if errors.Is(err, store.ErrValidation) {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(200).JSON(fiber.Map{"todo": todo})
}

// HandleListTodos returns every todo the authenticated user created.
func (h *Handler) HandleListTodos(c *fiber.Ctx) error {
	todos, err := h.todos.ListByOwner(c.Context(), middleware.AuthedUser(c).ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(200).JSON(fiber.Map{"todos": todos})
}

// HandleGetOneTodo returns a single owned todo. A todo that does not exist
// and a todo owned by someone else both come back as an empty 404.
func (h *Handler) HandleGetOneTodo(c *fiber.Ctx) error {
	todo, err := h.todos.FindOwned(c.Context(), c.Params("id"), middleware.AuthedUser(c).ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if todo == nil {
		return c.SendStatus(404)
	}
	return c.Status(200).JSON(fiber.Map{"todo": todo})
}

// HandleUpdateTodo partially updates text and completed on an owned todo.
func (h *Handler) HandleUpdateTodo(c *fiber.Ctx) error {
	update := new(models.TodoUpdate)
	if err := c.BodyParser(update); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	todo, err := h.todos.UpdateOwned(c.Context(), c.Params("id"), middleware.AuthedUser(c).ID, *update)
	if errors.Is(err, store.ErrValidation) {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if todo == nil {
		return c.SendStatus(404)
	}
	return c.Status(200).JSON(fiber.Map{"todo": todo})
}

// HandleDeleteTodo deletes an owned todo and returns the removed document.
func (h *Handler) HandleDeleteTodo(c *fiber.Ctx) error {
	todo, err := h.todos.DeleteOwned(c.Context(), c.Params("id"), middleware.AuthedUser(c).ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if todo == nil {
		return c.SendStatus(404)
	}
	return c.Status(200).JSON(fiber.Map{"todo": todo})
}
