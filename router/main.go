package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vianne/todo-api/handlers"
)

// SetupRoutes wires every endpoint. The todo routes and the two user "me"
// routes sit behind the auth middleware; signup and login do not.
func SetupRoutes(app *fiber.App, h *handlers.Handler, auth fiber.Handler) {
	app.Get("/health", handlers.HandleHealthCheck)

	app.Post("/users", h.HandleSignup)
	app.Post("/users/login", h.HandleLogin)
	app.Get("/users/me", auth, h.HandleMe)
	app.Delete("/users/me/token", auth, h.HandleLogout)

	todos := app.Group("/todos", auth)
	todos.Post("/", h.HandleCreateTodo)
	todos.Get("/", h.HandleListTodos)
	todos.Get("/:id", h.HandleGetOneTodo)
	todos.Patch("/:id", h.HandleUpdateTodo)
	todos.Delete("/:id", h.HandleDeleteTodo)
}
