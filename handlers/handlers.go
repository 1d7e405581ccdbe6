package handlers

import (
	"context"

	"github.com/vianne/todo-api/models"
	"github.com/vianne/todo-api/token"
)

// UserStore is what the user handlers need from the persistence layer.
type UserStore interface {
	Create(ctx context.Context, email, plain string) (*models.User, error)
	FindByCredentials(ctx context.Context, email, plain string) (*models.User, error)
	AddToken(ctx context.Context, userID, access, tok string) error
	RemoveToken(ctx context.Context, userID, tok string) error
}

// TodoStore is what the todo handlers need from the persistence layer.
type TodoStore interface {
	Create(ctx context.Context, creatorID, text string) (*models.Todo, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Todo, error)
	FindOwned(ctx context.Context, id, ownerID string) (*models.Todo, error)
	UpdateOwned(ctx context.Context, id, ownerID string, update models.TodoUpdate) (*models.Todo, error)
	DeleteOwned(ctx context.Context, id, ownerID string) (*models.Todo, error)
}

// Handler holds the route handlers' dependencies. Everything is handed in at
// startup; there is no package-level state.
type Handler struct {
	users UserStore
	todos TodoStore
	codec *token.Codec
}

func New(users UserStore, todos TodoStore, codec *token.Codec) *Handler {
	return &Handler{users: users, todos: todos, codec: codec}
}
