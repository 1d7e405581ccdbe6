package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vianne/todo-api/models"
	"github.com/vianne/todo-api/utils"
)

// TodoStore reads and writes todo documents. Every lookup is scoped to the
// owner: a todo that exists but belongs to someone else is reported exactly
// like one that does not exist.
type TodoStore struct {
	db *sql.DB
}

func NewTodoStore(db *sql.DB) *TodoStore {
	return &TodoStore{db: db}
}

// Create inserts a new todo for the creator. Text is trimmed and must not
// end up empty.
func (s *TodoStore) Create(ctx context.Context, creatorID, text string) (*models.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}

	todo := &models.Todo{
		ID:      utils.NewID(),
		Text:    text,
		Creator: creatorID,
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO todos (id, text, completed, completed_at, creator) VALUES ($1, $2, $3, $4, $5)",
		todo.ID, todo.Text, todo.Completed, nil, todo.Creator,
	)
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// ListByOwner returns every todo created by the owner.
func (s *TodoStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Todo, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, text, completed, completed_at, creator FROM todos WHERE creator = $1",
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	return todos, rows.Err()
}

// FindOwned returns the todo only when it exists and belongs to the owner;
// in every other case, malformed id included, it returns nil.
func (s *TodoStore) FindOwned(ctx context.Context, id, ownerID string) (*models.Todo, error) {
	if !utils.ValidID(id) {
		return nil, nil
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT id, text, completed, completed_at, creator FROM todos WHERE id = $1 AND creator = $2",
		id, ownerID,
	)
	todo, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return todo, nil
}

// UpdateOwned applies a partial update under the same ownership rule as
// FindOwned. Setting completed to true stamps completed_at with the current
// time, setting it false clears the stamp, omitting it touches neither.
func (s *TodoStore) UpdateOwned(ctx context.Context, id, ownerID string, update models.TodoUpdate) (*models.Todo, error) {
	todo, err := s.FindOwned(ctx, id, ownerID)
	if err != nil || todo == nil {
		return nil, err
	}

	if update.Text != nil {
		text := strings.TrimSpace(*update.Text)
		if text == "" {
			return nil, fmt.Errorf("%w: text is required", ErrValidation)
		}
		todo.Text = text
	}
	if update.Completed != nil {
		todo.Completed = *update.Completed
		if todo.Completed {
			now := time.Now().UnixMilli()
			todo.CompletedAt = &now
		} else {
			todo.CompletedAt = nil
		}
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE todos SET text = $1, completed = $2, completed_at = $3 WHERE id = $4 AND creator = $5",
		todo.Text, todo.Completed, todo.CompletedAt, todo.ID, todo.Creator,
	)
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// DeleteOwned removes the todo under the same ownership rule and returns the
// deleted document, or nil when there was nothing the owner could delete.
func (s *TodoStore) DeleteOwned(ctx context.Context, id, ownerID string) (*models.Todo, error) {
	if !utils.ValidID(id) {
		return nil, nil
	}

	row := s.db.QueryRowContext(ctx,
		`DELETE FROM todos WHERE id = $1 AND creator = $2
		 RETURNING id, text, completed, completed_at, creator`,
		id, ownerID,
	)
	todo, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return todo, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(row scanner) (*models.Todo, error) {
	var todo models.Todo
	var completedAt sql.NullInt64
	err := row.Scan(&todo.ID, &todo.Text, &todo.Completed, &completedAt, &todo.Creator)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		todo.CompletedAt = &completedAt.Int64
	}
	return &todo, nil
}
