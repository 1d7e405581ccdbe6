package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/vianne/todo-api/handlers"
	"github.com/vianne/todo-api/middleware"
	"github.com/vianne/todo-api/models"
	"github.com/vianne/todo-api/password"
	"github.com/vianne/todo-api/router"
	"github.com/vianne/todo-api/store"
	"github.com/vianne/todo-api/token"
	"github.com/vianne/todo-api/utils"
)

// The fakes below are in-memory stand-ins for the Postgres stores. They
// follow the same contract: collapsed credential errors, ownership-blind
// nil results and completedAt stamping.

type issuedToken struct {
	access string
	tok    string
}

type fakeUserStore struct {
	codec  *token.Codec
	users  map[string]*models.User
	tokens map[string][]issuedToken
}

func newFakeUserStore(codec *token.Codec) *fakeUserStore {
	return &fakeUserStore{
		codec:  codec,
		users:  map[string]*models.User{},
		tokens: map[string][]issuedToken{},
	}
}

func (s *fakeUserStore) Create(_ context.Context, email, plain string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); email == "" || err != nil {
		return nil, fmt.Errorf("%w: email is not valid", store.ErrValidation)
	}
	if len(plain) < 6 {
		return nil, fmt.Errorf("%w: password too short", store.ErrValidation)
	}
	for _, u := range s.users {
		if u.Email == email {
			return nil, store.ErrDuplicateEmail
		}
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}
	user := &models.User{ID: utils.NewID(), Email: email, Password: hashed}
	s.users[user.ID] = user
	return user, nil
}

func (s *fakeUserStore) FindByCredentials(_ context.Context, email, plain string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			if !password.Verify(plain, u.Password) {
				return nil, store.ErrInvalidCredentials
			}
			return u, nil
		}
	}
	return nil, store.ErrInvalidCredentials
}

func (s *fakeUserStore) FindByToken(_ context.Context, tok string) (*models.User, error) {
	userID, access, err := s.codec.Verify(tok)
	if err != nil || access != token.PurposeAuth {
		return nil, nil
	}
	for _, issued := range s.tokens[userID] {
		if issued.tok == tok && issued.access == access {
			return s.users[userID], nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) AddToken(_ context.Context, userID, access, tok string) error {
	s.tokens[userID] = append(s.tokens[userID], issuedToken{access: access, tok: tok})
	return nil
}

func (s *fakeUserStore) RemoveToken(_ context.Context, userID, tok string) error {
	kept := s.tokens[userID][:0]
	for _, issued := range s.tokens[userID] {
		if issued.tok != tok {
			kept = append(kept, issued)
		}
	}
	s.tokens[userID] = kept
	return nil
}

type fakeTodoStore struct {
	todos map[string]*models.Todo
}

func newFakeTodoStore() *fakeTodoStore {
	return &fakeTodoStore{todos: map[string]*models.Todo{}}
}

func (s *fakeTodoStore) Create(_ context.Context, creatorID, text string) (*models.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", store.ErrValidation)
	}
	todo := &models.Todo{ID: utils.NewID(), Text: text, Creator: creatorID}
	s.todos[todo.ID] = todo
	return todo, nil
}

func (s *fakeTodoStore) ListByOwner(_ context.Context, ownerID string) ([]models.Todo, error) {
	owned := []models.Todo{}
	for _, todo := range s.todos {
		if todo.Creator == ownerID {
			owned = append(owned, *todo)
		}
	}
	return owned, nil
}

func (s *fakeTodoStore) FindOwned(_ context.Context, id, ownerID string) (*models.Todo, error) {
	todo := s.todos[id]
	if todo == nil || todo.Creator != ownerID {
		return nil, nil
	}
	return todo, nil
}

func (s *fakeTodoStore) UpdateOwned(_ context.Context, id, ownerID string, update models.TodoUpdate) (*models.Todo, error) {
	todo, _ := s.FindOwned(nil, id, ownerID)
	if todo == nil {
		return nil, nil
	}
	if update.Text != nil {
		todo.Text = strings.TrimSpace(*update.Text)
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
	return todo, nil
}

func (s *fakeTodoStore) DeleteOwned(_ context.Context, id, ownerID string) (*models.Todo, error) {
	todo, _ := s.FindOwned(nil, id, ownerID)
	if todo == nil {
		return nil, nil
	}
	delete(s.todos, id)
	return todo, nil
}

type fixture struct {
	app   *fiber.App
	users *fakeUserStore
	todos *fakeTodoStore
	codec *token.Codec
}

func newFixture() *fixture {
	codec := token.NewCodec([]byte("test-secret"))
	users := newFakeUserStore(codec)
	todos := newFakeTodoStore()

	app := fiber.New()
	router.SetupRoutes(app, handlers.New(users, todos, codec), middleware.Auth(users))

	return &fixture{app: app, users: users, todos: todos, codec: codec}
}

// signup registers a user through the HTTP surface and returns the user id
// and a live auth token.
func (f *fixture) signup(t *testing.T, email, pass string) (userID, tok string) {
	t.Helper()
	resp := f.do(t, "POST", "/users", "", models.Credentials{Email: email, Password: pass})
	require.Equal(t, 200, resp.StatusCode)
	tok = resp.Header.Get(middleware.HeaderAuth)
	require.NotEmpty(t, tok)

	var body struct {
		ID string `json:"_id"`
	}
	decode(t, resp, &body)
	return body.ID, tok
}

func (f *fixture) do(t *testing.T, method, path, tok string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set(middleware.HeaderAuth, tok)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// fiberMap mirrors fiber.Map for request bodies.
type fiberMap = map[string]any

type todoEnvelope struct {
	Todo models.Todo `json:"todo"`
}

type todosEnvelope struct {
	Todos []models.Todo `json:"todos"`
}
