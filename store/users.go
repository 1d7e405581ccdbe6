package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vianne/todo-api/models"
	"github.com/vianne/todo-api/password"
	"github.com/vianne/todo-api/token"
	"github.com/vianne/todo-api/utils"
)

const minPasswordLen = 6

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// UserStore reads and writes user documents and their token lists.
type UserStore struct {
	db    *sql.DB
	codec *token.Codec
}

func NewUserStore(db *sql.DB, codec *token.Codec) *UserStore {
	return &UserStore{db: db, codec: codec}
}

// Create validates the email and password, hashes the password and inserts
// the user. A taken email returns ErrDuplicateEmail.
func (s *UserStore) Create(ctx context.Context, email, plain string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); email == "" || err != nil {
		return nil, fmt.Errorf("%w: email is not valid", ErrValidation)
	}
	if len(plain) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	user := &models.User{ID: utils.NewID(), Email: email, Password: hashed}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, password) VALUES ($1, $2, $3)",
		user.ID, user.Email, user.Password,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return user, nil
}

// FindByCredentials looks the user up by email and verifies the password.
// Unknown email and wrong password collapse into the same error.
func (s *UserStore) FindByCredentials(ctx context.Context, email, plain string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, password FROM users WHERE email = $1", email,
	).Scan(&user.ID, &user.Email, &user.Password)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}

	if !password.Verify(plain, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// FindByID returns the user or nil when the id is unknown or malformed.
func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	if !utils.ValidID(id) {
		return nil, nil
	}

	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, password FROM users WHERE id = $1", id,
	).Scan(&user.ID, &user.Email, &user.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByToken verifies the token signature, then confirms the exact token
// string is still on the user's token list. A removed token no longer
// authenticates, which is how logout works. Any failure returns nil.
func (s *UserStore) FindByToken(ctx context.Context, tok string) (*models.User, error) {
	userID, access, err := s.codec.Verify(tok)
	if err != nil || access != token.PurposeAuth {
		return nil, nil
	}
	if !utils.ValidID(userID) {
		return nil, nil
	}

	var user models.User
	err = s.db.QueryRowContext(ctx,
		`SELECT u.id, u.email, u.password
		 FROM users u
		 JOIN user_tokens t ON t.user_id = u.id
		 WHERE u.id = $1 AND t.token = $2 AND t.access = $3`,
		userID, tok, access,
	).Scan(&user.ID, &user.Email, &user.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}

// AddToken appends a signed token to the user's token list.
func (s *UserStore) AddToken(ctx context.Context, userID, access, tok string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO user_tokens (user_id, access, token) VALUES ($1, $2, $3)",
		userID, access, tok,
	)
	return err
}

// RemoveToken deletes the token from the user's list. Removing a token that
// is not there is a no-op.
func (s *UserStore) RemoveToken(ctx context.Context, userID, tok string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM user_tokens WHERE user_id = $1 AND token = $2",
		userID, tok,
	)
	return err
}
