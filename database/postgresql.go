package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql
)

// Connect opens a connection pool to PostgreSQL and creates the tables if
// they do not exist yet. The caller owns the handle and closes it on shutdown.
func Connect(uri string) (*sql.DB, error) {
	if uri == "" {
		return nil, errors.New("you must set your 'POSTGRESQL_URI' environmental variable")
	}

	db, err := sql.Open("pgx", uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("cannot connect to PostgreSQL: %w", err)
	}

	fmt.Println("Connected to PostgreSQL successfully")

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		password TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS user_tokens (
		user_id UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		access VARCHAR(50) NOT NULL,
		token TEXT NOT NULL,
		PRIMARY KEY (user_id, token)
	);

	CREATE TABLE IF NOT EXISTS todos (
		id UUID PRIMARY KEY,
		text TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at BIGINT,
		creator UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE
	)
	`
	if _, err := db.Exec(query); err != nil {
		return err
	}

	fmt.Println("Tables created or already exist")
	return nil
}

// Close closes the connection pool.
func Close(db *sql.DB) {
	if db != nil {
		if err := db.Close(); err != nil {
			panic(err)
		}
		fmt.Println("Database connection closed")
	}
}
