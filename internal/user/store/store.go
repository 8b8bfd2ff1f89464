package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eldermuller/dindin/internal/user"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO usuarios (nome, email, senha)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := s.db.QueryRowContext(ctx, query, u.Name, u.Email, u.PasswordHash).Scan(&u.ID); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*user.User, error) {
	var u user.User

	err := s.db.QueryRowContext(ctx,
		"SELECT id, nome, email, senha FROM usuarios WHERE id = $1", id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User

	err := s.db.QueryRowContext(ctx,
		"SELECT id, nome, email, senha FROM usuarios WHERE email = $1", email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return &u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *user.User) error {
	query := `
		UPDATE usuarios
		SET nome = $1, email = $2, senha = $3
		WHERE id = $4
	`

	if _, err := s.db.ExecContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.ID); err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	return nil
}
