package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, u *User) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Name     string
	Email    string
	Password string
}

func (p Params) validate() error {
	if p.Name == "" || p.Email == "" || p.Password == "" {
		return ErrMissingFields
	}

	return nil
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, params Params) (*User, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	if err := s.checkEmailFree(ctx, params.Email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Authenticate verifies the e-mail/password pair and returns the account.
// An unknown e-mail and a wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

// Update replaces the account's profile fields and re-hashes the password.
func (s *Service) Update(ctx context.Context, id int64, params Params) error {
	if err := params.validate(); err != nil {
		return err
	}

	if err := s.checkEmailFree(ctx, params.Email, id); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return s.repo.UpdateUser(ctx, &User{
		ID:           id,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: string(hash),
	})
}

// checkEmailFree fails with ErrEmailTaken when an account other than self
// already uses the e-mail. self is zero on registration.
func (s *Service) checkEmailFree(ctx context.Context, email string, self int64) error {
	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}

		return err
	}

	if existing.ID != self {
		return ErrEmailTaken
	}

	return nil
}
