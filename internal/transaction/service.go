package transaction

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id, ownerID int64) (*Transaction, error)
	ListTransactions(ctx context.Context, ownerID int64) ([]*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, id, ownerID int64) error
	SumByKind(ctx context.Context, ownerID int64) (Summary, error)
}

// CategoryRepository answers whether a referenced category exists.
type CategoryRepository interface {
	CategoryExists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo       Repository
	categories CategoryRepository
}

func NewService(repo Repository, categories CategoryRepository) *Service {
	return &Service{repo: repo, categories: categories}
}

// Params carries the caller-supplied fields for Create and Update. The owner
// is never part of it; ownership always comes from the authenticated user.
type Params struct {
	Kind        Kind
	Description string
	Amount      int64
	Date        time.Time
	CategoryID  int64
}

func (p Params) validate() error {
	// A zero amount counts as missing, matching the API's historical
	// required-field semantics.
	if p.Description == "" || p.Amount == 0 || p.Date.IsZero() || p.CategoryID == 0 || p.Kind == "" {
		return ErrMissingFields
	}

	if !p.Kind.Valid() {
		return ErrInvalidKind
	}

	return nil
}

func (s *Service) checkCategory(ctx context.Context, id int64) error {
	exists, err := s.categories.CategoryExists(ctx, id)
	if err != nil {
		return err
	}

	if !exists {
		return ErrCategoryNotFound
	}

	return nil
}

// Create validates params, pins ownership to ownerID and inserts the
// transaction. The created row is re-fetched by its store-assigned id so the
// result carries the category label.
func (s *Service) Create(ctx context.Context, ownerID int64, params Params) (*Transaction, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, params.CategoryID); err != nil {
		return nil, err
	}

	tx := &Transaction{
		Kind:        params.Kind,
		Description: params.Description,
		Amount:      params.Amount,
		Date:        params.Date,
		CategoryID:  params.CategoryID,
		OwnerID:     ownerID,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	created, err := s.repo.GetTransaction(ctx, tx.ID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("fetching created transaction: %w", err)
	}

	return created, nil
}

// List returns every transaction owned by ownerID, with category labels.
func (s *Service) List(ctx context.Context, ownerID int64) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, ownerID)
}

// Get returns the transaction only if it belongs to ownerID; otherwise
// ErrNotFound.
func (s *Service) Get(ctx context.Context, id, ownerID int64) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id, ownerID)
}

// Update replaces every mutable field of the transaction. Ownership is
// re-pinned to ownerID. The existence and ownership checks run atomically
// with the write in the store.
func (s *Service) Update(ctx context.Context, id, ownerID int64, params Params) error {
	if err := params.validate(); err != nil {
		return err
	}

	if err := s.checkCategory(ctx, params.CategoryID); err != nil {
		return err
	}

	return s.repo.UpdateTransaction(ctx, &Transaction{
		ID:          id,
		Kind:        params.Kind,
		Description: params.Description,
		Amount:      params.Amount,
		Date:        params.Date,
		CategoryID:  params.CategoryID,
		OwnerID:     ownerID,
	})
}

// Delete permanently removes the transaction if it belongs to ownerID.
func (s *Service) Delete(ctx context.Context, id, ownerID int64) error {
	return s.repo.DeleteTransaction(ctx, id, ownerID)
}

// Summary returns the caller's income and expense totals.
func (s *Service) Summary(ctx context.Context, ownerID int64) (Summary, error) {
	return s.repo.SumByKind(ctx, ownerID)
}
