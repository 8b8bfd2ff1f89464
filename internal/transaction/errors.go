package transaction

import "errors"

var (
	// ErrNotFound is returned when a transaction does not exist or is not
	// visible to the requesting user.
	ErrNotFound = errors.New("transaction not found")

	// ErrForbidden is returned when the transaction exists but belongs to
	// another user.
	ErrForbidden = errors.New("transaction belongs to another user")

	// ErrCategoryNotFound is returned when the referenced category does not
	// exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrMissingFields is returned when a required input field is absent.
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidKind is returned when the kind is not "entrada" or "saida".
	ErrInvalidKind = errors.New("invalid transaction kind")
)
