package category

import "errors"

// ErrNotFound is returned when a category does not exist.
var ErrNotFound = errors.New("category not found")

// Category is a label grouping transactions. Categories are reference data:
// created externally, never mutated here.
type Category struct {
	ID    int64
	Label string
}
