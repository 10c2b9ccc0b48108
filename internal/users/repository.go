package users

import (
	"context"

	"github.com/photohub/photohub/internal/models"
)

// Repository defines persistence operations for credential records.
type Repository interface {
	// FindByEmail returns the record for email, or (nil, nil) when absent.
	// Returns ErrStoreUnavailable when the backing store does not exist.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Append adds a record. Uniqueness is checked by the caller.
	Append(ctx context.Context, u *models.User) error
	// All returns every stored record in insertion order.
	All(ctx context.Context) ([]models.User, error)
}
