package users

import (
	"context"

	"github.com/photohub/photohub/internal/models"
)

// PlaceholderToken is the constant returned on successful login. It carries
// no session semantics, no expiry and no signature; no route verifies it.
const PlaceholderToken = "test-token"

// Service encapsulates credential business logic over a Repository.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Register appends a new record after checking email uniqueness. A missing
// backing file counts as an empty store; the first Append creates it.
// Field presence is the caller's concern.
func (s *Service) Register(ctx context.Context, email, password string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && err != ErrStoreUnavailable {
		return err
	}
	if existing != nil {
		return ErrAlreadyExists
	}
	return s.repo.Append(ctx, &models.User{Email: email, Password: password})
}

// Authenticate matches email and password exactly (no hashing, no
// normalization) and returns the placeholder token. A missing store is
// surfaced as ErrStoreUnavailable, unlike Register.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil || u.Password != password {
		return "", ErrInvalidCredentials
	}
	return PlaceholderToken, nil
}
