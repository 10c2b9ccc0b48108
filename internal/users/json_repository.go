package users

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/photohub/photohub/internal/models"
)

// JSONRepository implements Repository on top of a single flat JSON file
// holding an array of records. Every Append is a full read-modify-write of
// the file; a mutex serializes writers so concurrent registrations cannot
// lose records. The on-disk format is a plain JSON array, so files written
// by earlier deployments load unchanged.
type JSONRepository struct {
	mu   sync.Mutex
	path string
}

// NewJSONRepository creates a repository backed by the file at path. The file
// is not created until the first Append.
func NewJSONRepository(path string) *JSONRepository {
	return &JSONRepository{path: path}
}

// load reads and parses the whole file. Caller must hold r.mu.
func (r *JSONRepository) load() ([]models.User, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrStoreUnavailable
		}
		return nil, fmt.Errorf("read user store: %w", err)
	}
	var list []models.User
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("parse user store: %w", err)
	}
	return list, nil
}

func (r *JSONRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Email == email {
			u := list[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *JSONRepository) Append(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list, err := r.load()
	if err != nil {
		// a missing file just means an empty store; Append creates it
		if err != ErrStoreUnavailable {
			return err
		}
		list = nil
	}
	list = append(list, *u)
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user store: %w", err)
	}
	if err := os.WriteFile(r.path, b, 0o644); err != nil {
		return fmt.Errorf("write user store: %w", err)
	}
	return nil
}

func (r *JSONRepository) All(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}
