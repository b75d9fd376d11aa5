package persistence

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/savethegov/govbudget/internal/domain"
	"github.com/savethegov/govbudget/internal/ports"
)

// JSONUserRepository implements UserRepository on a JSON array file
type JSONUserRepository struct {
	path string
	mu   sync.Mutex
}

// NewJSONUserRepository creates a file-backed account store under the given
// data directory
func NewJSONUserRepository(dataDir string) *JSONUserRepository {
	return &JSONUserRepository{path: filepath.Join(dataDir, usersFile)}
}

var _ ports.UserRepository = (*JSONUserRepository)(nil)

// Save upserts the actor by id. Saving nil is a no-op.
func (r *JSONUserRepository) Save(ctx context.Context, actor *domain.Actor) error {
	if actor == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.readAll()
	if err != nil {
		return domain.NewStorageError("load users", err)
	}
	replaced := false
	for i, existing := range users {
		if existing.ID == actor.ID {
			users[i] = actor.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, actor.Clone())
	}

	if err := writeJSONFile(r.path, users); err != nil {
		return domain.NewStorageError("save user", err)
	}
	return nil
}

// FindByUsername retrieves the actor with the given username
func (r *JSONUserRepository) FindByUsername(ctx context.Context, username string) (*domain.Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.readAll()
	if err != nil {
		return nil, domain.NewStorageError("load users", err)
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Load returns every stored actor
func (r *JSONUserRepository) Load(ctx context.Context) ([]*domain.Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.readAll()
	if err != nil {
		return nil, domain.NewStorageError("load users", err)
	}
	return users, nil
}

func (r *JSONUserRepository) readAll() ([]*domain.Actor, error) {
	var users []*domain.Actor
	if err := readJSONFile(r.path, &users); err != nil {
		return nil, err
	}
	return users, nil
}
