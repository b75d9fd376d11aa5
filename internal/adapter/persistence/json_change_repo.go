package persistence

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/savethegov/govbudget/internal/domain"
	"github.com/savethegov/govbudget/internal/ports"
)

// JSONChangeRequestRepository implements ChangeRequestRepository on a single
// JSON array file. One mutex serializes all reads and writes so concurrent
// saves never race on the read-modify-write of the underlying collection.
type JSONChangeRequestRepository struct {
	path string
	mu   sync.Mutex
}

// NewJSONChangeRequestRepository creates a file-backed change request store
// under the given data directory
func NewJSONChangeRequestRepository(dataDir string) *JSONChangeRequestRepository {
	return &JSONChangeRequestRepository{path: filepath.Join(dataDir, pendingChangesFile)}
}

var _ ports.ChangeRequestRepository = (*JSONChangeRequestRepository)(nil)

// Save upserts the change by id. Saving nil is a no-op.
func (r *JSONChangeRequestRepository) Save(ctx context.Context, change *domain.PendingChange) error {
	if change == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	changes, err := r.readAll()
	if err != nil {
		return domain.NewStorageError("load pending changes", err)
	}
	changes = upsertChange(changes, change)

	if err := writeJSONFile(r.path, changes); err != nil {
		return domain.NewStorageError("save pending change", err)
	}
	return nil
}

// Load returns every stored entry in insertion order. Entries are decoded
// fresh on every call, so callers always receive independent copies.
func (r *JSONChangeRequestRepository) Load(ctx context.Context) ([]*domain.PendingChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changes, err := r.readAll()
	if err != nil {
		return nil, domain.NewStorageError("load pending changes", err)
	}
	return changes, nil
}

// FindByID retrieves the change with the given id
func (r *JSONChangeRequestRepository) FindByID(ctx context.Context, id int) (*domain.PendingChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changes, err := r.readAll()
	if err != nil {
		return nil, domain.NewStorageError("load pending changes", err)
	}
	for _, c := range changes {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrChangeNotFound
}

// ExistsByID reports whether a change with the given id is stored
func (r *JSONChangeRequestRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	if id <= 0 {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	changes, err := r.readAll()
	if err != nil {
		return false, domain.NewStorageError("load pending changes", err)
	}
	for _, c := range changes {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the entry with a matching id, a no-op when absent or nil
func (r *JSONChangeRequestRepository) Delete(ctx context.Context, change *domain.PendingChange) error {
	if change == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	changes, err := r.readAll()
	if err != nil {
		return domain.NewStorageError("load pending changes", err)
	}
	for i, c := range changes {
		if c.ID == change.ID {
			changes = append(changes[:i], changes[i+1:]...)
			if err := writeJSONFile(r.path, changes); err != nil {
				return domain.NewStorageError("delete pending change", err)
			}
			return nil
		}
	}
	return nil
}

// MaxID returns the highest stored id, 0 for an empty store
func (r *JSONChangeRequestRepository) MaxID(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changes, err := r.readAll()
	if err != nil {
		return 0, domain.NewStorageError("load pending changes", err)
	}
	max := 0
	for _, c := range changes {
		if c.ID > max {
			max = c.ID
		}
	}
	return max, nil
}

// readAll decodes the backing file; callers must hold r.mu
func (r *JSONChangeRequestRepository) readAll() ([]*domain.PendingChange, error) {
	var changes []*domain.PendingChange
	if err := readJSONFile(r.path, &changes); err != nil {
		return nil, err
	}
	return changes, nil
}

func upsertChange(changes []*domain.PendingChange, change *domain.PendingChange) []*domain.PendingChange {
	for i, existing := range changes {
		if existing.ID == change.ID {
			changes[i] = change.Clone()
			return changes
		}
	}
	return append(changes, change.Clone())
}
