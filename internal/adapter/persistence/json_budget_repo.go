package persistence

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/savethegov/govbudget/internal/domain"
	"github.com/savethegov/govbudget/internal/ports"
)

// JSONBudgetRepository implements BudgetRepository on a JSON array file
type JSONBudgetRepository struct {
	path string
	mu   sync.Mutex
}

// NewJSONBudgetRepository creates a file-backed budget item store under the
// given data directory
func NewJSONBudgetRepository(dataDir string) *JSONBudgetRepository {
	return &JSONBudgetRepository{path: filepath.Join(dataDir, budgetItemsFile)}
}

var _ ports.BudgetRepository = (*JSONBudgetRepository)(nil)

// Save upserts the item by (id, year). Saving nil is a no-op.
func (r *JSONBudgetRepository) Save(ctx context.Context, item *domain.BudgetItem) error {
	if item == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.readAll()
	if err != nil {
		return domain.NewStorageError("load budget items", err)
	}
	items = upsertItem(items, item)

	if err := writeJSONFile(r.path, items); err != nil {
		return domain.NewStorageError("save budget item", err)
	}
	return nil
}

// Load returns every budget item in insertion order as independent copies
func (r *JSONBudgetRepository) Load(ctx context.Context) ([]*domain.BudgetItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.readAll()
	if err != nil {
		return nil, domain.NewStorageError("load budget items", err)
	}
	return items, nil
}

// FindItemByID retrieves the item with the given identity
func (r *JSONBudgetRepository) FindItemByID(ctx context.Context, id, year int) (*domain.BudgetItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.readAll()
	if err != nil {
		return nil, domain.NewStorageError("load budget items", err)
	}
	for _, item := range items {
		if item.ID == id && item.Year == year {
			return item, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

// ExistsByName reports whether an item with the name exists in the year
func (r *JSONBudgetRepository) ExistsByName(ctx context.Context, name string, year int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.readAll()
	if err != nil {
		return false, domain.NewStorageError("load budget items", err)
	}
	for _, item := range items {
		if item.Year == year && strings.EqualFold(item.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the item with a matching identity, a no-op when absent
func (r *JSONBudgetRepository) Delete(ctx context.Context, item *domain.BudgetItem) error {
	if item == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.readAll()
	if err != nil {
		return domain.NewStorageError("load budget items", err)
	}
	for i, existing := range items {
		if existing.ID == item.ID && existing.Year == item.Year {
			items = append(items[:i], items[i+1:]...)
			if err := writeJSONFile(r.path, items); err != nil {
				return domain.NewStorageError("delete budget item", err)
			}
			return nil
		}
	}
	return nil
}

func (r *JSONBudgetRepository) readAll() ([]*domain.BudgetItem, error) {
	var items []*domain.BudgetItem
	if err := readJSONFile(r.path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func upsertItem(items []*domain.BudgetItem, item *domain.BudgetItem) []*domain.BudgetItem {
	for i, existing := range items {
		if existing.ID == item.ID && existing.Year == item.Year {
			items[i] = item.Clone()
			return items
		}
	}
	return append(items, item.Clone())
}
