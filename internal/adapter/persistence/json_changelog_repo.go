package persistence

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/savethegov/govbudget/internal/domain"
	"github.com/savethegov/govbudget/internal/ports"
)

// JSONChangeLogRepository implements the append-only audit log on a JSON
// array file. Entries are never updated or removed.
type JSONChangeLogRepository struct {
	path string
	mu   sync.Mutex
}

// NewJSONChangeLogRepository creates a file-backed change log under the given
// data directory
func NewJSONChangeLogRepository(dataDir string) *JSONChangeLogRepository {
	return &JSONChangeLogRepository{path: filepath.Join(dataDir, changeLogFile)}
}

var _ ports.ChangeLogRepository = (*JSONChangeLogRepository)(nil)

// Append stores the entry and assigns the next sequential id
func (r *JSONChangeLogRepository) Append(ctx context.Context, entry *domain.ChangeLogEntry) error {
	if entry == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.readAll()
	if err != nil {
		return domain.NewStorageError("load change log", err)
	}
	entry.ID = nextEntryID(entries)
	entries = append(entries, entry.Clone())

	if err := writeJSONFile(r.path, entries); err != nil {
		return domain.NewStorageError("append change log entry", err)
	}
	return nil
}

// List returns every entry in append order
func (r *JSONChangeLogRepository) List(ctx context.Context) ([]*domain.ChangeLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.readAll()
	if err != nil {
		return nil, domain.NewStorageError("load change log", err)
	}
	return entries, nil
}

func (r *JSONChangeLogRepository) readAll() ([]*domain.ChangeLogEntry, error) {
	var entries []*domain.ChangeLogEntry
	if err := readJSONFile(r.path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func nextEntryID(entries []*domain.ChangeLogEntry) int {
	max := 0
	for _, e := range entries {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}
