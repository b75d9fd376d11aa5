package persistence

import (
	"context"

	"github.com/savethegov/govbudget/internal/domain"
	"github.com/savethegov/govbudget/internal/ports"
)

// JSONApprovalStore applies the three effects of an approval across the
// file-backed stores as one unit. It takes all three store locks, writes the
// item and audit files first, and the change file last; if a later write
// fails, the earlier files are restored from the snapshots read under the
// locks, so the stored budget and the stored change never disagree about
// whether a change took effect.
type JSONApprovalStore struct {
	changes   *JSONChangeRequestRepository
	budget    *JSONBudgetRepository
	changeLog *JSONChangeLogRepository
}

// NewJSONApprovalStore creates an approval store over the three file repos
func NewJSONApprovalStore(changes *JSONChangeRequestRepository, budget *JSONBudgetRepository, changeLog *JSONChangeLogRepository) *JSONApprovalStore {
	return &JSONApprovalStore{changes: changes, budget: budget, changeLog: changeLog}
}

var _ ports.ApprovalStore = (*JSONApprovalStore)(nil)

// ApplyApproval persists the change's terminal status, the item's new value,
// and the audit entry together
func (s *JSONApprovalStore) ApplyApproval(ctx context.Context, change *domain.PendingChange, item *domain.BudgetItem, entry *domain.ChangeLogEntry) error {
	if change == nil || item == nil || entry == nil {
		return nil
	}

	// fixed lock order: changes, budget, change log
	s.changes.mu.Lock()
	defer s.changes.mu.Unlock()
	s.budget.mu.Lock()
	defer s.budget.mu.Unlock()
	s.changeLog.mu.Lock()
	defer s.changeLog.mu.Unlock()

	prevChanges, err := s.changes.readAll()
	if err != nil {
		return domain.NewStorageError("load pending changes", err)
	}
	prevItems, err := s.budget.readAll()
	if err != nil {
		return domain.NewStorageError("load budget items", err)
	}
	prevEntries, err := s.changeLog.readAll()
	if err != nil {
		return domain.NewStorageError("load change log", err)
	}

	entry.ID = nextEntryID(prevEntries)

	// build the updated collections without touching the snapshots
	newItems := upsertItem(append([]*domain.BudgetItem(nil), prevItems...), item)
	newEntries := append(append([]*domain.ChangeLogEntry(nil), prevEntries...), entry.Clone())
	newChanges := upsertChange(append([]*domain.PendingChange(nil), prevChanges...), change)

	if err := writeJSONFile(s.budget.path, newItems); err != nil {
		return domain.NewStorageError("apply approval: save budget item", err)
	}
	if err := writeJSONFile(s.changeLog.path, newEntries); err != nil {
		s.restore(s.budget.path, prevItems)
		return domain.NewStorageError("apply approval: append change log entry", err)
	}
	if err := writeJSONFile(s.changes.path, newChanges); err != nil {
		s.restore(s.budget.path, prevItems)
		s.restore(s.changeLog.path, prevEntries)
		return domain.NewStorageError("apply approval: save pending change", err)
	}
	return nil
}

// restore rewrites a file from its pre-approval snapshot. A failed restore
// leaves the original error to surface; there is nothing better to do here.
func (s *JSONApprovalStore) restore(path string, snapshot interface{}) {
	_ = writeJSONFile(path, snapshot)
}
