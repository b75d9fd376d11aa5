package persistence

import (
	"context"
	"database/sql"

	"github.com/savethegov/govbudget/internal/domain"
	"github.com/savethegov/govbudget/internal/ports"
)

// PostgresApprovalStore applies an approval inside a single transaction so
// the item update, the log entry and the change status land together or not
// at all.
type PostgresApprovalStore struct {
	db *sql.DB
}

// NewPostgresApprovalStore creates a new transactional approval store
func NewPostgresApprovalStore(db *sql.DB) *PostgresApprovalStore {
	return &PostgresApprovalStore{db: db}
}

var _ ports.ApprovalStore = (*PostgresApprovalStore)(nil)

// ApplyApproval persists the three effects of an approval atomically
func (s *PostgresApprovalStore) ApplyApproval(ctx context.Context, change *domain.PendingChange, item *domain.BudgetItem, entry *domain.ChangeLogEntry) error {
	if change == nil || item == nil || entry == nil {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStorageError("begin approval", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE budget_items SET value = $1 WHERE id = $2 AND year = $3`,
		item.Value, item.ID, item.Year)
	if err != nil {
		return domain.NewStorageError("apply item value", err)
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO change_log (item_id, old_value, new_value, ts, actor_name, actor_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		entry.ItemID, entry.OldValue, entry.NewValue, entry.Timestamp, entry.ActorName, entry.ActorID,
	).Scan(&entry.ID)
	if err != nil {
		return domain.NewStorageError("append change log entry", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE pending_changes SET status = $1, new_value = $2 WHERE id = $3`,
		string(change.Status), change.NewValue, change.ID)
	if err != nil {
		return domain.NewStorageError("update pending change", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStorageError("commit approval", err)
	}
	return nil
}
