package persistence

import (
	"context"
	"database/sql"

	"github.com/savethegov/govbudget/internal/domain"
	"github.com/savethegov/govbudget/internal/ports"
)

// PostgresChangeLogRepository implements the append-only audit log using PostgreSQL
type PostgresChangeLogRepository struct {
	db *sql.DB
}

// NewPostgresChangeLogRepository creates a new PostgreSQL change log repository
func NewPostgresChangeLogRepository(db *sql.DB) *PostgresChangeLogRepository {
	return &PostgresChangeLogRepository{db: db}
}

var _ ports.ChangeLogRepository = (*PostgresChangeLogRepository)(nil)

// Append stores the entry; the id comes from the table's sequence
func (r *PostgresChangeLogRepository) Append(ctx context.Context, entry *domain.ChangeLogEntry) error {
	if entry == nil {
		return nil
	}

	query := `
		INSERT INTO change_log (item_id, old_value, new_value, ts, actor_name, actor_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		entry.ItemID, entry.OldValue, entry.NewValue, entry.Timestamp, entry.ActorName, entry.ActorID,
	).Scan(&entry.ID)
	if err != nil {
		return domain.NewStorageError("append change log entry", err)
	}
	return nil
}

// List returns every entry in append order
func (r *PostgresChangeLogRepository) List(ctx context.Context) ([]*domain.ChangeLogEntry, error) {
	query := `
		SELECT id, item_id, old_value, new_value, ts, actor_name, actor_id
		FROM change_log
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.NewStorageError("load change log", err)
	}
	defer rows.Close()

	var entries []*domain.ChangeLogEntry
	for rows.Next() {
		var entry domain.ChangeLogEntry
		err := rows.Scan(
			&entry.ID,
			&entry.ItemID,
			&entry.OldValue,
			&entry.NewValue,
			&entry.Timestamp,
			&entry.ActorName,
			&entry.ActorID,
		)
		if err != nil {
			return nil, domain.NewStorageError("scan change log entry", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("load change log", err)
	}
	return entries, nil
}
