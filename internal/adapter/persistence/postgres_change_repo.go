package persistence

import (
	"context"
	"database/sql"

	"github.com/savethegov/govbudget/internal/domain"
	"github.com/savethegov/govbudget/internal/ports"
)

// PostgresChangeRequestRepository implements ChangeRequestRepository using PostgreSQL
type PostgresChangeRequestRepository struct {
	db *sql.DB
}

// NewPostgresChangeRequestRepository creates a new PostgreSQL change request repository
func NewPostgresChangeRequestRepository(db *sql.DB) *PostgresChangeRequestRepository {
	return &PostgresChangeRequestRepository{db: db}
}

var _ ports.ChangeRequestRepository = (*PostgresChangeRequestRepository)(nil)

// Save upserts the change by id. Saving nil is a no-op.
func (r *PostgresChangeRequestRepository) Save(ctx context.Context, change *domain.PendingChange) error {
	if change == nil {
		return nil
	}

	query := `
		INSERT INTO pending_changes (id, item_id, item_year, item_name, requester_name, requester_id, old_value, new_value, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			item_id = EXCLUDED.item_id,
			item_year = EXCLUDED.item_year,
			item_name = EXCLUDED.item_name,
			requester_name = EXCLUDED.requester_name,
			requester_id = EXCLUDED.requester_id,
			old_value = EXCLUDED.old_value,
			new_value = EXCLUDED.new_value,
			status = EXCLUDED.status,
			submitted_at = EXCLUDED.submitted_at
	`

	_, err := r.db.ExecContext(ctx, query,
		change.ID,
		change.ItemID,
		change.ItemYear,
		change.ItemName,
		change.RequesterName,
		change.RequesterID,
		change.OldValue,
		change.NewValue,
		string(change.Status),
		change.SubmittedAt,
	)
	if err != nil {
		return domain.NewStorageError("save pending change", err)
	}
	return nil
}

// Load returns every stored entry in insertion order
func (r *PostgresChangeRequestRepository) Load(ctx context.Context) ([]*domain.PendingChange, error) {
	query := `
		SELECT id, item_id, item_year, item_name, requester_name, requester_id, old_value, new_value, status, submitted_at
		FROM pending_changes
		ORDER BY seq
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.NewStorageError("load pending changes", err)
	}
	defer rows.Close()

	var changes []*domain.PendingChange
	for rows.Next() {
		change, err := scanChange(rows)
		if err != nil {
			return nil, domain.NewStorageError("scan pending change", err)
		}
		changes = append(changes, change)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("load pending changes", err)
	}
	return changes, nil
}

// FindByID retrieves the change with the given id
func (r *PostgresChangeRequestRepository) FindByID(ctx context.Context, id int) (*domain.PendingChange, error) {
	query := `
		SELECT id, item_id, item_year, item_name, requester_name, requester_id, old_value, new_value, status, submitted_at
		FROM pending_changes
		WHERE id = $1
	`

	change, err := scanChange(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrChangeNotFound
		}
		return nil, domain.NewStorageError("find pending change", err)
	}
	return change, nil
}

// ExistsByID reports whether a change with the given id is stored
func (r *PostgresChangeRequestRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pending_changes WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, domain.NewStorageError("check pending change", err)
	}
	return exists, nil
}

// Delete removes the entry with a matching id, a no-op when absent or nil
func (r *PostgresChangeRequestRepository) Delete(ctx context.Context, change *domain.PendingChange) error {
	if change == nil {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM pending_changes WHERE id = $1`, change.ID)
	if err != nil {
		return domain.NewStorageError("delete pending change", err)
	}
	return nil
}

// MaxID returns the highest stored id, 0 for an empty store
func (r *PostgresChangeRequestRepository) MaxID(ctx context.Context) (int, error) {
	var max int
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM pending_changes`).Scan(&max)
	if err != nil {
		return 0, domain.NewStorageError("max pending change id", err)
	}
	return max, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChange(row rowScanner) (*domain.PendingChange, error) {
	var change domain.PendingChange
	var status string
	err := row.Scan(
		&change.ID,
		&change.ItemID,
		&change.ItemYear,
		&change.ItemName,
		&change.RequesterName,
		&change.RequesterID,
		&change.OldValue,
		&change.NewValue,
		&status,
		&change.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	change.Status = domain.Status(status)
	return &change, nil
}
