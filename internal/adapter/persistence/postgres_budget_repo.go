package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/savethegov/govbudget/internal/domain"
	"github.com/savethegov/govbudget/internal/ports"
)

// PostgresBudgetRepository implements BudgetRepository using PostgreSQL
type PostgresBudgetRepository struct {
	db *sql.DB
}

// NewPostgresBudgetRepository creates a new PostgreSQL budget repository
func NewPostgresBudgetRepository(db *sql.DB) *PostgresBudgetRepository {
	return &PostgresBudgetRepository{db: db}
}

var _ ports.BudgetRepository = (*PostgresBudgetRepository)(nil)

// Save upserts the item by (id, year). Saving nil is a no-op.
func (r *PostgresBudgetRepository) Save(ctx context.Context, item *domain.BudgetItem) error {
	if item == nil {
		return nil
	}

	domainsJSON, err := json.Marshal(item.Domains)
	if err != nil {
		return fmt.Errorf("failed to marshal domains: %w", err)
	}

	query := `
		INSERT INTO budget_items (id, year, name, value, is_revenue, domains)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id, year) DO UPDATE SET
			name = EXCLUDED.name,
			value = EXCLUDED.value,
			is_revenue = EXCLUDED.is_revenue,
			domains = EXCLUDED.domains
	`

	_, err = r.db.ExecContext(ctx, query,
		item.ID, item.Year, item.Name, item.Value, item.IsRevenue, domainsJSON)
	if err != nil {
		return domain.NewStorageError("save budget item", err)
	}
	return nil
}

// Load returns every budget item in insertion order
func (r *PostgresBudgetRepository) Load(ctx context.Context) ([]*domain.BudgetItem, error) {
	query := `
		SELECT id, year, name, value, is_revenue, domains
		FROM budget_items
		ORDER BY seq
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.NewStorageError("load budget items", err)
	}
	defer rows.Close()

	var items []*domain.BudgetItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, domain.NewStorageError("scan budget item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("load budget items", err)
	}
	return items, nil
}

// FindItemByID retrieves the item with the given identity
func (r *PostgresBudgetRepository) FindItemByID(ctx context.Context, id, year int) (*domain.BudgetItem, error) {
	query := `
		SELECT id, year, name, value, is_revenue, domains
		FROM budget_items
		WHERE id = $1 AND year = $2
	`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id, year))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrItemNotFound
		}
		return nil, domain.NewStorageError("find budget item", err)
	}
	return item, nil
}

// ExistsByName reports whether an item with the name exists in the year
func (r *PostgresBudgetRepository) ExistsByName(ctx context.Context, name string, year int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM budget_items WHERE LOWER(name) = LOWER($1) AND year = $2)`,
		name, year).Scan(&exists)
	if err != nil {
		return false, domain.NewStorageError("check budget item name", err)
	}
	return exists, nil
}

// Delete removes the item with a matching identity, a no-op when absent
func (r *PostgresBudgetRepository) Delete(ctx context.Context, item *domain.BudgetItem) error {
	if item == nil {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM budget_items WHERE id = $1 AND year = $2`, item.ID, item.Year)
	if err != nil {
		return domain.NewStorageError("delete budget item", err)
	}
	return nil
}

func scanItem(row rowScanner) (*domain.BudgetItem, error) {
	var item domain.BudgetItem
	var domainsJSON []byte
	err := row.Scan(&item.ID, &item.Year, &item.Name, &item.Value, &item.IsRevenue, &domainsJSON)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(domainsJSON, &item.Domains); err != nil {
		return nil, fmt.Errorf("failed to unmarshal domains: %w", err)
	}
	return &item, nil
}
