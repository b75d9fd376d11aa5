package ports

import (
	"context"

	"github.com/savethegov/govbudget/internal/domain"
)

// ChangeRequestRepository defines the interface for pending change persistence.
// Implementations own the durable copy; every value they return is an
// independent copy the caller may mutate freely.
type ChangeRequestRepository interface {
	// Save upserts the change by id. Saving nil is a no-op, not an error.
	Save(ctx context.Context, change *domain.PendingChange) error

	// Load returns every stored entry, all statuses, in insertion order
	Load(ctx context.Context) ([]*domain.PendingChange, error)

	// FindByID retrieves the change with the given id
	FindByID(ctx context.Context, id int) (*domain.PendingChange, error)

	// ExistsByID reports whether a change with the given id is stored
	ExistsByID(ctx context.Context, id int) (bool, error)

	// Delete removes the entry with a matching id; a no-op if absent or nil
	Delete(ctx context.Context, change *domain.PendingChange) error

	// MaxID returns the highest stored id, or 0 for an empty store.
	// Used to seed the id allocator on startup.
	MaxID(ctx context.Context) (int, error)
}

// BudgetRepository defines the interface for budget item persistence
type BudgetRepository interface {
	// Save upserts the item by (id, year). Saving nil is a no-op.
	Save(ctx context.Context, item *domain.BudgetItem) error

	// Load returns every budget item in insertion order
	Load(ctx context.Context) ([]*domain.BudgetItem, error)

	// FindItemByID retrieves the item with the given identity
	FindItemByID(ctx context.Context, id, year int) (*domain.BudgetItem, error)

	// ExistsByName reports whether an item with the name exists in the year
	ExistsByName(ctx context.Context, name string, year int) (bool, error)

	// Delete removes the item with a matching identity; a no-op if absent
	Delete(ctx context.Context, item *domain.BudgetItem) error
}

// ChangeLogRepository defines the interface for the append-only audit log
type ChangeLogRepository interface {
	// Append stores the entry and assigns its id
	Append(ctx context.Context, entry *domain.ChangeLogEntry) error

	// List returns every entry in append order
	List(ctx context.Context) ([]*domain.ChangeLogEntry, error)
}

// UserRepository defines the interface for account persistence
type UserRepository interface {
	// Save upserts the actor by id. Saving nil is a no-op.
	Save(ctx context.Context, actor *domain.Actor) error

	// FindByUsername retrieves the actor with the given username
	FindByUsername(ctx context.Context, username string) (*domain.Actor, error)

	// Load returns every stored actor
	Load(ctx context.Context) ([]*domain.Actor, error)
}

// ApprovalStore persists the three effects of an approval as one unit: the
// change's status transition, the item's new value, and the audit entry.
// Either all become durable or none do.
type ApprovalStore interface {
	ApplyApproval(ctx context.Context, change *domain.PendingChange, item *domain.BudgetItem, entry *domain.ChangeLogEntry) error
}
