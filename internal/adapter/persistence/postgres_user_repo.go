package persistence

import (
	"context"
	"database/sql"

	"github.com/savethegov/govbudget/internal/domain"
	"github.com/savethegov/govbudget/internal/ports"
)

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db *sql.DB
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var _ ports.UserRepository = (*PostgresUserRepository)(nil)

// Save upserts the actor by id. Saving nil is a no-op.
func (r *PostgresUserRepository) Save(ctx context.Context, actor *domain.Actor) error {
	if actor == nil {
		return nil
	}

	query := `
		INSERT INTO users (id, username, full_name, role, domain, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			full_name = EXCLUDED.full_name,
			role = EXCLUDED.role,
			domain = EXCLUDED.domain,
			password_hash = EXCLUDED.password_hash
	`

	_, err := r.db.ExecContext(ctx, query,
		actor.ID,
		actor.Username,
		actor.FullName,
		string(actor.Role),
		string(actor.Domain),
		actor.PasswordHash,
		actor.CreatedAt,
	)
	if err != nil {
		return domain.NewStorageError("save user", err)
	}
	return nil
}

// FindByUsername retrieves the actor with the given username
func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*domain.Actor, error) {
	query := `
		SELECT id, username, full_name, role, domain, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	actor, err := scanActor(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.NewStorageError("find user", err)
	}
	return actor, nil
}

// Load returns every stored actor
func (r *PostgresUserRepository) Load(ctx context.Context) ([]*domain.Actor, error) {
	query := `
		SELECT id, username, full_name, role, domain, password_hash, created_at
		FROM users
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.NewStorageError("load users", err)
	}
	defer rows.Close()

	var actors []*domain.Actor
	for rows.Next() {
		actor, err := scanActor(rows)
		if err != nil {
			return nil, domain.NewStorageError("scan user", err)
		}
		actors = append(actors, actor)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("load users", err)
	}
	return actors, nil
}

func scanActor(row rowScanner) (*domain.Actor, error) {
	var actor domain.Actor
	var role, memberDomain string
	err := row.Scan(
		&actor.ID,
		&actor.Username,
		&actor.FullName,
		&role,
		&memberDomain,
		&actor.PasswordHash,
		&actor.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	actor.Role = domain.Role(role)
	actor.Domain = domain.Domain(memberDomain)
	return &actor, nil
}
