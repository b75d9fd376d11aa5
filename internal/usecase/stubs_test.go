package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/savethegov/govbudget/internal/domain"
	"github.com/savethegov/govbudget/internal/ports"
)

// memStore is an in-memory implementation of every repository port, used to
// exercise the usecases without a backing file or database.
type memStore struct {
	mu      sync.Mutex
	changes []*domain.PendingChange
	items   []*domain.BudgetItem
	entries []*domain.ChangeLogEntry
	users   []*domain.Actor

	saveErr error // injected failure for Save/ApplyApproval
}

func newMemStore(items ...*domain.BudgetItem) *memStore {
	s := &memStore{}
	for _, item := range items {
		s.items = append(s.items, item.Clone())
	}
	return s
}

func (s *memStore) Save(ctx context.Context, change *domain.PendingChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	if change == nil {
		return nil
	}
	for i, existing := range s.changes {
		if existing.ID == change.ID {
			s.changes[i] = change.Clone()
			return nil
		}
	}
	s.changes = append(s.changes, change.Clone())
	return nil
}

func (s *memStore) Load(ctx context.Context) ([]*domain.PendingChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.PendingChange, len(s.changes))
	for i, c := range s.changes {
		out[i] = c.Clone()
	}
	return out, nil
}

func (s *memStore) FindByID(ctx context.Context, id int) (*domain.PendingChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.changes {
		if c.ID == id {
			return c.Clone(), nil
		}
	}
	return nil, domain.ErrChangeNotFound
}

func (s *memStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.changes {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) Delete(ctx context.Context, change *domain.PendingChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if change == nil {
		return nil
	}
	for i, c := range s.changes {
		if c.ID == change.ID {
			s.changes = append(s.changes[:i], s.changes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *memStore) MaxID(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max := 0
	for _, c := range s.changes {
		if c.ID > max {
			max = c.ID
		}
	}
	return max, nil
}

// BudgetRepository

func (s *memStore) SaveItem(item *domain.BudgetItem) {
	s.items = append(s.items, item.Clone())
}

func (s *memStore) LoadItems(ctx context.Context) ([]*domain.BudgetItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.BudgetItem, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}
	return out, nil
}

func (s *memStore) FindItemByID(ctx context.Context, id, year int) (*domain.BudgetItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == id && item.Year == year {
			return item.Clone(), nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (s *memStore) ExistsByName(ctx context.Context, name string, year int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.Name == name && item.Year == year {
			return true, nil
		}
	}
	return false, nil
}

// ChangeLogRepository

func (s *memStore) Append(ctx context.Context, entry *domain.ChangeLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = len(s.entries) + 1
	s.entries = append(s.entries, entry.Clone())
	return nil
}

func (s *memStore) List(ctx context.Context) ([]*domain.ChangeLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.ChangeLogEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out, nil
}

// ApprovalStore

func (s *memStore) ApplyApproval(ctx context.Context, change *domain.PendingChange, item *domain.BudgetItem, entry *domain.ChangeLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	for i, existing := range s.items {
		if existing.ID == item.ID && existing.Year == item.Year {
			s.items[i] = item.Clone()
		}
	}
	entry.ID = len(s.entries) + 1
	s.entries = append(s.entries, entry.Clone())
	for i, existing := range s.changes {
		if existing.ID == change.ID {
			s.changes[i] = change.Clone()
			return nil
		}
	}
	s.changes = append(s.changes, change.Clone())
	return nil
}

// budgetPort adapts memStore to ports.BudgetRepository, whose Save/Load names
// collide with the change-request port on the shared stub.
type budgetPort struct {
	store *memStore
}

func (p budgetPort) Save(ctx context.Context, item *domain.BudgetItem) error {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()
	if item == nil {
		return nil
	}
	for i, existing := range p.store.items {
		if existing.ID == item.ID && existing.Year == item.Year {
			p.store.items[i] = item.Clone()
			return nil
		}
	}
	p.store.items = append(p.store.items, item.Clone())
	return nil
}

func (p budgetPort) Load(ctx context.Context) ([]*domain.BudgetItem, error) {
	return p.store.LoadItems(ctx)
}

func (p budgetPort) FindItemByID(ctx context.Context, id, year int) (*domain.BudgetItem, error) {
	return p.store.FindItemByID(ctx, id, year)
}

func (p budgetPort) ExistsByName(ctx context.Context, name string, year int) (bool, error) {
	return p.store.ExistsByName(ctx, name, year)
}

func (p budgetPort) Delete(ctx context.Context, item *domain.BudgetItem) error {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()
	if item == nil {
		return nil
	}
	for i, existing := range p.store.items {
		if existing.ID == item.ID && existing.Year == item.Year {
			p.store.items = append(p.store.items[:i], p.store.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// userPort adapts memStore to ports.UserRepository
type userPort struct {
	store *memStore
}

func (p userPort) Save(ctx context.Context, actor *domain.Actor) error {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()
	if actor == nil {
		return nil
	}
	for i, existing := range p.store.users {
		if existing.ID == actor.ID {
			p.store.users[i] = actor.Clone()
			return nil
		}
	}
	p.store.users = append(p.store.users, actor.Clone())
	return nil
}

func (p userPort) FindByUsername(ctx context.Context, username string) (*domain.Actor, error) {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()
	for _, u := range p.store.users {
		if u.Username == username {
			return u.Clone(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (p userPort) Load(ctx context.Context) ([]*domain.Actor, error) {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()
	out := make([]*domain.Actor, len(p.store.users))
	for i, u := range p.store.users {
		out[i] = u.Clone()
	}
	return out, nil
}

// nopLogger discards everything
type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, message string, fields map[string]interface{})             {}
func (nopLogger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {}
func (nopLogger) Warn(ctx context.Context, message string, fields map[string]interface{})             {}
func (nopLogger) Debug(ctx context.Context, message string, fields map[string]interface{})            {}
func (l nopLogger) WithFields(fields map[string]interface{}) ports.Logger                             { return l }

// stubPasswords hashes with a visible prefix so tests stay readable
type stubPasswords struct{}

func (stubPasswords) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubPasswords) VerifyPassword(password, hash string) (bool, error) {
	return hash == "hashed:"+password, nil
}

// stubTokens issues deterministic tokens
type stubTokens struct{}

func (stubTokens) GenerateToken(actor *domain.Actor) (string, error) {
	return "token-" + actor.Username, nil
}

func (stubTokens) ValidateToken(token string) (*ports.TokenClaims, error) {
	return nil, fmt.Errorf("not implemented")
}
