package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// At most one approving authority may exist per process. The slot is guarded
// so concurrent readers and a single initializing writer are safe.
var (
	authorityMu sync.RWMutex
	authority   *Actor
)

// InitAuthority installs the process-wide approving authority. The first
// successful call wins. Calling again with the same actor id is an idempotent
// no-op returning the existing instance, so startup paths may re-run it.
// Installing a different identity fails with ErrAuthorityExists.
func InitAuthority(id uuid.UUID, username, fullName string) (*Actor, error) {
	authorityMu.Lock()
	defer authorityMu.Unlock()

	if authority != nil {
		if authority.ID == id {
			return authority.Clone(), nil
		}
		return nil, ErrAuthorityExists
	}

	authority = &Actor{
		ID:        id,
		Username:  username,
		FullName:  fullName,
		Role:      RoleAuthority,
		CreatedAt: time.Now(),
	}
	return authority.Clone(), nil
}

// CurrentAuthority returns a copy of the installed authority, if any
func CurrentAuthority() (*Actor, bool) {
	authorityMu.RLock()
	defer authorityMu.RUnlock()

	if authority == nil {
		return nil, false
	}
	return authority.Clone(), true
}

// ResetAuthority clears the installed authority. Administrative override;
// intended for tests so they can reinitialize deterministically.
func ResetAuthority() {
	authorityMu.Lock()
	defer authorityMu.Unlock()
	authority = nil
}
