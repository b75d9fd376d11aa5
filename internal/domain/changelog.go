package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChangeLogEntry is the immutable audit record written when a pending change
// is approved. Entries are append-only and never mutated or deleted.
type ChangeLogEntry struct {
	ID        int       `json:"id"`
	ItemID    int       `json:"item_id"`
	OldValue  float64   `json:"old_value"`
	NewValue  float64   `json:"new_value"`
	Timestamp time.Time `json:"timestamp"`
	ActorName string    `json:"actor_name"`
	ActorID   uuid.UUID `json:"actor_id"`
}

// NewChangeLogEntry records the approval of the given change by the actor.
// The entry ID is assigned by the change log store on append.
func NewChangeLogEntry(change *PendingChange, actor *Actor) *ChangeLogEntry {
	return &ChangeLogEntry{
		ItemID:    change.ItemID,
		OldValue:  change.OldValue,
		NewValue:  change.NewValue,
		Timestamp: time.Now(),
		ActorName: actor.FullName,
		ActorID:   actor.ID,
	}
}

// Clone returns an independent copy of the entry
func (e *ChangeLogEntry) Clone() *ChangeLogEntry {
	if e == nil {
		return nil
	}
	copied := *e
	return &copied
}
