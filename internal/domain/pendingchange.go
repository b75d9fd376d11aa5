package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a pending change
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Terminal reports whether the status permits no further transition
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Decision represents the authority's verdict on a pending change
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// PendingChange represents one proposed mutation to a budget item's value.
// Item year and name are denormalized so resolved entries stay readable in
// audit views even if the item is later renamed or removed.
type PendingChange struct {
	ID            int       `json:"id"`
	ItemID        int       `json:"item_id"`
	ItemYear      int       `json:"item_year"`
	ItemName      string    `json:"item_name"`
	RequesterName string    `json:"requester_name"`
	RequesterID   uuid.UUID `json:"requester_id"`
	OldValue      float64   `json:"old_value"`
	NewValue      float64   `json:"new_value"`
	Status        Status    `json:"status"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// NewPendingChange creates a PENDING change proposing newValue for the item
func NewPendingChange(id int, item *BudgetItem, requester *Actor, newValue float64) *PendingChange {
	return &PendingChange{
		ID:            id,
		ItemID:        item.ID,
		ItemYear:      item.Year,
		ItemName:      item.Name,
		RequesterName: requester.FullName,
		RequesterID:   requester.ID,
		OldValue:      item.Value,
		NewValue:      newValue,
		Status:        StatusPending,
		SubmittedAt:   time.Now(),
	}
}

// Approve transitions the change to APPROVED. Valid only from PENDING; a
// resolved change reports its terminal status and is left untouched.
func (c *PendingChange) Approve() error {
	if c.Status.Terminal() {
		return &AlreadyResolvedError{Status: c.Status}
	}
	c.Status = StatusApproved
	return nil
}

// Reject transitions the change to REJECTED. Valid only from PENDING.
func (c *PendingChange) Reject() error {
	if c.Status.Terminal() {
		return &AlreadyResolvedError{Status: c.Status}
	}
	c.Status = StatusRejected
	return nil
}

// Clone returns an independent copy of the change
func (c *PendingChange) Clone() *PendingChange {
	if c == nil {
		return nil
	}
	copied := *c
	return &copied
}
