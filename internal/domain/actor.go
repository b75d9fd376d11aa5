package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role represents the role of a user in the budget system
type Role string

const (
	RoleCitizen   Role = "CITIZEN"
	RoleMember    Role = "MEMBER"
	RoleAuthority Role = "AUTHORITY"
)

// Domain represents the ministry a budget item or government member belongs to
type Domain string

const (
	DomainHealth         Domain = "Health"
	DomainEducation      Domain = "Education"
	DomainDefense        Domain = "Defense"
	DomainFinance        Domain = "Finance"
	DomainInfrastructure Domain = "Infrastructure"
	DomainForeignAffairs Domain = "Foreign Affairs"
	DomainInterior       Domain = "Interior"
	DomainDevelopment    Domain = "Development"
	DomainLabour         Domain = "Labour"
	DomainJustice        Domain = "Justice"
	DomainAgriculture    Domain = "Agriculture"
)

// Actor represents a user invoking workflow operations. Role is fixed at
// creation; Domain is only meaningful for members.
type Actor struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	Domain       Domain    `json:"domain,omitempty"`
	PasswordHash string    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCitizen creates a citizen account
func NewCitizen(username, fullName string) *Actor {
	return &Actor{
		ID:        uuid.New(),
		Username:  username,
		FullName:  fullName,
		Role:      RoleCitizen,
		CreatedAt: time.Now(),
	}
}

// NewMember creates a government member account belonging to the given ministry
func NewMember(username, fullName string, domain Domain) *Actor {
	return &Actor{
		ID:        uuid.New(),
		Username:  username,
		FullName:  fullName,
		Role:      RoleMember,
		Domain:    domain,
		CreatedAt: time.Now(),
	}
}

// CanEditItem reports whether the actor may originate a change proposal for
// the item. Edit rights are advisory: actual value mutation only happens
// through the approved-change path. Unknown roles and nil inputs fail closed.
func (a *Actor) CanEditItem(item *BudgetItem) bool {
	if a == nil || item == nil {
		return false
	}
	switch a.Role {
	case RoleAuthority:
		return true
	case RoleMember:
		for _, d := range item.Domains {
			if d == a.Domain {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// CanApprove reports whether the actor may resolve change requests
func (a *Actor) CanApprove() bool {
	return a != nil && a.Role == RoleAuthority
}

// CanSubmitChangeRequest reports whether the actor may submit change requests.
// The authority resolves proposals but never originates them.
func (a *Actor) CanSubmitChangeRequest() bool {
	return a != nil && a.Role == RoleMember
}

// Clone returns an independent copy of the actor
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}
	copied := *a
	return &copied
}
