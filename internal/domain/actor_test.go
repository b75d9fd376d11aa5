package domain

import (
	"testing"
)

func financeItem() *BudgetItem {
	return NewBudgetItem(7, 2025, "Tax Revenue", 1000.0, true, []Domain{DomainFinance})
}

func TestCanApprove(t *testing.T) {
	citizen := NewCitizen("citizen1", "Jane Citizen")
	member := NewMember("member1", "John Member", DomainFinance)
	auth := &Actor{Role: RoleAuthority}

	if citizen.CanApprove() {
		t.Error("Expected citizen CanApprove to be false")
	}
	if member.CanApprove() {
		t.Error("Expected member CanApprove to be false")
	}
	if !auth.CanApprove() {
		t.Error("Expected authority CanApprove to be true")
	}
}

func TestCanSubmitChangeRequest(t *testing.T) {
	citizen := NewCitizen("citizen1", "Jane Citizen")
	member := NewMember("member1", "John Member", DomainFinance)
	auth := &Actor{Role: RoleAuthority}

	if citizen.CanSubmitChangeRequest() {
		t.Error("Expected citizen CanSubmitChangeRequest to be false")
	}
	if !member.CanSubmitChangeRequest() {
		t.Error("Expected member CanSubmitChangeRequest to be true")
	}
	if auth.CanSubmitChangeRequest() {
		t.Error("Expected authority CanSubmitChangeRequest to be false")
	}
}

func TestCanEditItem(t *testing.T) {
	item := financeItem()

	if NewCitizen("c", "Citizen").CanEditItem(item) {
		t.Error("Expected citizen CanEditItem to be false")
	}

	if !NewMember("m1", "Finance Member", DomainFinance).CanEditItem(item) {
		t.Error("Expected finance member to edit a finance item")
	}

	if NewMember("m2", "Health Member", DomainHealth).CanEditItem(item) {
		t.Error("Expected health member not to edit a finance item")
	}

	auth := &Actor{Role: RoleAuthority}
	if !auth.CanEditItem(item) {
		t.Error("Expected authority to edit any item")
	}

	shared := NewBudgetItem(8, 2025, "Hospitals", 500.0, false, []Domain{DomainHealth, DomainFinance})
	if !NewMember("m3", "Health Member", DomainHealth).CanEditItem(shared) {
		t.Error("Expected member to edit an item sharing its domain")
	}
}

func TestCapabilitiesFailClosed(t *testing.T) {
	var nilActor *Actor
	item := financeItem()

	if nilActor.CanEditItem(item) || nilActor.CanApprove() || nilActor.CanSubmitChangeRequest() {
		t.Error("Expected nil actor capabilities to be false")
	}

	member := NewMember("m", "Member", DomainFinance)
	if member.CanEditItem(nil) {
		t.Error("Expected CanEditItem with nil item to be false")
	}

	unknown := &Actor{Role: Role("INTERN")}
	if unknown.CanEditItem(item) || unknown.CanApprove() || unknown.CanSubmitChangeRequest() {
		t.Error("Expected unknown role capabilities to be false")
	}
}

func TestActorClone(t *testing.T) {
	member := NewMember("m", "Member", DomainFinance)
	clone := member.Clone()

	clone.FullName = "Changed"
	if member.FullName == "Changed" {
		t.Error("Expected clone mutation not to affect the original")
	}
}
