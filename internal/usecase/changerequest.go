package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/savethegov/govbudget/internal/domain"
	"github.com/savethegov/govbudget/internal/ports"
)

// ChangeRequestUseCase orchestrates the change-request workflow: it gates
// every operation on the actor's capabilities, runs the numeric policies, and
// drives the pending-change state machine against the repositories.
type ChangeRequestUseCase struct {
	changes   ports.ChangeRequestRepository
	budget    ports.BudgetRepository
	changeLog ports.ChangeLogRepository
	approvals ports.ApprovalStore
	validator *ChangeValidator
	ids       *domain.IDAllocator
	log       ports.Logger

	// serializes resolutions so concurrent attempts on one id see exactly
	// one successful transition
	resolveMu sync.Mutex
}

// NewChangeRequestUseCase creates the workflow orchestrator
func NewChangeRequestUseCase(
	changes ports.ChangeRequestRepository,
	budget ports.BudgetRepository,
	changeLog ports.ChangeLogRepository,
	approvals ports.ApprovalStore,
	validator *ChangeValidator,
	ids *domain.IDAllocator,
	log ports.Logger,
) *ChangeRequestUseCase {
	return &ChangeRequestUseCase{
		changes:   changes,
		budget:    budget,
		changeLog: changeLog,
		approvals: approvals,
		validator: validator,
		ids:       ids,
		log:       log,
	}
}

// SubmitChangeRequest proposes a new value for a budget item on behalf of the
// actor. On success the persisted PENDING change is returned. Nothing is
// persisted when a capability or validation check fails.
func (uc *ChangeRequestUseCase) SubmitChangeRequest(ctx context.Context, actor *domain.Actor, itemID, year int, newValue float64) (*domain.PendingChange, error) {
	if !actor.CanSubmitChangeRequest() {
		return nil, domain.NewAuthorizationError("only government members can submit change requests")
	}

	item, err := uc.budget.FindItemByID(ctx, itemID, year)
	if err != nil {
		return nil, err
	}

	if !actor.CanEditItem(item) {
		return nil, domain.NewAuthorizationError(
			fmt.Sprintf("domain %s is not authorized for budget item %q", actor.Domain, item.Name))
	}

	items, err := uc.budget.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.validator.ValidateChange(item, &domain.Budget{Items: items}, newValue); err != nil {
		return nil, err
	}

	change := domain.NewPendingChange(uc.ids.Next(), item, actor, newValue)
	if err := uc.changes.Save(ctx, change); err != nil {
		uc.log.Error(ctx, "failed to persist change request", err, map[string]interface{}{
			"change_id": change.ID,
			"item_id":   itemID,
		})
		return nil, err
	}

	uc.log.Info(ctx, "change request submitted", map[string]interface{}{
		"change_id": change.ID,
		"item_id":   itemID,
		"item_year": year,
		"old_value": change.OldValue,
		"new_value": change.NewValue,
		"requester": actor.Username,
	})
	return change.Clone(), nil
}

// ResolveChangeRequest approves or rejects the pending change with the given
// id. Approval applies the new value to the target item and appends one audit
// entry; the three effects persist together or not at all.
func (uc *ChangeRequestUseCase) ResolveChangeRequest(ctx context.Context, actor *domain.Actor, changeID int, decision domain.Decision) (*domain.PendingChange, error) {
	if !actor.CanApprove() {
		return nil, domain.NewAuthorizationError("only the authority can resolve change requests")
	}

	uc.resolveMu.Lock()
	defer uc.resolveMu.Unlock()

	change, err := uc.changes.FindByID(ctx, changeID)
	if err != nil {
		return nil, err
	}

	switch decision {
	case domain.DecisionApprove:
		if err := change.Approve(); err != nil {
			return nil, err
		}
		item, err := uc.budget.FindItemByID(ctx, change.ItemID, change.ItemYear)
		if err != nil {
			return nil, err
		}
		item.Value = change.NewValue
		entry := domain.NewChangeLogEntry(change, actor)
		if err := uc.approvals.ApplyApproval(ctx, change, item, entry); err != nil {
			uc.log.Error(ctx, "failed to persist approval", err, map[string]interface{}{
				"change_id": changeID,
			})
			return nil, err
		}
	case domain.DecisionReject:
		if err := change.Reject(); err != nil {
			return nil, err
		}
		if err := uc.changes.Save(ctx, change); err != nil {
			uc.log.Error(ctx, "failed to persist rejection", err, map[string]interface{}{
				"change_id": changeID,
			})
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDecision, decision)
	}

	uc.log.Info(ctx, "change request resolved", map[string]interface{}{
		"change_id": changeID,
		"decision":  string(decision),
		"status":    string(change.Status),
		"actor":     actor.Username,
	})
	return change.Clone(), nil
}

// ListChangeRequests returns every stored change, all statuses, in
// insertion order
func (uc *ChangeRequestUseCase) ListChangeRequests(ctx context.Context) ([]*domain.PendingChange, error) {
	return uc.changes.Load(ctx)
}

// ListChangeLog returns the audit trail of approved changes in append order
func (uc *ChangeRequestUseCase) ListChangeLog(ctx context.Context) ([]*domain.ChangeLogEntry, error) {
	return uc.changeLog.List(ctx)
}
