package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/savethegov/govbudget/internal/domain"
	"github.com/savethegov/govbudget/internal/ports"
)

// budget items that cannot be deleted
var protectedItemNames = map[string]bool{
	"defense":   true,
	"education": true,
	"health":    true,
}

// BudgetUseCase handles budget item management: creation, deletion, and the
// aggregate views the validation rules and presentation layer need.
type BudgetUseCase struct {
	budget    ports.BudgetRepository
	validator *ChangeValidator
	log       ports.Logger
}

// NewBudgetUseCase creates a new budget use case
func NewBudgetUseCase(budget ports.BudgetRepository, validator *ChangeValidator, log ports.Logger) *BudgetUseCase {
	return &BudgetUseCase{
		budget:    budget,
		validator: validator,
		log:       log,
	}
}

// CreateItem adds a new budget item. The actor must hold edit rights for the
// item's domains; id and name must be unique within the fiscal year.
func (uc *BudgetUseCase) CreateItem(ctx context.Context, actor *domain.Actor, item *domain.BudgetItem) (*domain.BudgetItem, error) {
	if item == nil {
		return nil, domain.NewValidationError("budget item cannot be nil", 0)
	}
	if !actor.CanEditItem(item) {
		return nil, domain.NewAuthorizationError("actor is not authorized to create this budget item")
	}
	if item.ID <= 0 {
		return nil, domain.NewValidationError("budget item id must be positive", 0)
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil, domain.NewValidationError("budget item name cannot be empty", 0)
	}

	if _, err := uc.budget.FindItemByID(ctx, item.ID, item.Year); err == nil {
		return nil, domain.NewValidationError(
			fmt.Sprintf("budget item id %d already exists for year %d", item.ID, item.Year), 0)
	} else if _, ok := err.(*domain.NotFoundError); !ok {
		return nil, err
	}

	nameExists, err := uc.budget.ExistsByName(ctx, item.Name, item.Year)
	if err != nil {
		return nil, err
	}
	if nameExists {
		return nil, domain.NewValidationError(
			fmt.Sprintf("budget item name %q already exists for year %d", item.Name, item.Year), 0)
	}

	items, err := uc.budget.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.validator.ValidateItemIntroduction(item, &domain.Budget{Items: items}); err != nil {
		return nil, err
	}

	if err := uc.budget.Save(ctx, item); err != nil {
		return nil, err
	}

	uc.log.Info(ctx, "budget item created", map[string]interface{}{
		"item_id": item.ID,
		"year":    item.Year,
		"name":    item.Name,
		"actor":   actor.Username,
	})
	return item.Clone(), nil
}

// DeleteItem removes a budget item. Protected categories cannot be deleted.
func (uc *BudgetUseCase) DeleteItem(ctx context.Context, actor *domain.Actor, id, year int) error {
	item, err := uc.budget.FindItemByID(ctx, id, year)
	if err != nil {
		return err
	}
	if !actor.CanEditItem(item) {
		return domain.NewAuthorizationError("actor is not authorized to delete this budget item")
	}
	if protectedItemNames[strings.ToLower(item.Name)] {
		return domain.NewValidationError(
			fmt.Sprintf("protected budget item %q cannot be deleted", item.Name), 0)
	}

	if err := uc.budget.Delete(ctx, item); err != nil {
		return err
	}

	uc.log.Info(ctx, "budget item deleted", map[string]interface{}{
		"item_id": id,
		"year":    year,
		"actor":   actor.Username,
	})
	return nil
}

// ListItems returns every budget item as independent copies
func (uc *BudgetUseCase) ListItems(ctx context.Context) ([]*domain.BudgetItem, error) {
	return uc.budget.Load(ctx)
}

// NetResult returns the budget's current net result (revenue minus expense)
func (uc *BudgetUseCase) NetResult(ctx context.Context) (float64, error) {
	items, err := uc.budget.Load(ctx)
	if err != nil {
		return 0, err
	}
	budget := &domain.Budget{Items: items}
	return budget.NetResult(), nil
}
