package usecase

import (
	"fmt"
	"math"

	"github.com/savethegov/govbudget/internal/domain"
)

// Default fractional limits for proposed value changes
const (
	DefaultItemChangeLimit    = 0.25
	DefaultBalanceChangeLimit = 0.10

	// epsilon guards divisions when the old value or net result is zero
	epsilon = 1e-9
)

// ChangeValidator applies the numeric policies bounding a proposed change:
// the per-item delta limit and the budget balance-impact limit.
type ChangeValidator struct {
	itemLimit    float64
	balanceLimit float64
}

// NewChangeValidator creates a validator with the given fractional limits.
// Non-positive limits fall back to the defaults.
func NewChangeValidator(itemLimit, balanceLimit float64) *ChangeValidator {
	if itemLimit <= 0 {
		itemLimit = DefaultItemChangeLimit
	}
	if balanceLimit <= 0 {
		balanceLimit = DefaultBalanceChangeLimit
	}
	return &ChangeValidator{itemLimit: itemLimit, balanceLimit: balanceLimit}
}

// ValidateChange checks a proposed new value for the item against all
// policies. A rejected proposal never becomes a pending change.
func (v *ChangeValidator) ValidateChange(item *domain.BudgetItem, budget *domain.Budget, newValue float64) error {
	if item == nil {
		return domain.ErrItemNotFound
	}
	if newValue < 0 {
		return domain.NewValidationError("amount must be non-negative", 0)
	}
	if newValue == item.Value {
		return domain.ErrNoChange
	}
	if err := v.validateItemLimit(item.Value, newValue); err != nil {
		return err
	}
	return v.validateBalanceImpact(item, budget, newValue)
}

// ValidateItemIntroduction checks the balance impact of adding a whole new
// item to the budget, plus its basic integrity rules.
func (v *ChangeValidator) ValidateItemIntroduction(item *domain.BudgetItem, budget *domain.Budget) error {
	if item == nil {
		return domain.NewValidationError("budget item cannot be nil", 0)
	}
	if item.Value < 0 {
		return domain.NewValidationError("amount must be non-negative", 0)
	}
	if len(item.Domains) == 0 {
		return domain.NewValidationError("budget item must belong to at least one domain", 0)
	}

	current := budget.NetResult()
	if math.Abs(current) <= epsilon {
		return nil
	}

	delta := item.Value
	if !item.IsRevenue {
		delta = -delta
	}
	changePercent := math.Abs(delta / current)
	if changePercent > v.balanceLimit {
		return domain.NewValidationError(
			fmt.Sprintf("introducing this item changes the budget balance by %.2f%%, exceeding the allowed limit ±%.2f%%",
				changePercent*100, v.balanceLimit*100),
			v.balanceLimit,
		)
	}
	return nil
}

func (v *ChangeValidator) validateItemLimit(oldValue, newValue float64) error {
	base := math.Max(oldValue, epsilon)
	changePercent := math.Abs(newValue-oldValue) / base
	if changePercent > v.itemLimit {
		return domain.NewValidationError(
			fmt.Sprintf("the change in amount (%.2f%%) exceeds the allowed limit ±%.2f%%",
				changePercent*100, v.itemLimit*100),
			v.itemLimit,
		)
	}
	return nil
}

func (v *ChangeValidator) validateBalanceImpact(item *domain.BudgetItem, budget *domain.Budget, newValue float64) error {
	current := budget.NetResult()
	// a zero balance permits any impact
	if math.Abs(current) <= epsilon {
		return nil
	}

	delta := newValue - item.Value
	if !item.IsRevenue {
		delta = -delta
	}
	changePercent := math.Abs(delta / current)
	if changePercent > v.balanceLimit {
		return domain.NewValidationError(
			fmt.Sprintf("the change alters the budget balance by %.2f%%, exceeding the allowed limit ±%.2f%%",
				changePercent*100, v.balanceLimit*100),
			v.balanceLimit,
		)
	}
	return nil
}
