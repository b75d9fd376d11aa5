package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savethegov/govbudget/internal/domain"
)

func testBudget() (*domain.BudgetItem, *domain.Budget) {
	item := domain.NewBudgetItem(7, 2025, "Tax Revenue", 1000.0, true, []domain.Domain{domain.DomainFinance})
	budget := &domain.Budget{Items: []*domain.BudgetItem{
		item,
		domain.NewBudgetItem(2, 2025, "Hospitals", 400.0, false, []domain.Domain{domain.DomainHealth}),
	}}
	return item, budget
}

func TestValidateChange_NegativeValue(t *testing.T) {
	v := NewChangeValidator(0, 0)
	item, budget := testBudget()

	err := v.ValidateChange(item, budget, -5.0)
	require.Error(t, err)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidateChange_NoOp(t *testing.T) {
	v := NewChangeValidator(0, 0)
	item, budget := testBudget()

	err := v.ValidateChange(item, budget, item.Value)
	assert.ErrorIs(t, err, domain.ErrNoChange)
}

func TestValidateChange_ItemLimitExceeded(t *testing.T) {
	v := NewChangeValidator(0.25, 0.50)
	item, budget := testBudget()

	// 30% change against a 25% limit
	err := v.ValidateChange(item, budget, 1300.0)
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0.25, verr.Limit)
}

func TestValidateChange_ItemLimitBoundaryPasses(t *testing.T) {
	v := NewChangeValidator(0.25, 0.50)
	item, budget := testBudget()

	// exactly 25% is allowed
	err := v.ValidateChange(item, budget, 1250.0)
	assert.NoError(t, err)
}

func TestValidateChange_BalanceLimitExceeded(t *testing.T) {
	v := NewChangeValidator(0.25, 0.10)
	item, budget := testBudget()

	// net result is 600; a delta of 100 is a 16.7% impact against a 10% limit
	err := v.ValidateChange(item, budget, 1100.0)
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0.10, verr.Limit)
}

func TestValidateChange_BalanceLimitWithinBounds(t *testing.T) {
	v := NewChangeValidator(0.25, 0.10)
	item, budget := testBudget()

	// a delta of 60 against net result 600 is exactly 10%
	err := v.ValidateChange(item, budget, 1060.0)
	assert.NoError(t, err)
}

func TestValidateChange_ZeroBalanceAllowsAnyImpact(t *testing.T) {
	v := NewChangeValidator(0.25, 0.10)
	item := domain.NewBudgetItem(1, 2025, "Tax Revenue", 1000.0, true, []domain.Domain{domain.DomainFinance})
	budget := &domain.Budget{Items: []*domain.BudgetItem{
		item,
		domain.NewBudgetItem(2, 2025, "Hospitals", 1000.0, false, []domain.Domain{domain.DomainHealth}),
	}}

	err := v.ValidateChange(item, budget, 1200.0)
	assert.NoError(t, err)
}

func TestValidateChange_ExpenseDeltaImpactsBalance(t *testing.T) {
	v := NewChangeValidator(0.50, 0.10)
	budget := &domain.Budget{Items: []*domain.BudgetItem{
		domain.NewBudgetItem(1, 2025, "Tax Revenue", 1000.0, true, []domain.Domain{domain.DomainFinance}),
		domain.NewBudgetItem(2, 2025, "Hospitals", 400.0, false, []domain.Domain{domain.DomainHealth}),
	}}
	expense := budget.ItemByID(2, 2025)

	// raising an expense by 100 lowers the 600 net result by 16.7%
	err := v.ValidateChange(expense, budget, 500.0)
	require.Error(t, err)
}

func TestValidateChange_ZeroOldValue(t *testing.T) {
	v := NewChangeValidator(0.25, 0.10)
	item := domain.NewBudgetItem(1, 2025, "Reserve", 0.0, true, []domain.Domain{domain.DomainFinance})
	budget := &domain.Budget{Items: []*domain.BudgetItem{item}}

	// any nonzero proposal against a zero value exceeds the fractional limit
	err := v.ValidateChange(item, budget, 10.0)
	require.Error(t, err)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidateItemIntroduction(t *testing.T) {
	v := NewChangeValidator(0.25, 0.10)
	_, budget := testBudget()

	// net result 600; a 50-value item is an 8.3% impact
	small := domain.NewBudgetItem(9, 2025, "Archives", 50.0, false, []domain.Domain{domain.DomainInterior})
	assert.NoError(t, v.ValidateItemIntroduction(small, budget))

	// a 100-value item is a 16.7% impact
	large := domain.NewBudgetItem(10, 2025, "Fleet", 100.0, false, []domain.Domain{domain.DomainInterior})
	assert.Error(t, v.ValidateItemIntroduction(large, budget))

	noDomains := domain.NewBudgetItem(11, 2025, "Orphan", 10.0, false, nil)
	assert.Error(t, v.ValidateItemIntroduction(noDomains, budget))
}
