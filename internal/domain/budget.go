package domain

// BudgetItem represents a single revenue or expense line of the budget.
// ID and Year form the immutable identity; Name and Value are mutable.
// Value must stay non-negative and Domains must not be empty.
type BudgetItem struct {
	ID        int      `json:"id"`
	Year      int      `json:"year"`
	Name      string   `json:"name"`
	Value     float64  `json:"value"`
	IsRevenue bool     `json:"is_revenue"`
	Domains   []Domain `json:"domains"`
}

// NewBudgetItem creates a budget item for the given fiscal year
func NewBudgetItem(id, year int, name string, value float64, isRevenue bool, domains []Domain) *BudgetItem {
	item := &BudgetItem{
		ID:        id,
		Year:      year,
		Name:      name,
		Value:     value,
		IsRevenue: isRevenue,
		Domains:   make([]Domain, len(domains)),
	}
	copy(item.Domains, domains)
	return item
}

// Clone returns an independent copy of the item, including the domain set
func (i *BudgetItem) Clone() *BudgetItem {
	if i == nil {
		return nil
	}
	copied := *i
	copied.Domains = make([]Domain, len(i.Domains))
	copy(copied.Domains, i.Domains)
	return &copied
}

// Budget is the full set of budget items for display and balance checks
type Budget struct {
	Items []*BudgetItem
}

// NetResult returns the sum of revenue values minus the sum of expense values
func (b *Budget) NetResult() float64 {
	if b == nil {
		return 0
	}
	var result float64
	for _, item := range b.Items {
		if item == nil {
			continue
		}
		if item.IsRevenue {
			result += item.Value
		} else {
			result -= item.Value
		}
	}
	return result
}

// ItemByID returns the item with the given identity, or nil if absent
func (b *Budget) ItemByID(id, year int) *BudgetItem {
	if b == nil {
		return nil
	}
	for _, item := range b.Items {
		if item != nil && item.ID == id && item.Year == year {
			return item
		}
	}
	return nil
}
