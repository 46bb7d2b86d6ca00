package subscription

import "cropadvisor-be/internal/payment"

// Plan is a purchasable tier. Prices are in rupees.
type Plan struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	MonthlyPrice float64 `json:"monthly_price"`
	YearlyPrice  float64 `json:"yearly_price"`
}

var plans = []Plan{
	{ID: "pro", Name: "Pro", MonthlyPrice: 100, YearlyPrice: 1000},
	{ID: "enterprise", Name: "Enterprise", MonthlyPrice: 500, YearlyPrice: 5000},
}

// Plans returns the catalogue in display order.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

func LookupPlan(id string) (Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

func (p Plan) Price(cycle BillingCycle) float64 {
	if cycle == BillingYearly {
		return p.YearlyPrice
	}
	return p.MonthlyPrice
}

// ChargeFor is the amount the gateway must report for one cycle of p, in
// the provider's own unit.
func (p Plan) ChargeFor(provider payment.Provider, cycle BillingCycle) float64 {
	price := p.Price(cycle)
	if provider == payment.ProviderKhalti {
		return price * 100
	}
	return price
}
