package calc

import "github.com/shopspring/decimal"

// ItemsTotal sums line totals, used to cross-check an order's subtotal in
// the details view.
func ItemsTotal(totals ...decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum
}

func CalculateGrandTotal(subtotal, tax, shipping, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax).Add(shipping).Sub(discount)
}
