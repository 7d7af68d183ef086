package loan

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// TotalRepayable computes principal * (1 + ratePct/100) rounded to the
// currency's minor unit (two decimals). Flat simple interest — the rate is
// applied exactly once, regardless of term length or frequency.
func TotalRepayable(principal, ratePct decimal.Decimal) decimal.Decimal {
	return principal.Mul(hundred.Add(ratePct)).Div(hundred).Round(2)
}
