package domain

import "github.com/shopspring/decimal"

func init() {
	// the backend reads amounts as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	// CreditUnit is how many balance units make one credit
	CreditUnit = 1000
	// ListingFeeCredits is the balance a seller needs to list an item
	ListingFeeCredits = 5
)

// FormatAmount renders an amount as dollars with two decimals
func FormatAmount(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
