package model

import "github.com/shopspring/decimal"

// LineTotal is unitPrice × quantity computed in decimal
func LineTotal(unitPrice float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
}

// ToAmount rounds to cents for storage and JSON
func ToAmount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
