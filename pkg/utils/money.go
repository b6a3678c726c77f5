package utils

import "github.com/shopspring/decimal"

// ToMinorUnits converts a base-currency amount to gateway minor units.
// Gateways reject zero-amount orders, so the floor is 1.
func ToMinorUnits(amount decimal.Decimal) int64 {
	minor := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if minor < 1 {
		return 1
	}
	return minor
}

// ClampDiscount keeps a discount inside [0, base].
func ClampDiscount(discount, base decimal.Decimal) decimal.Decimal {
	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(base) {
		return base
	}
	return discount
}
