package connector

import "github.com/shopspring/decimal"

// minorUnitExponent is the number of minor-unit digits for currencies
// this service routes payments in. Currencies not listed default to 2,
// the common case (cents, paise).
var minorUnitExponent = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"BHD": 3,
	"KWD": 3,
	"OMR": 3,
}

// MajorUnits converts an integer minor-unit amount (paise, cents) into
// its decimal major-unit representation for the given ISO 4217 currency
// code, using shopspring/decimal so the conversion never introduces the
// rounding error a float64 division would.
func MajorUnits(amountMinorUnits int64, currency string) decimal.Decimal {
	exp, ok := minorUnitExponent[currency]
	if !ok {
		exp = 2
	}
	return decimal.New(amountMinorUnits, -exp)
}
