// Package fx normalizes amounts across reporting currencies using a rate
// table keyed to one base currency.
package fx

// Base is the currency all table rates are quoted against.
const Base = "USD"

// Table maps a currency code to units of that currency per 1 unit of Base.
// It is immutable for the duration of a computation run.
type Table map[string]float64

// Rate returns the units-per-base rate for code, or 1.0 when the code is
// absent. An unknown currency degrades to a no-op conversion, never an error.
func (t Table) Rate(code string) float64 {
	if r, ok := t[code]; ok {
		return r
	}
	return 1.0
}

// minorUnits maps codes quoted in hundredths of a major unit to that major
// unit. Market caps are reported in major units even when the per-share
// price is quoted in minor units.
var minorUnits = map[string]string{
	"GBp": "GBP",
	"GBX": "GBP",
}

// MajorUnit collapses a minor-unit code to its major-unit code. Other codes
// pass through unchanged.
func MajorUnit(code string) string {
	if major, ok := minorUnits[code]; ok {
		return major
	}
	return code
}

// IsMinorUnit reports whether code denotes a minor currency unit.
func IsMinorUnit(code string) bool {
	_, ok := minorUnits[code]
	return ok
}

// WithMinorUnits returns a copy of t with synthetic minor-unit entries
// derived from their major-unit rate (1 major unit = 100 minor units).
func WithMinorUnits(t Table) Table {
	out := make(Table, len(t)+len(minorUnits))
	for code, r := range t {
		out[code] = r
	}
	for minor, major := range minorUnits {
		if r, ok := out[major]; ok {
			out[minor] = r * 100
		}
	}
	return out
}

// Normalize converts amount from one currency into another via the base
// currency. The target code is collapsed to its major unit before lookup.
// A non-positive rate on either side skips the conversion and returns the
// amount unchanged rather than dividing by zero.
func Normalize(amount float64, from, to string, t Table) float64 {
	if from == to {
		return amount
	}
	to = MajorUnit(to)
	if from == to {
		return amount
	}
	fromRate := t.Rate(from)
	toRate := t.Rate(to)
	if fromRate <= 0 || toRate <= 0 {
		return amount
	}
	return amount / fromRate * toRate
}

// ConvertPrice converts a per-share price from its quote currency into the
// display currency. A minor-unit price divides by 100 directly: the relation
// to the major unit is definitional, not a market rate.
func ConvertPrice(price float64, from, display string, t Table) float64 {
	if IsMinorUnit(from) {
		return price / 100
	}
	fromRate := t.Rate(from)
	if fromRate <= 0 {
		return 0
	}
	return price / fromRate * t.Rate(display)
}
