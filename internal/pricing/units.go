// Package pricing is the pricing and conversion core used by the inventory tools.
//
// Everything here is a pure function over its arguments and a few constant
// tables: mass unit conversion, decomposition of a gram quantity into retail
// sub-units, the volume discount tiers and the bulk quote built on top of them.
// Rounding happens only at the edges, in the values returned to callers.
package pricing

import (
	"fmt"
	"math"
	"strings"
)

// Unit is a mass unit accepted by the converter.
type Unit string

const (
	Gram     Unit = "gram"
	Ounce    Unit = "ounce"
	Pound    Unit = "pound"
	Kilogram Unit = "kilogram"
)

// gramsPerUnit is the single canonical factor for each unit.
var gramsPerUnit = map[Unit]float64{
	Gram:     1,
	Ounce:    28.3495,
	Pound:    453.592,
	Kilogram: 1000,
}

var unitAliases = map[string]Unit{
	"g":         Gram,
	"gram":      Gram,
	"grams":     Gram,
	"oz":        Ounce,
	"ounce":     Ounce,
	"ounces":    Ounce,
	"lb":        Pound,
	"lbs":       Pound,
	"pound":     Pound,
	"pounds":    Pound,
	"kg":        Kilogram,
	"kilo":      Kilogram,
	"kilos":     Kilogram,
	"kilogram":  Kilogram,
	"kilograms": Kilogram,
}

// Units returns the supported units, smallest first.
func Units() []Unit {
	return []Unit{Gram, Ounce, Pound, Kilogram}
}

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	_, ok := gramsPerUnit[u]
	return ok
}

// Grams returns how many grams one u weighs.
func (u Unit) Grams() (float64, error) {
	f, ok := gramsPerUnit[u]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, string(u))
	}
	return f, nil
}

// ParseUnit maps a user supplied unit name (case-insensitive, common
// abbreviations allowed) to a Unit.
func ParseUnit(s string) (Unit, error) {
	u, ok := unitAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
	return u, nil
}

// Convert converts quantity from one unit to another through grams.
// The result is not rounded.
func Convert(quantity float64, from, to Unit) (float64, error) {
	fromFactor, err := from.Grams()
	if err != nil {
		return 0, err
	}
	toFactor, err := to.Grams()
	if err != nil {
		return 0, err
	}
	if err := checkQuantity(quantity); err != nil {
		return 0, err
	}
	if from == to {
		return quantity, nil
	}
	result := quantity * fromFactor / toFactor
	if math.IsInf(result, 0) {
		return 0, fmt.Errorf("%w: %v %s is out of range", ErrInvalidQuantity, quantity, from)
	}
	return result, nil
}

// PricePer re-expresses a price quoted per one `from` unit as a price per one
// `to` unit, e.g. $/lb to $/oz.
func PricePer(price float64, from, to Unit) (float64, error) {
	// One `to` unit expressed in `from` units, times the price of a `from` unit.
	amount, err := Convert(1, to, from)
	if err != nil {
		return 0, err
	}
	return price * amount, nil
}

func checkQuantity(q float64) error {
	if math.IsNaN(q) || math.IsInf(q, 0) || q < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidQuantity, q)
	}
	return nil
}

// Round2 rounds half away from zero to two decimal places. Values too large
// to carry cents are returned unchanged.
func Round2(v float64) float64 {
	if math.Abs(v) >= 1e15 || math.IsNaN(v) {
		return v
	}
	return math.Round(v*100) / 100
}
