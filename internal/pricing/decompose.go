package pricing

import "math"

// Retail sub-unit sizes in grams.
const (
	EighthGrams      = 3.5
	QuarterGrams     = 7.0
	HalfOunceGrams   = 14.0
	RetailOunceGrams = 28.0
)

// Breakdown expresses a gram quantity as counts of retail sub-units.
// Each count is computed against the full quantity, so the counts are
// alternative views of the same amount rather than a partition of it.
type Breakdown struct {
	Eighths        int     `json:"eighths" msgpack:"eighths"`
	Quarters       int     `json:"quarters" msgpack:"quarters"`
	HalfOunces     int     `json:"half_ounces" msgpack:"half_ounces"`
	Ounces         int     `json:"ounces" msgpack:"ounces"`
	RemainderGrams float64 `json:"remainder_grams" msgpack:"remainder_grams"`
}

// Decompose splits grams into eighths, quarters, half ounces and (28 g)
// ounces. RemainderGrams is what is left over after whole ounces, rounded to
// two decimals and always below 28. Negative or non-finite input yields a
// zero Breakdown; counts too large for an int are reported as math.MaxInt.
func Decompose(grams float64) Breakdown {
	if math.IsNaN(grams) || math.IsInf(grams, 0) || grams <= 0 {
		return Breakdown{}
	}
	rem := Round2(math.Mod(grams, RetailOunceGrams))
	// 27.996 and up rounds to a whole ounce; that ounce is not a remainder.
	if rem >= RetailOunceGrams {
		rem = 0
	}
	return Breakdown{
		Eighths:        floorCount(grams / EighthGrams),
		Quarters:       floorCount(grams / QuarterGrams),
		HalfOunces:     floorCount(grams / HalfOunceGrams),
		Ounces:         floorCount(grams / RetailOunceGrams),
		RemainderGrams: rem,
	}
}

// floorCount floors a non-negative count, saturating at math.MaxInt.
func floorCount(v float64) int {
	f := math.Floor(v)
	if f >= math.MaxInt64 {
		return math.MaxInt
	}
	return int(f)
}
