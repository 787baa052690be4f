package pricing

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genUnit() gopter.Gen {
	return gen.OneConstOf(Gram, Ounce, Pound, Kilogram)
}

func relEqual(a, b, tol float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= tol*math.Max(math.Abs(a), math.Abs(b))
}

func TestConvertProperty_RoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("convert U->V->U recovers the quantity", prop.ForAll(
		func(q float64, u, v Unit) bool {
			there, err := Convert(q, u, v)
			if err != nil {
				return false
			}
			back, err := Convert(there, v, u)
			if err != nil {
				return false
			}
			return relEqual(back, q, 1e-9)
		},
		gen.Float64Range(0, 1e6),
		genUnit(),
		genUnit(),
	))

	properties.Property("convert U->U is the identity", prop.ForAll(
		func(q float64, u Unit) bool {
			got, err := Convert(q, u, u)
			return err == nil && got == q
		},
		gen.Float64Range(0, 1e9),
		genUnit(),
	))

	properties.TestingRun(t)
}

func TestResolveTierProperty_Monotonic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("more pounds never means a smaller discount", prop.ForAll(
		func(a, b float64) bool {
			lo, hi := math.Min(a, b), math.Max(a, b)
			tlo, err := ResolveTier(lo)
			if err != nil {
				return false
			}
			thi, err := ResolveTier(hi)
			if err != nil {
				return false
			}
			return tlo.DiscountPercent <= thi.DiscountPercent
		},
		gen.Float64Range(0, 250),
		gen.Float64Range(0, 250),
	))

	properties.TestingRun(t)
}

func TestDecomposeProperty_NonNegative(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("counts are non-negative and remainder is in [0, 28)", prop.ForAll(
		func(g float64) bool {
			b := Decompose(g)
			return b.Eighths >= 0 && b.Quarters >= 0 && b.HalfOunces >= 0 && b.Ounces >= 0 &&
				b.RemainderGrams >= 0 && b.RemainderGrams < RetailOunceGrams
		},
		gen.Float64Range(0, math.MaxFloat64),
	))

	properties.TestingRun(t)
}
