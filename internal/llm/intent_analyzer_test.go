package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeIntent(t *testing.T) {
	ia := NewIntentAnalyzer(nil)
	cases := []struct {
		prompt string
		want   string
	}{
		{"Generate a menu of our Exotic strains", IntentMenu},
		{"Forecast sales for the next 30 days", IntentForecast},
		{"What's the bulk discount on 50 lbs of Blue Dream?", IntentPricing},
		{"Convert 2 pounds to grams", IntentConversion},
		{"How much is 3.5g in ounces", IntentConversion},
		{"Give me an inventory summary", IntentInventory},
		{"Which strain has the highest THCa?", IntentInventory},
		{"Tell me a joke", IntentGeneral},
		{"hello there", IntentGeneral},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ia.AnalyzeIntent(tc.prompt), tc.prompt)
	}
}

func TestNeedsTools(t *testing.T) {
	assert.False(t, NeedsTools(IntentGeneral))
	assert.True(t, NeedsTools(IntentPricing))
	assert.True(t, NeedsTools(IntentConversion))
}
