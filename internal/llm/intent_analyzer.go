package llm

import (
	"regexp"
	"strings"

	"github.com/dileep-u-k/inventory-agent/internal/logging"
)

// Intents the analyzer can detect.
const (
	IntentMenu       = "menu"
	IntentForecast   = "forecast"
	IntentPricing    = "pricing"
	IntentConversion = "conversion"
	IntentInventory  = "inventory"
	IntentGeneral    = "general"
)

// quantityRegex matches a number followed by a weight unit, e.g. "50 kg" or "3.5g".
var quantityRegex = regexp.MustCompile(`\d+(\.\d+)?\s*(g|grams?|oz|ounces?|lbs?|pounds?|kg|kilos?|kilograms?)\b`)

type intentRule struct {
	intent   string
	keywords []string
}

// Checked in order; the first match wins.
var intentRules = []intentRule{
	{IntentMenu, []string{"menu"}},
	{IntentForecast, []string{"forecast", "projection", "project sales", "days of supply", "sell through", "run out"}},
	{IntentPricing, []string{"discount", "bulk", "quote", "tier", "price", "pricing", "cost", "wholesale", "margin"}},
	{IntentConversion, []string{"convert", "conversion", "how many grams", "how many ounces", "how many pounds", "eighths", "quarters"}},
	{IntentInventory, []string{"inventory", "stock", "summary", "strain", "product", "thca", "exotic", "premium", "mids", "smalls"}},
}

// IntentAnalyzer classifies prompts with keyword and regex checks so the agent
// only offers tools when the question is about the inventory.
type IntentAnalyzer struct {
	logger logging.Logger
}

// NewIntentAnalyzer returns an analyzer that logs its decisions at debug level.
func NewIntentAnalyzer(logger logging.Logger) *IntentAnalyzer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &IntentAnalyzer{logger: logger}
}

// AnalyzeIntent returns one of the Intent constants. Prompts that match no
// rule are IntentGeneral.
func (ia *IntentAnalyzer) AnalyzeIntent(prompt string) string {
	lower := strings.ToLower(prompt)

	for _, rule := range intentRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				ia.logger.Debugf("intent detected by keyword %q: %s", keyword, rule.intent)
				return rule.intent
			}
		}
	}
	if quantityRegex.MatchString(lower) {
		ia.logger.Debugf("intent detected by quantity pattern: %s", IntentConversion)
		return IntentConversion
	}

	ia.logger.Debugf("no inventory intent detected")
	return IntentGeneral
}

// NeedsTools reports whether an intent should be answered with tools.
func NeedsTools(intent string) bool {
	return intent != IntentGeneral
}
