package tools

import (
	"context"
	"fmt"

	"github.com/dileep-u-k/inventory-agent/internal/pricing"
)

// ConversionTool converts between mass units and breaks the result down
// into eighths, quarters, half ounces and ounces.
type ConversionTool struct{}

var _ ToolExecutor = (*ConversionTool)(nil)

func NewConversionTool() *ConversionTool {
	return &ConversionTool{}
}

func (t *ConversionTool) Definition() Tool {
	return NewFunctionTool(
		"convert_units",
		"Convert a weight between grams, ounces, pounds and kilograms, and show how many eighths (3.5g), quarters (7g), half ounces (14g) and ounces (28g) it makes.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"quantity": {
					Type:        "number",
					Description: "The amount to convert. Zero or more.",
				},
				"from_unit": {
					Type:        "string",
					Description: "Unit of the quantity.",
					Enum:        unitNames(),
				},
				"to_unit": {
					Type:        "string",
					Description: "Unit to convert to.",
					Enum:        unitNames(),
				},
			},
			Required: []string{"quantity", "from_unit", "to_unit"},
		},
	)
}

type conversionArgs struct {
	Quantity float64 `json:"quantity" validate:"gte=0,lte=1000000000000"`
	FromUnit string  `json:"from_unit" validate:"required"`
	ToUnit   string  `json:"to_unit" validate:"required"`
}

// ConversionResult is shared with the HTTP gateway.
type ConversionResult struct {
	Quantity  float64           `json:"quantity"`
	FromUnit  pricing.Unit      `json:"from_unit"`
	ToUnit    pricing.Unit      `json:"to_unit"`
	Result    float64           `json:"result"`
	Display   string            `json:"display"`
	Grams     float64           `json:"grams"`
	Breakdown pricing.Breakdown `json:"breakdown"`
}

// ConvertQuantity converts and decomposes quantity. Errors are the pricing
// package's sentinel errors.
func ConvertQuantity(quantity float64, from, to pricing.Unit) (ConversionResult, error) {
	converted, err := pricing.Convert(quantity, from, to)
	if err != nil {
		return ConversionResult{}, err
	}
	grams, err := pricing.Convert(quantity, from, pricing.Gram)
	if err != nil {
		return ConversionResult{}, err
	}
	return ConversionResult{
		Quantity:  quantity,
		FromUnit:  from,
		ToUnit:    to,
		Result:    converted,
		Display:   fmt.Sprintf("%.2f %s = %.2f %s", quantity, from, converted, to),
		Grams:     pricing.Round2(grams),
		Breakdown: pricing.Decompose(grams),
	}, nil
}

func (t *ConversionTool) Execute(_ context.Context, arguments string) (string, error) {
	var args conversionArgs
	if err := decodeArguments("convert_units", arguments, &args); err != nil {
		return "", err
	}
	if msg := validationMessage(args); msg != "" {
		return msg, nil
	}
	from, err := pricing.ParseUnit(args.FromUnit)
	if err != nil {
		return errorResult(err), nil
	}
	to, err := pricing.ParseUnit(args.ToUnit)
	if err != nil {
		return errorResult(err), nil
	}
	result, err := ConvertQuantity(args.Quantity, from, to)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(result)
}
