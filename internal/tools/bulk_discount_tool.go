package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/dileep-u-k/inventory-agent/internal/catalog"
	"github.com/dileep-u-k/inventory-agent/internal/pricing"
)

// BulkDiscountTool quotes a bulk order with the volume discount applied.
type BulkDiscountTool struct {
	store catalog.Store
}

var _ ToolExecutor = (*BulkDiscountTool)(nil)

func NewBulkDiscountTool(store catalog.Store) *BulkDiscountTool {
	return &BulkDiscountTool{store: store}
}

func (t *BulkDiscountTool) Definition() Tool {
	return NewFunctionTool(
		"calculate_bulk_discount",
		"Quote a bulk order. Volume discounts apply by pound equivalent: 25lbs+ 5% (Distro), 50lbs+ 10% (Master), 100lbs+ 15% (Master 2). "+
			"Give either base_price (price per one unit of `unit`) or product_name to use the catalog price.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"product_name": {
					Type:        "string",
					Description: "Catalog product to price, e.g. 'Blue Dream'. Its per-pound price is converted to the requested unit.",
				},
				"base_price": {
					Type:        "number",
					Description: "Price in USD for one unit of `unit`. Ignored when product_name is given.",
				},
				"quantity": {
					Type:        "number",
					Description: "How many units are being ordered. Must be positive.",
				},
				"unit": {
					Type:        "string",
					Description: "Unit of the quantity and base price.",
					Enum:        unitNames(),
				},
			},
			Required: []string{"quantity", "unit"},
		},
	)
}

type bulkDiscountArgs struct {
	ProductName string   `json:"product_name"`
	BasePrice   *float64 `json:"base_price" validate:"required_without=ProductName,omitempty,gt=0"`
	Quantity    float64  `json:"quantity" validate:"required,gt=0,lte=1000000000000"`
	Unit        string   `json:"unit" validate:"required"`
}

type bulkDiscountResult struct {
	Product string `json:"product,omitempty"`
	pricing.Quote
}

func (t *BulkDiscountTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args bulkDiscountArgs
	if err := decodeArguments("calculate_bulk_discount", arguments, &args); err != nil {
		return "", err
	}
	if msg := validationMessage(args); msg != "" {
		return msg, nil
	}
	unit, err := pricing.ParseUnit(args.Unit)
	if err != nil {
		return errorResult(err), nil
	}

	result := bulkDiscountResult{}
	var basePrice float64
	if args.ProductName != "" {
		product, err := t.store.Get(ctx, args.ProductName)
		if errors.Is(err, catalog.ErrProductNotFound) {
			return fmt.Sprintf("Error: no product named '%s' in the catalog.", args.ProductName), nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to look up product: %w", err)
		}
		basePrice, err = pricing.PricePer(product.PricePerLb, pricing.Pound, unit)
		if err != nil {
			return errorResult(err), nil
		}
		result.Product = product.Name
	} else {
		basePrice = *args.BasePrice
	}

	quote, err := pricing.PriceBulk(basePrice, args.Quantity, unit)
	if err != nil {
		return errorResult(err), nil
	}
	result.Quote = quote
	return jsonResult(result)
}

func unitNames() []string {
	units := pricing.Units()
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = string(u)
	}
	return names
}
