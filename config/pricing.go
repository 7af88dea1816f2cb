package config

// PricingConfig holds model pricing used to convert token usage into USD.
type PricingConfig struct {
	Enabled      bool                     `yaml:"enabled" mapstructure:"enabled"`
	Currency     string                   `yaml:"currency" mapstructure:"currency"`
	CustomPrices map[string]CustomPricing `yaml:"custom_prices,omitempty" mapstructure:"custom_prices"`
}

// CustomPricing overrides the built-in price table for one model.
type CustomPricing struct {
	InputPricePerMToken  float64 `yaml:"input_price_per_mtoken" mapstructure:"input_price_per_mtoken"`
	OutputPricePerMToken float64 `yaml:"output_price_per_mtoken" mapstructure:"output_price_per_mtoken"`
}

// ModelPricing is the price of one model per million tokens.
type ModelPricing struct {
	InputPricePerMToken  float64
	OutputPricePerMToken float64
}

// DefaultPricingConfig enables pricing in USD with no custom overrides.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		Enabled:      true,
		Currency:     "USD",
		CustomPrices: make(map[string]CustomPricing),
	}
}

// DefaultModelPricing is the built-in price table, per million tokens.
// Unknown models price at zero; users override via custom_prices.
var DefaultModelPricing = map[string]ModelPricing{
	"anthropic/claude-sonnet-4-5-20250929": {InputPricePerMToken: 3.00, OutputPricePerMToken: 15.00},
	"anthropic/claude-haiku-4-5-20251001":  {InputPricePerMToken: 1.00, OutputPricePerMToken: 5.00},
	"anthropic/claude-opus-4-1-20250805":   {InputPricePerMToken: 15.00, OutputPricePerMToken: 75.00},
	"anthropic/claude-3-5-haiku-20241022":  {InputPricePerMToken: 0.80, OutputPricePerMToken: 4.00},
	"openai/gpt-4o":                        {InputPricePerMToken: 2.50, OutputPricePerMToken: 10.00},
	"openai/gpt-4o-mini":                   {InputPricePerMToken: 0.150, OutputPricePerMToken: 0.600},
	"openai/o3-mini":                       {InputPricePerMToken: 1.10, OutputPricePerMToken: 4.40},
	"deepseek/deepseek-chat":               {InputPricePerMToken: 0.14, OutputPricePerMToken: 0.28},
}

// PriceFor resolves the pricing for a model, custom prices first.
func (c PricingConfig) PriceFor(model string) (ModelPricing, bool) {
	if custom, ok := c.CustomPrices[model]; ok {
		return ModelPricing{
			InputPricePerMToken:  custom.InputPricePerMToken,
			OutputPricePerMToken: custom.OutputPricePerMToken,
		}, true
	}
	pricing, ok := DefaultModelPricing[model]
	return pricing, ok
}

// CalculateCost computes USD spend for one request. Disabled pricing and
// unknown models both cost zero.
func (c PricingConfig) CalculateCost(model string, inputTokens, outputTokens int) float64 {
	if !c.Enabled {
		return 0.0
	}
	pricing, ok := c.PriceFor(model)
	if !ok {
		return 0.0
	}
	inputCost := (float64(inputTokens) / 1_000_000.0) * pricing.InputPricePerMToken
	outputCost := (float64(outputTokens) / 1_000_000.0) * pricing.OutputPricePerMToken
	return inputCost + outputCost
}
