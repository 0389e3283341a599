package model

// Rates holds per-million-token pricing, used to estimate cost when the
// transport has no native estimate.
type Rates struct {
	InputPerMillion  float64 `json:"input_per_million" yaml:"input_per_million" toml:"input_per_million"`
	OutputPerMillion float64 `json:"output_per_million" yaml:"output_per_million" toml:"output_per_million"`
}

// DefaultRates approximates current flagship pricing.
var DefaultRates = Rates{
	InputPerMillion:  2.50,
	OutputPerMillion: 10.00,
}

// Cost returns the estimated USD cost for the given token counts.
func (r Rates) Cost(tokensIn, tokensOut int) float64 {
	return float64(tokensIn)/1_000_000*r.InputPerMillion +
		float64(tokensOut)/1_000_000*r.OutputPerMillion
}
