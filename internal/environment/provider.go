package environment

import "strings"

// Factors holds the environmental modifiers that feed disease scoring
type Factors struct {
	AQI          int    `json:"aqi"`
	WaterQuality string `json:"water_quality"`
}

// Provider looks up environmental factors for a city. Implementations are
// total functions: unknown cities get a normal baseline, never an error.
type Provider interface {
	Lookup(city string) Factors
}

// Baseline is what unknown cities report
var Baseline = Factors{AQI: 80, WaterQuality: "good"}

// StaticProvider serves factors from a fixed city table. It stands in for a
// live air/water quality feed and keeps city knowledge out of the scorer.
type StaticProvider struct {
	cities map[string]Factors
}

// NewStaticProvider creates a provider with the default city table
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		cities: map[string]Factors{
			"delhi":     {AQI: 205, WaterQuality: "poor"},
			"mumbai":    {AQI: 130, WaterQuality: "moderate"},
			"kolkata":   {AQI: 160, WaterQuality: "poor"},
			"chennai":   {AQI: 95, WaterQuality: "moderate"},
			"bengaluru": {AQI: 90, WaterQuality: "good"},
			"hyderabad": {AQI: 110, WaterQuality: "moderate"},
			"kanpur":    {AQI: 220, WaterQuality: "poor"},
			"patna":     {AQI: 190, WaterQuality: "poor"},
		},
	}
}

// Lookup implements Provider
func (p *StaticProvider) Lookup(city string) Factors {
	if f, ok := p.cities[strings.ToLower(strings.TrimSpace(city))]; ok {
		return f
	}
	return Baseline
}
