package nutrition

import "strings"

// Level is a coarse qualitative bucket for a nutrient amount, used for
// traffic-light style presentation. LevelUnknown means there was neither a
// source-supplied level nor a numeric measurement to derive one from.
type Level string

const (
	LevelUnknown  Level = ""
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// ParseLevel validates a source-supplied level string.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return LevelLow
	case "moderate":
		return LevelModerate
	case "high":
		return LevelHigh
	}
	return LevelUnknown
}

// Band is the low/high threshold pair for one nutrient, in grams per 100g
// (kcal per 100g for calories).
type Band struct {
	Low  float64 `json:"low" mapstructure:"low"`
	High float64 `json:"high" mapstructure:"high"`
}

// Thresholds maps nutrients to their classification bands. The table is
// plain data so it can be overridden from the config file and printed as a
// reference table; nothing in this package hard-codes per-nutrient numbers
// outside of it.
type Thresholds map[NutrientKey]Band

// DefaultThresholds returns the built-in classification table, based on the
// UK FSA front-of-pack traffic light criteria for the negative nutrients
// and common label-claim cutoffs for fiber and protein.
func DefaultThresholds() Thresholds {
	return Thresholds{
		KeyCalories:      {Low: 100, High: 400},
		KeyFat:           {Low: 3, High: 17.5},
		KeySaturatedFat:  {Low: 1.5, High: 5},
		KeyCarbohydrates: {Low: 15, High: 30},
		KeySugars:        {Low: 5, High: 22.5},
		KeySalt:          {Low: 0.3, High: 1.5},
		KeyProtein:       {Low: 5, High: 10},
		KeyFiber:         {Low: 3, High: 6},
	}
}

// Classify maps a measurement to a Level using the threshold band for key.
// A source-supplied level always wins over local classification. With no
// source level and no measurement (or no band for the key) it returns
// LevelUnknown rather than guessing.
func Classify(key NutrientKey, m *Measurement, sourceLevel Level, t Thresholds) Level {
	if sourceLevel != LevelUnknown {
		return sourceLevel
	}
	if m == nil {
		return LevelUnknown
	}
	band, ok := t[key]
	if !ok {
		return LevelUnknown
	}
	switch {
	case m.Per100g < band.Low:
		return LevelLow
	case m.Per100g > band.High:
		return LevelHigh
	default:
		return LevelModerate
	}
}

// HigherIsBetter reports whether a high level of the nutrient is favorable.
// For protein and fiber "high" is good; for everything else it is not.
// Consumers rendering levels must interpret them through this single
// helper instead of keeping their own copies of the inversion.
func HigherIsBetter(key NutrientKey) bool {
	return key == KeyProtein || key == KeyFiber
}
