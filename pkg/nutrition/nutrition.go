package nutrition

import (
	"math"
	"strconv"
	"strings"
)

// NutrientKey identifies a nutrient using the same hyphenated names the
// Open Food Facts feed uses, so config files and API payloads line up.
type NutrientKey string

const (
	KeyCalories      NutrientKey = "calories"
	KeyFat           NutrientKey = "fat"
	KeySaturatedFat  NutrientKey = "saturated-fat"
	KeyCarbohydrates NutrientKey = "carbohydrates"
	KeySugars        NutrientKey = "sugars"
	KeyAddedSugars   NutrientKey = "added-sugars"
	KeyProtein       NutrientKey = "proteins"
	KeySalt          NutrientKey = "salt"
	KeySodium        NutrientKey = "sodium"
	KeyFiber         NutrientKey = "fiber"
)

// Measurement is one nutrient value per 100g of product. A nil
// *Measurement means the source did not provide the nutrient; a non-nil
// measurement with Per100g == 0 means the source explicitly reported zero.
type Measurement struct {
	Per100g float64 `json:"per_100g"`
}

// Profile holds a product's per-100g nutrient measurements. Every field is
// independently optional: nil means "not provided by the source", never zero.
type Profile struct {
	Calories      *Measurement `json:"calories,omitempty"` // kcal, not grams
	Fat           *Measurement `json:"fat,omitempty"`
	SaturatedFat  *Measurement `json:"saturated_fat,omitempty"`
	Carbohydrates *Measurement `json:"carbohydrates,omitempty"`
	Sugars        *Measurement `json:"sugars,omitempty"`
	AddedSugars   *Measurement `json:"added_sugars,omitempty"`
	Protein       *Measurement `json:"protein,omitempty"`
	Salt          *Measurement `json:"salt,omitempty"`
	Sodium        *Measurement `json:"sodium,omitempty"` // grams, not mg
	Fiber         *Measurement `json:"fiber,omitempty"`
}

// Get returns the measurement for a nutrient key, or nil.
func (p *Profile) Get(key NutrientKey) *Measurement {
	switch key {
	case KeyCalories:
		return p.Calories
	case KeyFat:
		return p.Fat
	case KeySaturatedFat:
		return p.SaturatedFat
	case KeyCarbohydrates:
		return p.Carbohydrates
	case KeySugars:
		return p.Sugars
	case KeyAddedSugars:
		return p.AddedSugars
	case KeyProtein:
		return p.Protein
	case KeySalt:
		return p.Salt
	case KeySodium:
		return p.Sodium
	case KeyFiber:
		return p.Fiber
	}
	return nil
}

// Grade is a Nutri-Score style result: the raw point score and the A-E
// category it maps to.
type Grade struct {
	Score    int    `json:"score"`
	Category string `json:"category"` // "A".."E"
}

// Characteristic is a single qualitative claim about a product, derived
// from one threshold rule ("high in fiber", "high in saturated fat", ...).
type Characteristic struct {
	Positive bool   `json:"positive"`
	Label    string `json:"label"`
}

// ParseMeasurement normalizes a raw nutrient value from a third-party feed
// into a Measurement. The feed mixes numbers and numeric strings for the
// same fields, so both are accepted. Missing, malformed, non-finite and
// negative inputs all normalize to nil ("absent") rather than zero:
// fabricating a zero would make a missing nutrient look like a verified
// zero downstream.
func ParseMeasurement(raw any) *Measurement {
	var v float64
	switch x := raw.(type) {
	case nil:
		return nil
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int64:
		v = float64(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		v = f
	default:
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &Measurement{Per100g: v}
}

// ParseCategory validates an A-E grade letter (case-insensitive). Returns
// the canonical uppercase letter and whether the input was valid.
func ParseCategory(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "A", "B", "C", "D", "E":
		return s, true
	}
	return "", false
}
