package openfoodfacts

import (
	"github.com/tidwall/gjson"

	"github.com/foodscope/foodscope/internal/utils"
	"github.com/foodscope/foodscope/pkg/nutrition"
)

// kJPerKcal converts the feed's energy-kj values when no kcal is given.
const kJPerKcal = 4.184

// nutrimentKeys maps our nutrient keys to the feed's per-100g field names.
// Energy is handled separately because of the kJ fallback.
var nutrimentKeys = map[nutrition.NutrientKey]string{
	nutrition.KeyFat:           "fat_100g",
	nutrition.KeySaturatedFat:  "saturated-fat_100g",
	nutrition.KeyCarbohydrates: "carbohydrates_100g",
	nutrition.KeySugars:        "sugars_100g",
	nutrition.KeyAddedSugars:   "added-sugars_100g",
	nutrition.KeyProtein:       "proteins_100g",
	nutrition.KeySalt:          "salt_100g",
	nutrition.KeySodium:        "sodium_100g",
	nutrition.KeyFiber:         "fiber_100g",
}

// levelKeys are the nutrients the feed supplies qualitative levels for.
var levelKeys = map[nutrition.NutrientKey]string{
	nutrition.KeyFat:          "fat",
	nutrition.KeySaturatedFat: "saturated-fat",
	nutrition.KeySugars:       "sugars",
	nutrition.KeySalt:         "salt",
}

// parseProduct maps a raw API response body onto a normalized Product.
// The feed is third-party data with known inconsistencies (numbers as
// strings, missing fields, junk values); everything unparseable normalizes
// to absent rather than failing the whole product.
func parseProduct(barcode string, doc string) *Product {
	prod := gjson.Get(doc, "product")

	p := &Product{
		Code:     firstString(prod, "code"),
		Name:     firstString(prod, "product_name", "product_name_en", "generic_name"),
		Brands:   firstString(prod, "brands"),
		Quantity: firstString(prod, "quantity"),
	}
	if p.Code == "" {
		p.Code = barcode
	}

	nutriments := prod.Get("nutriments")
	p.Profile = parseProfile(nutriments)

	if cat, ok := nutrition.ParseCategory(prod.Get("nutriscore_grade").Str); ok {
		p.OfficialGrade = &nutrition.Grade{
			Score:    int(prod.Get("nutriscore_score").Int()),
			Category: cat,
		}
	}

	levels := prod.Get("nutrient_levels")
	if levels.Exists() {
		for key, field := range levelKeys {
			if lv := nutrition.ParseLevel(levels.Get(field).Str); lv != nutrition.LevelUnknown {
				if p.Levels == nil {
					p.Levels = make(map[nutrition.NutrientKey]nutrition.Level)
				}
				p.Levels[key] = lv
			}
		}
	}

	return p
}

func parseProfile(nutriments gjson.Result) nutrition.Profile {
	var profile nutrition.Profile

	profile.Calories = parseEnergy(nutriments)

	for key, field := range nutrimentKeys {
		m := measurement(nutriments, field, 100)
		switch key {
		case nutrition.KeyFat:
			profile.Fat = m
		case nutrition.KeySaturatedFat:
			profile.SaturatedFat = m
		case nutrition.KeyCarbohydrates:
			profile.Carbohydrates = m
		case nutrition.KeySugars:
			profile.Sugars = m
		case nutrition.KeyAddedSugars:
			profile.AddedSugars = m
		case nutrition.KeyProtein:
			profile.Protein = m
		case nutrition.KeySalt:
			profile.Salt = m
		case nutrition.KeySodium:
			profile.Sodium = m
		case nutrition.KeyFiber:
			profile.Fiber = m
		}
	}

	return profile
}

// parseEnergy prefers energy-kcal_100g and falls back to converting
// energy-kj_100g. Values outside [0, 10000] kcal are treated as feed junk.
func parseEnergy(nutriments gjson.Result) *nutrition.Measurement {
	if m := measurement(nutriments, "energy-kcal_100g", 10000); m != nil {
		return m
	}
	if m := measurement(nutriments, "energy-kj_100g", 10000*kJPerKcal); m != nil {
		return &nutrition.Measurement{Per100g: m.Per100g / kJPerKcal}
	}
	return nil
}

// measurement extracts one nutriment field, tolerating the feed's mix of
// numbers and numeric strings. Values above max are implausible for a
// per-100g measurement and normalize to absent.
func measurement(nutriments gjson.Result, field string, max float64) *nutrition.Measurement {
	v := nutriments.Get(field)
	if !v.Exists() {
		return nil
	}

	m := nutrition.ParseMeasurement(v.Value())
	if m == nil {
		utils.Log.Debug("Unparseable nutriment ", field, ": ", v.Raw)
		return nil
	}
	if m.Per100g > max {
		utils.Log.Debug("Implausible nutriment ", field, ": ", m.Per100g)
		return nil
	}
	return m
}

// firstString returns the first non-empty string field, for the feed's
// name fallback chain.
func firstString(r gjson.Result, fields ...string) string {
	for _, f := range fields {
		if s := r.Get(f).Str; s != "" {
			return s
		}
	}
	return ""
}
