package scan

import (
	"github.com/foodscope/foodscope/pkg/nutrition"
	"github.com/foodscope/foodscope/pkg/openfoodfacts"
)

// Report is the full derived view of a product: the record itself plus
// everything the scoring core computes from it. This is what the CLI
// renders and the serve API returns as JSON.
type Report struct {
	Product *openfoodfacts.Product `json:"product"`

	// Grade is the display grade: the official one when the source has
	// scored the product, otherwise the locally computed fallback. Empty
	// when there is not enough data for either.
	Grade         string           `json:"grade,omitempty"`
	GradeComputed bool             `json:"grade_computed,omitempty"` // true when Grade is the local fallback
	Computed      *nutrition.Grade `json:"computed,omitempty"`

	Levels          map[nutrition.NutrientKey]nutrition.Level `json:"levels,omitempty"`
	Characteristics []nutrition.Characteristic                `json:"characteristics,omitempty"`
	Narrative       string                                    `json:"narrative"`
}

// BuildReport runs the scoring pipeline over a product. Pure; safe to call
// concurrently for many products.
func BuildReport(p *openfoodfacts.Product, thresholds nutrition.Thresholds) *Report {
	r := &Report{
		Product:  p,
		Computed: nutrition.Calculate(p.Profile),
	}

	if grade, ok := nutrition.DisplayGrade(p.OfficialGrade, p.Profile); ok {
		r.Grade = grade
		r.GradeComputed = p.OfficialGrade == nil
	}

	r.Levels = make(map[nutrition.NutrientKey]nutrition.Level)
	for key := range thresholds {
		lv := nutrition.Classify(key, p.Profile.Get(key), p.Levels[key], thresholds)
		if lv != nutrition.LevelUnknown {
			r.Levels[key] = lv
		}
	}

	r.Characteristics = nutrition.Characteristics(p.Profile)
	r.Narrative = nutrition.Narrative(r.Characteristics, r.Grade)
	return r
}
