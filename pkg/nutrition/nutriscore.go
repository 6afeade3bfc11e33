package nutrition

// Nutri-Score point buckets. A value earns one point per breakpoint it
// meets or exceeds, so the tables below read as "points 1..N".
var (
	energyBreakpoints  = []float64{335, 670, 1005, 1340, 1675, 2010, 2345, 2680, 3015, 3350} // kcal/100g
	satFatBreakpoints  = []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}                            // g/100g
	sugarsBreakpoints  = []float64{4.5, 9, 13.5, 18, 22.5, 27, 31, 36, 40, 45}               // g/100g
	sodiumBreakpoints  = []float64{90, 180, 270, 360, 450, 540, 630, 720, 810, 900}          // mg/100g
	fiberBreakpoints   = []float64{0.9, 1.9, 2.8, 3.7, 4.7}                                  // g/100g
	proteinBreakpoints = []float64{1.6, 3.2, 4.8, 6.4, 8}                                    // g/100g
)

// saltToSodiumMg converts grams of salt per 100g to milligrams of sodium
// per 100g (salt is 40% sodium by mass: g * 1000 / 2.5).
func saltToSodiumMg(saltG float64) float64 {
	return saltG * 1000 / 2.5
}

func bucketPoints(value float64, breakpoints []float64) int {
	points := 0
	for _, bp := range breakpoints {
		if value >= bp {
			points++
		}
	}
	return points
}

// sufficient implements the minimum-data gate: at least 3 of the 7 scoring
// nutrients present, and calories, saturated fat, sugars and one of
// salt/sodium all present. Without that much data a computed grade would
// be noise, so Calculate refuses instead.
func sufficient(p Profile) bool {
	present := 0
	for _, m := range []*Measurement{p.Calories, p.SaturatedFat, p.Sugars, p.Salt, p.Sodium, p.Fiber, p.Protein} {
		if m != nil {
			present++
		}
	}
	if present < 3 {
		return false
	}
	if p.Calories == nil || p.SaturatedFat == nil || p.Sugars == nil {
		return false
	}
	return p.Salt != nil || p.Sodium != nil
}

// Calculate computes a Nutri-Score style grade from a nutrition profile.
// It returns nil when the profile does not carry enough data to score;
// otherwise it always returns a grade.
//
// Negative points come from energy, saturated fat, sugars and sodium
// (0-10 each); positive points from fiber and protein, each capped at 5
// independently for a positive ceiling of 10. The official algorithm's
// fruit/vegetable/nut bonus is not computed because the feed carries no
// ingredient percentages; grades for produce-heavy products therefore
// skew slightly pessimistic.
func Calculate(p Profile) *Grade {
	if !sufficient(p) {
		return nil
	}

	negative := bucketPoints(p.Calories.Per100g, energyBreakpoints)
	negative += bucketPoints(p.SaturatedFat.Per100g, satFatBreakpoints)
	negative += bucketPoints(p.Sugars.Per100g, sugarsBreakpoints)

	var sodiumMg float64
	if p.Sodium != nil {
		sodiumMg = p.Sodium.Per100g * 1000
	} else if p.Salt != nil {
		sodiumMg = saltToSodiumMg(p.Salt.Per100g)
	}
	negative += bucketPoints(sodiumMg, sodiumBreakpoints)

	positive := 0
	if p.Fiber != nil {
		positive += bucketPoints(p.Fiber.Per100g, fiberBreakpoints)
	}
	if p.Protein != nil {
		positive += bucketPoints(p.Protein.Per100g, proteinBreakpoints)
	}

	score := negative - positive
	return &Grade{Score: score, Category: categoryForScore(score)}
}

func categoryForScore(score int) string {
	switch {
	case score <= -1:
		return "A"
	case score <= 2:
		return "B"
	case score <= 10:
		return "C"
	case score <= 18:
		return "D"
	default:
		return "E"
	}
}

// DisplayGrade picks the grade to show for a product: the official grade
// from the source database verbatim when one exists, otherwise the locally
// computed fallback. A computed grade never overrides an official one.
// The second return is false when neither is available.
func DisplayGrade(official *Grade, p Profile) (string, bool) {
	if official != nil {
		return official.Category, true
	}
	if g := Calculate(p); g != nil {
		return g.Category, true
	}
	return "", false
}
