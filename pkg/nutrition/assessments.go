package nutrition

import "strings"

// characteristicRule is one threshold claim over a single nutrient. These
// cutoffs are deliberately independent of the Thresholds classification
// table: classification drives traffic-light granularity, rules here drive
// discrete textual claims, and the two use different published cutoffs.
type characteristicRule struct {
	key   NutrientKey
	above bool // fire when value > limit; otherwise when value < limit
	limit float64
	label string
}

// Rule order is the display order: positives first, then negatives, each
// in declaration order. Consumers rely on it and must not re-sort.
var positiveRules = []characteristicRule{
	{KeyFiber, true, 5, "high in fiber"},
	{KeyProtein, true, 10, "high in protein"},
	{KeySugars, false, 5, "low in sugars"},
	{KeySalt, false, 0.3, "low in salt"},
	{KeyFat, false, 3, "low in fat"},
	{KeySaturatedFat, false, 1.5, "low in saturated fat"},
	{KeyCalories, false, 100, "low in calories"},
}

var negativeRules = []characteristicRule{
	{KeyFat, true, 20, "high in fat"},
	{KeySaturatedFat, true, 5, "high in saturated fat"},
	{KeyCalories, true, 500, "high in calories"},
	{KeySugars, true, 15, "high in sugars"},
	{KeySalt, true, 1.5, "high in salt"},
	{KeyCarbohydrates, true, 30, "high in carbohydrates"},
	{KeySodium, true, 0.6, "high in sodium"},
	{KeyAddedSugars, true, 0, "sweetened with added sugars"},
}

func (r characteristicRule) fires(p Profile) bool {
	m := p.Get(r.key)
	if m == nil {
		// Absent nutrients never produce a claim.
		return false
	}
	if r.above {
		return m.Per100g > r.limit
	}
	return m.Per100g < r.limit
}

// Characteristics evaluates every claim rule against the profile and
// returns the ones that fire, positives before negatives, in fixed order.
func Characteristics(p Profile) []Characteristic {
	var out []Characteristic
	for _, r := range positiveRules {
		if r.fires(p) {
			out = append(out, Characteristic{Positive: true, Label: r.label})
		}
	}
	for _, r := range negativeRules {
		if r.fires(p) {
			out = append(out, Characteristic{Positive: false, Label: r.label})
		}
	}
	return out
}

// Narrative composes the characteristics into a short readable paragraph
// with a closing recommendation. grade is the display grade letter ("A".."E")
// or empty when no grade is available. The result is never empty.
func Narrative(cs []Characteristic, grade string) string {
	if len(cs) == 0 {
		return "This product has a balanced nutritional profile with no standout characteristics."
	}

	var positives, negatives []string
	for _, c := range cs {
		if c.Positive {
			positives = append(positives, strings.ToLower(c.Label))
		} else {
			negatives = append(negatives, strings.ToLower(c.Label))
		}
	}

	var sentences []string
	if len(positives) > 0 {
		sentences = append(sentences, "This product is "+joinList(positives)+".")
	}
	if len(negatives) > 0 {
		if len(positives) > 0 {
			sentences = append(sentences, "However, it is "+joinList(negatives)+".")
		} else {
			sentences = append(sentences, "This product is "+joinList(negatives)+".")
		}
	}
	sentences = append(sentences, recommendation(grade, len(positives)-len(negatives)))
	return strings.Join(sentences, " ")
}

// recommendation picks one of four closing tiers from the grade letter and
// the positive-minus-negative claim differential.
func recommendation(grade string, diff int) string {
	switch {
	case grade == "A" || (grade == "B" && diff >= 2):
		return "An excellent choice for a healthy diet."
	case grade == "B" || (grade == "C" && diff >= 1):
		return "A good choice when consumed in moderation."
	case grade == "C" || grade == "D" || (diff >= -1 && diff <= 1):
		return "Moderately healthy; best balanced with healthier options."
	default:
		return "Best to limit consumption of this product."
	}
}

// joinList renders a list as natural English: "a", "a and b", "a, b and c".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
