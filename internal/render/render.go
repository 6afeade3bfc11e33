// Package render turns scan reports into terminal output. Pure
// presentation: every color decision is derived from the core's enums, and
// the positive-nutrient inversion comes from nutrition.HigherIsBetter so
// this stays the only place that renders it.
package render

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/foodscope/foodscope/pkg/nutrition"
	"github.com/foodscope/foodscope/pkg/scan"
	"github.com/foodscope/foodscope/pkg/storage"
)

var (
	gradeColors = map[string]*color.Color{
		"A": color.New(color.FgGreen, color.Bold),
		"B": color.New(color.FgGreen),
		"C": color.New(color.FgYellow, color.Bold),
		"D": color.New(color.FgRed),
		"E": color.New(color.FgRed, color.Bold),
	}

	goodColor = color.New(color.FgGreen)
	midColor  = color.New(color.FgYellow)
	badColor  = color.New(color.FgRed)
)

// factRows fixes the display order of the nutrition facts table.
var factRows = []struct {
	key   nutrition.NutrientKey
	label string
	unit  string
}{
	{nutrition.KeyCalories, "Calories", "kcal"},
	{nutrition.KeyFat, "Fat", "g"},
	{nutrition.KeySaturatedFat, "Saturated fat", "g"},
	{nutrition.KeyCarbohydrates, "Carbohydrates", "g"},
	{nutrition.KeySugars, "Sugars", "g"},
	{nutrition.KeyAddedSugars, "Added sugars", "g"},
	{nutrition.KeyFiber, "Fiber", "g"},
	{nutrition.KeyProtein, "Protein", "g"},
	{nutrition.KeySalt, "Salt", "g"},
	{nutrition.KeySodium, "Sodium", "g"},
}

// GradeBadge returns the colored letter for terminal display.
func GradeBadge(letter string) string {
	if c, ok := gradeColors[letter]; ok {
		return c.Sprint(letter)
	}
	return "-"
}

// levelLabel colors a level by whether it is favorable for this nutrient:
// "high" is good for fiber and protein and bad elsewhere, "low" the
// reverse, "moderate" always yellow.
func levelLabel(key nutrition.NutrientKey, lv nutrition.Level) string {
	switch lv {
	case nutrition.LevelModerate:
		return midColor.Sprint("moderate")
	case nutrition.LevelLow:
		if nutrition.HigherIsBetter(key) {
			return badColor.Sprint("low")
		}
		return goodColor.Sprint("low")
	case nutrition.LevelHigh:
		if nutrition.HigherIsBetter(key) {
			return goodColor.Sprint("high")
		}
		return badColor.Sprint("high")
	}
	return ""
}

// Report prints the full product view: header, grade, facts table,
// characteristics and narrative.
func Report(w io.Writer, r *scan.Report) error {
	p := r.Product

	fmt.Fprintf(w, "%s", p.Name)
	if p.Brands != "" {
		fmt.Fprintf(w, " by %s", p.Brands)
	}
	if p.Quantity != "" {
		fmt.Fprintf(w, " (%s)", p.Quantity)
	}
	fmt.Fprintf(w, "\nBarcode: %s\n", p.Code)

	if r.Grade != "" {
		source := "official"
		if r.GradeComputed {
			source = "estimated"
		}
		fmt.Fprintf(w, "Nutri-Score: %s (%s)\n", GradeBadge(r.Grade), source)
	} else {
		fmt.Fprintln(w, "Nutri-Score: not enough data")
	}
	fmt.Fprintln(w)

	if err := factsTable(w, r); err != nil {
		return err
	}

	if len(r.Characteristics) > 0 {
		fmt.Fprintln(w)
		for _, c := range r.Characteristics {
			if c.Positive {
				fmt.Fprintf(w, "  %s %s\n", goodColor.Sprint("+"), c.Label)
			} else {
				fmt.Fprintf(w, "  %s %s\n", badColor.Sprint("-"), c.Label)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", r.Narrative)
	return nil
}

func factsTable(w io.Writer, r *scan.Report) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Nutrient", "Per 100g", "Level"})

	var data [][]string
	for _, row := range factRows {
		m := r.Product.Profile.Get(row.key)
		if m == nil {
			continue
		}
		lv := ""
		if l, ok := r.Levels[row.key]; ok {
			lv = levelLabel(row.key, l)
		}
		data = append(data, []string{
			row.label,
			strconv.FormatFloat(m.Per100g, 'f', -1, 64) + " " + row.unit,
			lv,
		})
	}
	if len(data) == 0 {
		fmt.Fprintln(w, "No nutrition facts available for this product.")
		return nil
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// Thresholds prints the classification reference table shown to users and
// shared with the serve API.
func Thresholds(w io.Writer, t nutrition.Thresholds) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Nutrient", "Low below", "High above", "Good when"})

	var data [][]string
	for _, row := range factRows {
		band, ok := t[row.key]
		if !ok {
			continue
		}
		direction := "low"
		if nutrition.HigherIsBetter(row.key) {
			direction = "high"
		}
		data = append(data, []string{
			row.label,
			fmt.Sprintf("%g %s", band.Low, row.unit),
			fmt.Sprintf("%g %s", band.High, row.unit),
			direction,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// History prints scan history entries, most recent first.
func History(w io.Writer, entries []storage.HistoryEntry) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "SCANNED\tBARCODE\tGRADE\tNAME")
	for _, e := range entries {
		grade := e.Grade
		if grade == "" {
			grade = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ScannedAt.Format("2006-01-02 15:04"), e.Code, grade, e.Name)
	}
	tw.Flush()
}

// Favorites prints the favorites list.
func Favorites(w io.Writer, entries []storage.FavoriteEntry) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ADDED\tBARCODE\tNAME")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.AddedAt.Format("2006-01-02"), e.Code, e.Name)
	}
	tw.Flush()
}
