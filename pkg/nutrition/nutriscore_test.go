package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func m(v float64) *Measurement {
	return &Measurement{Per100g: v}
}

// TestCalculateConcreteScenario verifies the worked example: 250 kcal,
// 8g saturated fat, 20g sugars, 1.8g salt, 2g fiber, 12g protein.
func TestCalculateConcreteScenario(t *testing.T) {
	p := Profile{
		Calories:     m(250), // below 335 -> 0 points
		SaturatedFat: m(8),   // 8 points
		Sugars:       m(20),  // between 18 and 22.5 -> 4 points
		Salt:         m(1.8), // 720mg sodium -> 8 points
		Fiber:        m(2),   // between 1.9 and 2.8 -> 2 points
		Protein:      m(12),  // above 8 -> 5 points
	}

	g := Calculate(p)
	require.NotNil(t, g)
	assert.Equal(t, 13, g.Score) // 20 negative - 7 positive
	assert.Equal(t, "D", g.Category)
}

func TestCalculateDeterminism(t *testing.T) {
	p := Profile{
		Calories:     m(480),
		SaturatedFat: m(3.3),
		Sugars:       m(12),
		Sodium:       m(0.45),
		Fiber:        m(1.2),
	}
	first := Calculate(p)
	second := Calculate(p)
	require.NotNil(t, first)
	assert.Equal(t, *first, *second)
}

func TestSufficiencyGate(t *testing.T) {
	base := func() Profile {
		return Profile{
			Calories:     m(100),
			SaturatedFat: m(2),
			Sugars:       m(6),
			Salt:         m(0.5),
		}
	}

	t.Run("minimum viable profile scores", func(t *testing.T) {
		require.NotNil(t, Calculate(base()))
	})

	t.Run("missing calories fails", func(t *testing.T) {
		p := base()
		p.Calories = nil
		assert.Nil(t, Calculate(p))
	})

	t.Run("missing saturated fat fails", func(t *testing.T) {
		p := base()
		p.SaturatedFat = nil
		assert.Nil(t, Calculate(p))
	})

	t.Run("missing sugars fails", func(t *testing.T) {
		p := base()
		p.Sugars = nil
		assert.Nil(t, Calculate(p))
	})

	t.Run("sodium substitutes for salt", func(t *testing.T) {
		p := base()
		p.Salt = nil
		p.Sodium = m(0.2)
		require.NotNil(t, Calculate(p))
	})

	t.Run("missing both salt and sodium fails", func(t *testing.T) {
		p := base()
		p.Salt = nil
		assert.Nil(t, Calculate(p))
	})

	t.Run("calories alone fails", func(t *testing.T) {
		assert.Nil(t, Calculate(Profile{Calories: m(50)}))
	})

	t.Run("explicit zeros still count as present", func(t *testing.T) {
		p := Profile{
			Calories:     m(0),
			SaturatedFat: m(0),
			Sugars:       m(0),
			Sodium:       m(0),
		}
		g := Calculate(p)
		require.NotNil(t, g)
		assert.Equal(t, "A", g.Category)
	})
}

// TestGradeBoundaries pins the exact score-to-letter cutoffs.
func TestGradeBoundaries(t *testing.T) {
	tests := []struct {
		score    int
		category string
	}{
		{-10, "A"},
		{-1, "A"},
		{0, "B"},
		{2, "B"},
		{3, "C"},
		{10, "C"},
		{11, "D"},
		{18, "D"},
		{19, "E"},
		{40, "E"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.category, categoryForScore(tt.score), "score %d", tt.score)
	}
}

func TestBucketPoints(t *testing.T) {
	tests := []struct {
		name        string
		value       float64
		breakpoints []float64
		expected    int
	}{
		{"below first breakpoint", 334, energyBreakpoints, 0},
		{"exactly on a breakpoint counts", 335, energyBreakpoints, 1},
		{"top energy bucket", 4000, energyBreakpoints, 10},
		{"saturated fat integer steps", 8, satFatBreakpoints, 8},
		{"saturated fat above cap", 25, satFatBreakpoints, 10},
		{"sugars mid bucket", 20, sugarsBreakpoints, 4},
		{"sodium 720mg", 720, sodiumBreakpoints, 8},
		{"fiber mid bucket", 2, fiberBreakpoints, 2},
		{"protein saturates at five", 30, proteinBreakpoints, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, bucketPoints(tt.value, tt.breakpoints))
		})
	}
}

// TestPositivePointsCapPerComponent: fiber and protein cap at 5 each, so
// the positive ceiling is 10, not a shared 5.
func TestPositivePointsCapPerComponent(t *testing.T) {
	p := Profile{
		Calories:     m(0),
		SaturatedFat: m(0),
		Sugars:       m(0),
		Salt:         m(0),
		Fiber:        m(50),
		Protein:      m(50),
	}
	g := Calculate(p)
	require.NotNil(t, g)
	assert.Equal(t, -10, g.Score)
}

// TestMonotonicity: raising any negative input never lowers the score, and
// raising fiber or protein never raises it.
func TestMonotonicity(t *testing.T) {
	base := Profile{
		Calories:     m(400),
		SaturatedFat: m(4),
		Sugars:       m(10),
		Salt:         m(0.8),
		Fiber:        m(2),
		Protein:      m(5),
	}
	baseScore := Calculate(base).Score

	bump := func(mutate func(*Profile)) int {
		p := base
		mutate(&p)
		g := Calculate(p)
		require.NotNil(t, g)
		return g.Score
	}

	assert.GreaterOrEqual(t, bump(func(p *Profile) { p.Calories = m(800) }), baseScore)
	assert.GreaterOrEqual(t, bump(func(p *Profile) { p.SaturatedFat = m(9) }), baseScore)
	assert.GreaterOrEqual(t, bump(func(p *Profile) { p.Sugars = m(30) }), baseScore)
	assert.GreaterOrEqual(t, bump(func(p *Profile) { p.Salt = m(2.4) }), baseScore)
	assert.LessOrEqual(t, bump(func(p *Profile) { p.Fiber = m(6) }), baseScore)
	assert.LessOrEqual(t, bump(func(p *Profile) { p.Protein = m(20) }), baseScore)
}

func TestSaltToSodiumDerivation(t *testing.T) {
	// 1.8g salt -> 720mg sodium.
	assert.InDelta(t, 720, saltToSodiumMg(1.8), 0.001)

	// When both are present, sodium wins over the salt derivation.
	p := Profile{
		Calories:     m(0),
		SaturatedFat: m(0),
		Sugars:       m(0),
		Salt:         m(10),     // would be 4000mg -> 10 points
		Sodium:       m(0.0001), // 0.1mg -> 0 points
	}
	g := Calculate(p)
	require.NotNil(t, g)
	assert.Equal(t, 0, g.Score)
}

func TestDisplayGrade(t *testing.T) {
	profileD := Profile{
		Calories:     m(250),
		SaturatedFat: m(8),
		Sugars:       m(20),
		Salt:         m(1.8),
	}

	t.Run("official grade wins over computed", func(t *testing.T) {
		got, ok := DisplayGrade(&Grade{Score: 1, Category: "B"}, profileD)
		require.True(t, ok)
		assert.Equal(t, "B", got)
	})

	t.Run("falls back to computed grade", func(t *testing.T) {
		got, ok := DisplayGrade(nil, profileD)
		require.True(t, ok)
		assert.Equal(t, "D", got)
	})

	t.Run("no grade at all", func(t *testing.T) {
		_, ok := DisplayGrade(nil, Profile{Calories: m(50)})
		assert.False(t, ok)
	})
}
