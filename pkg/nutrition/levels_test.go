package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	thresholds := DefaultThresholds()

	tests := []struct {
		name        string
		key         NutrientKey
		measurement *Measurement
		sourceLevel Level
		want        Level
	}{
		{"source level wins over measurement", KeyFat, m(50), LevelLow, LevelLow},
		{"below low band", KeySugars, m(2), LevelUnknown, LevelLow},
		{"exactly on low band is moderate", KeySugars, m(5), LevelUnknown, LevelModerate},
		{"inside band", KeySugars, m(10), LevelUnknown, LevelModerate},
		{"exactly on high band is moderate", KeySugars, m(22.5), LevelUnknown, LevelModerate},
		{"above high band", KeySugars, m(30), LevelUnknown, LevelHigh},
		{"salt low band", KeySalt, m(0.1), LevelUnknown, LevelLow},
		{"no data at all", KeyFiber, nil, LevelUnknown, LevelUnknown},
		{"no band for key", KeyAddedSugars, m(4), LevelUnknown, LevelUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.key, tt.measurement, tt.sourceLevel, thresholds)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyCustomThresholds(t *testing.T) {
	custom := Thresholds{KeySugars: {Low: 1, High: 2}}
	assert.Equal(t, LevelHigh, Classify(KeySugars, m(3), LevelUnknown, custom))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelLow, ParseLevel("LOW"))
	assert.Equal(t, LevelModerate, ParseLevel(" moderate "))
	assert.Equal(t, LevelHigh, ParseLevel("high"))
	assert.Equal(t, LevelUnknown, ParseLevel("extreme"))
	assert.Equal(t, LevelUnknown, ParseLevel(""))
}

func TestHigherIsBetter(t *testing.T) {
	assert.True(t, HigherIsBetter(KeyProtein))
	assert.True(t, HigherIsBetter(KeyFiber))
	assert.False(t, HigherIsBetter(KeySugars))
	assert.False(t, HigherIsBetter(KeySalt))
	assert.False(t, HigherIsBetter(KeyCalories))
}

func TestDefaultThresholdsCoverRequiredKeys(t *testing.T) {
	tbl := DefaultThresholds()
	for _, key := range []NutrientKey{
		KeyCalories, KeyFat, KeySaturatedFat, KeySugars,
		KeySalt, KeyProtein, KeyFiber, KeyCarbohydrates,
	} {
		band, ok := tbl[key]
		assert.True(t, ok, "missing band for %s", key)
		assert.Less(t, band.Low, band.High, "band for %s", key)
	}
}
