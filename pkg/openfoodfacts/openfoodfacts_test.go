package openfoodfacts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodscope/foodscope/pkg/nutrition"
)

const sampleBody = `{
  "status": 1,
  "product": {
    "code": "3017620422003",
    "product_name": "Nutella",
    "brands": "Ferrero",
    "quantity": "400 g",
    "nutriscore_grade": "e",
    "nutriscore_score": 26,
    "nutrient_levels": {
      "fat": "high",
      "saturated-fat": "high",
      "sugars": "high",
      "salt": "low"
    },
    "nutriments": {
      "energy-kcal_100g": 539,
      "fat_100g": 30.9,
      "saturated-fat_100g": "10.6",
      "carbohydrates_100g": 57.5,
      "sugars_100g": 56.3,
      "proteins_100g": 6.3,
      "salt_100g": 0.107,
      "fiber_100g": 3.5
    }
  }
}`

func stubServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithBaseURL(srv.URL)
}

func TestGetProduct(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/product/3017620422003.json", r.URL.Path)
		fmt.Fprint(w, sampleBody)
	})

	p, err := client.GetProduct(context.Background(), "3017620422003")
	require.NoError(t, err)

	assert.Equal(t, "3017620422003", p.Code)
	assert.Equal(t, "Nutella", p.Name)
	assert.Equal(t, "Ferrero", p.Brands)

	require.NotNil(t, p.Profile.Calories)
	assert.InDelta(t, 539, p.Profile.Calories.Per100g, 0.001)

	// String-typed nutriment parses like a number.
	require.NotNil(t, p.Profile.SaturatedFat)
	assert.InDelta(t, 10.6, p.Profile.SaturatedFat.Per100g, 0.001)

	// Fields the feed did not send stay absent.
	assert.Nil(t, p.Profile.AddedSugars)
	assert.Nil(t, p.Profile.Sodium)

	require.NotNil(t, p.OfficialGrade)
	assert.Equal(t, "E", p.OfficialGrade.Category)
	assert.Equal(t, 26, p.OfficialGrade.Score)

	assert.Equal(t, nutrition.LevelHigh, p.Levels[nutrition.KeySugars])
	assert.Equal(t, nutrition.LevelLow, p.Levels[nutrition.KeySalt])
}

func TestGetProductNotFoundStatusZero(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": 0, "status_verbose": "product not found"}`)
	})

	_, err := client.GetProduct(context.Background(), "40084077")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProductBarcodeVariantRetry(t *testing.T) {
	var paths []string
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/api/v2/product/0737628064502.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"status": 1, "product": {"code": "737628064502", "product_name": "Rice Noodles"}}`)
	})

	p, err := client.GetProduct(context.Background(), "0737628064502")
	require.NoError(t, err)
	assert.Equal(t, "Rice Noodles", p.Name)
	assert.Equal(t, []string{
		"/api/v2/product/0737628064502.json",
		"/api/v2/product/737628064502.json",
	}, paths)
}

func TestGetProductNoVariantRetryForShortCodes(t *testing.T) {
	var calls int
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetProduct(context.Background(), "04084077")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, calls)
}

func TestGetProductInvalidBarcode(t *testing.T) {
	client := NewClient()
	for _, code := range []string{"", "abc", "12ab34", "12"} {
		_, err := client.GetProduct(context.Background(), code)
		require.Error(t, err, code)
		assert.False(t, errors.Is(err, ErrNotFound), code)
	}
}

func TestParseProductEnergyKJFallback(t *testing.T) {
	doc := `{"product": {"nutriments": {"energy-kj_100g": 2092}}}`
	p := parseProduct("123", doc)
	require.NotNil(t, p.Profile.Calories)
	assert.InDelta(t, 500, p.Profile.Calories.Per100g, 0.1)
}

func TestParseProductJunkNutriments(t *testing.T) {
	doc := `{"product": {
		"product_name": "Mystery Snack",
		"nutriscore_grade": "unknown",
		"nutriments": {
			"energy-kcal_100g": "n/a",
			"fat_100g": 123456,
			"sugars_100g": -3,
			"proteins_100g": "7.7"
		}
	}}`
	p := parseProduct("123", doc)

	assert.Nil(t, p.Profile.Calories)     // unparseable string
	assert.Nil(t, p.Profile.Fat)          // implausible for per-100g
	assert.Nil(t, p.Profile.Sugars)       // negative
	assert.Nil(t, p.OfficialGrade)        // "unknown" is not a grade
	require.NotNil(t, p.Profile.Protein)  // numeric string is fine
	assert.InDelta(t, 7.7, p.Profile.Protein.Per100g, 0.001)
}

func TestParseProductNameFallbackChain(t *testing.T) {
	doc := `{"product": {"product_name_en": "Oat Drink", "generic_name": "Drink"}}`
	p := parseProduct("123", doc)
	assert.Equal(t, "Oat Drink", p.Name)
	assert.Equal(t, "123", p.Code)
}
