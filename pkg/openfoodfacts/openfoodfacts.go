package openfoodfacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/foodscope/foodscope/internal/utils"
	"github.com/foodscope/foodscope/pkg/nutrition"
)

const (
	defaultBaseURL = "https://world.openfoodfacts.org"
	userAgent      = "foodscope/1.0 (https://github.com/foodscope/foodscope)"
)

// ErrNotFound is returned when the database has no product for a barcode
// (after variant retries). Callers surface it as "product not found"; it is
// not a transport failure.
var ErrNotFound = errors.New("openfoodfacts: product not found")

// Product is a normalized Open Food Facts record: identity fields plus the
// parsed nutrition profile, the official grade when the source supplies a
// valid one, and any source-supplied nutrient levels.
type Product struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Brands   string `json:"brands,omitempty"`
	Quantity string `json:"quantity,omitempty"`

	Profile       nutrition.Profile                         `json:"profile"`
	OfficialGrade *nutrition.Grade                          `json:"official_grade,omitempty"`
	Levels        map[nutrition.NutrientKey]nutrition.Level `json:"levels,omitempty"`
}

// Client talks to the Open Food Facts product API.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

// NewClient builds a client with retry/backoff suitable for the public API.
func NewClient() *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = stdlog.New(io.Discard, "", 0)
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.HTTPClient.Timeout = 15 * time.Second

	return &Client{
		baseURL: defaultBaseURL,
		http:    retryClient,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// GetProduct looks up a barcode. Open Food Facts stores some products
// under EAN-13 codes and some under shorter UPC codes, so when a 13-digit
// barcode starting with '0' misses, the lookup is retried with the leading
// digit stripped.
func (c *Client) GetProduct(ctx context.Context, barcode string) (*Product, error) {
	barcode = strings.TrimSpace(barcode)
	if !isDigits(barcode) || len(barcode) < 4 {
		return nil, fmt.Errorf("openfoodfacts: invalid barcode %q", barcode)
	}

	p, err := c.fetch(ctx, barcode)
	if errors.Is(err, ErrNotFound) && len(barcode) == 13 && strings.HasPrefix(barcode, "0") {
		utils.Log.Debug("Barcode ", barcode, " not found, retrying without leading zero")
		return c.fetch(ctx, barcode[1:])
	}
	return p, err
}

func (c *Client) fetch(ctx context.Context, barcode string) (*Product, error) {
	url := c.baseURL + "/api/v2/product/" + barcode + ".json"

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openfoodfacts: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openfoodfacts: unexpected status %d for barcode %s", res.StatusCode, barcode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	// The API reports misses with status 200 and "status": 0 in the body.
	doc := string(body)
	if gjson.Get(doc, "status").Int() != 1 {
		return nil, ErrNotFound
	}

	return parseProduct(barcode, doc), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
