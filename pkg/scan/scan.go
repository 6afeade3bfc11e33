// Package scan ties the lookup pipeline together: cache-first product
// fetch against Open Food Facts, then scoring and assessment of the
// result. Both the CLI commands and the serve API go through it so they
// cannot drift apart.
package scan

import (
	"context"
	"errors"
	"time"

	"github.com/foodscope/foodscope/internal/utils"
	"github.com/foodscope/foodscope/pkg/nutrition"
	"github.com/foodscope/foodscope/pkg/openfoodfacts"
	"github.com/foodscope/foodscope/pkg/storage"
)

// DefaultCacheTTL is how long a cached product is served before refetching.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Service performs barcode lookups with a local cache in front of the
// Open Food Facts client. DB may be nil, in which case every lookup goes
// to the network and nothing is recorded.
type Service struct {
	Client   *openfoodfacts.Client
	DB       *storage.DB
	CacheTTL time.Duration
}

func NewService(client *openfoodfacts.Client, db *storage.DB) *Service {
	return &Service{Client: client, DB: db, CacheTTL: DefaultCacheTTL}
}

// Lookup fetches a product by barcode, serving from cache when possible.
// Every successful lookup is appended to the scan history. The boolean
// reports whether the result came from cache.
func (s *Service) Lookup(ctx context.Context, barcode string, skipCache bool) (*openfoodfacts.Product, bool, error) {
	if s.DB != nil && !skipCache {
		if p, err := s.DB.GetProduct(ctx, barcode, s.CacheTTL); err == nil {
			utils.Log.Debug("Cache hit for barcode ", barcode)
			s.recordHistory(ctx, p)
			return p, true, nil
		} else if !errors.Is(err, storage.ErrCacheMiss) {
			utils.Log.Warn("Cache read failed: ", err)
		}
	}

	p, err := s.Client.GetProduct(ctx, barcode)
	if err != nil {
		return nil, false, err
	}

	if s.DB != nil {
		if err := s.DB.SaveProduct(ctx, p); err != nil {
			// Cache writes are best effort; the lookup already succeeded.
			utils.Log.Warn("Cache write failed: ", err)
		}
		s.recordHistory(ctx, p)
	}
	return p, false, nil
}

func (s *Service) recordHistory(ctx context.Context, p *openfoodfacts.Product) {
	grade, _ := nutrition.DisplayGrade(p.OfficialGrade, p.Profile)
	if err := s.DB.AddHistory(ctx, p.Code, p.Name, grade); err != nil {
		utils.Log.Warn("History write failed: ", err)
	}
}
