package service

import (
	"cmp"
	"context"
	stderrors "errors"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/api"
	"github.com/aaravmahajanofficial/storefront-client/internal/cache"
	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	"github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
)

// ErrStaleResult is returned for a response that arrived after a newer
// query was issued. The response is dropped.
var ErrStaleResult = stderrors.New("catalog result superseded by a newer query")

const sortByRating = "rating"

type Result struct {
	Products []models.Product `json:"products"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Total    int              `json:"total"`
	HasNext  bool             `json:"has_next"`
}

// CatalogService owns the catalog query. Every filter change resets the page
// and re-fetches; each fetch carries a generation so only the newest result
// is applied.
type CatalogService struct {
	api   CatalogAPI
	cache cache.Cache
	cfg   *config.Catalog
	ttl   time.Duration

	mu         sync.Mutex
	query      models.CatalogQuery
	generation uint64
	result     *Result
}

func NewCatalogService(catalogAPI CatalogAPI, c cache.Cache, cfg *config.Catalog, cacheCfg *config.CacheConfig) *CatalogService {
	s := &CatalogService{
		api:   catalogAPI,
		cache: c,
		cfg:   cfg,
		query: models.CatalogQuery{SortOrder: models.SortDesc, Page: 1, PageSize: cfg.PageSize},
	}

	if cacheCfg != nil {
		s.ttl = cacheCfg.DefaultTTL
	}

	return s
}

func (s *CatalogService) Query() models.CatalogQuery {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.query
	q.Categories = slices.Clone(s.query.Categories)

	return q
}

// Result is the last applied result, nil before the first fetch.
func (s *CatalogService) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.result
}

func (s *CatalogService) SetSearch(ctx context.Context, term string) (*Result, error) {
	return s.update(ctx, func(q *models.CatalogQuery) { q.Search = term }, false)
}

func (s *CatalogService) ToggleCategory(ctx context.Context, category string) (*Result, error) {
	return s.update(ctx, func(q *models.CatalogQuery) { q.ToggleCategory(category) }, false)
}

func (s *CatalogService) SetCategories(ctx context.Context, categories []string) (*Result, error) {
	return s.update(ctx, func(q *models.CatalogQuery) {
		q.Categories = nil
		for _, c := range categories {
			if c != "" && !q.HasCategory(c) {
				q.ToggleCategory(c)
			}
		}
	}, false)
}

// SetPriceRange clamps the range to the configured slider bounds.
func (s *CatalogService) SetPriceRange(ctx context.Context, r models.PriceRange) (*Result, error) {
	return s.update(ctx, func(q *models.CatalogQuery) {
		if r.IsZero() {
			q.Price = r
			return
		}
		q.Price = r.Clamp(s.cfg.MaxPrice, s.cfg.PriceStep)
	}, false)
}

func (s *CatalogService) SetMinRating(ctx context.Context, rating int) (*Result, error) {
	if rating < 0 || rating > 5 {
		return nil, errors.AddValidationError("MinRating", "must be between 0 and 5")
	}

	return s.update(ctx, func(q *models.CatalogQuery) { q.MinRating = rating }, false)
}

func (s *CatalogService) SetInStock(ctx context.Context, inStock bool) (*Result, error) {
	return s.update(ctx, func(q *models.CatalogQuery) { q.InStock = inStock }, false)
}

func (s *CatalogService) SetSort(ctx context.Context, sortBy, sortOrder string) (*Result, error) {
	if sortBy != "" && !slices.Contains(models.CatalogSortKeys, sortBy) {
		return nil, errors.AddValidationError("SortBy", "must be one of price, name, quantity, rating")
	}

	if sortOrder != "" && sortOrder != models.SortAsc && sortOrder != models.SortDesc {
		return nil, errors.AddValidationError("SortOrder", "must be asc or desc")
	}

	return s.update(ctx, func(q *models.CatalogQuery) {
		q.SortBy = sortBy
		q.SortOrder = cmp.Or(sortOrder, models.SortDesc)
	}, false)
}

// Apply replaces the whole filter at once, as the CLI does from flags.
func (s *CatalogService) Apply(ctx context.Context, next models.CatalogQuery) (*Result, error) {
	if next.SortBy != "" && !slices.Contains(models.CatalogSortKeys, next.SortBy) {
		return nil, errors.AddValidationError("SortBy", "must be one of price, name, quantity, rating")
	}

	return s.update(ctx, func(q *models.CatalogQuery) {
		page := next.Page
		*q = next
		q.Categories = nil
		for _, c := range next.Categories {
			if c != "" && !q.HasCategory(c) {
				q.ToggleCategory(c)
			}
		}
		if !q.Price.IsZero() {
			q.Price = q.Price.Clamp(s.cfg.MaxPrice, s.cfg.PriceStep)
		}
		q.SortOrder = cmp.Or(q.SortOrder, models.SortDesc)
		q.PageSize = cmp.Or(q.PageSize, s.cfg.PageSize)
		q.Page = max(page, 1)
	}, true)
}

// SetPage moves to another page of the current filter.
func (s *CatalogService) SetPage(ctx context.Context, page int) (*Result, error) {
	if page < 1 {
		page = 1
	}

	return s.update(ctx, func(q *models.CatalogQuery) { q.Page = page }, true)
}

// Refresh re-fetches the current query.
func (s *CatalogService) Refresh(ctx context.Context) (*Result, error) {
	return s.update(ctx, func(*models.CatalogQuery) {}, true)
}

// Product is served from the cache when possible.
func (s *CatalogService) Product(ctx context.Context, id int64) (*models.Product, error) {
	key := cache.Key(cache.ProductKeyPrefix, strconv.FormatInt(id, 10))

	return cached(ctx, s.cache, key, s.ttl, func() (*models.Product, error) {
		return s.api.GetProduct(ctx, id)
	})
}

// Categories is served from the cache when possible.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	key := cache.Key(cache.CategoriesKeyPrefix, "all")

	return cached(ctx, s.cache, key, s.ttl, func() ([]string, error) {
		return s.api.Categories(ctx)
	})
}

// cached reads key from c, falling back to fetch and storing its result.
// Cache failures are logged and never fail the call.
func cached[T any](ctx context.Context, c cache.Cache, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	logger := api.LoggerFromContext(ctx)

	if c != nil {
		var value T
		found, err := c.Get(ctx, key, &value)
		if err != nil {
			logger.Warn("Cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		if found {
			return value, nil
		}
	}

	value, err := fetch()
	if err != nil {
		return value, err
	}

	if c != nil {
		if err := c.Set(ctx, key, value, ttl); err != nil {
			logger.Warn("Cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	return value, nil
}

// update mutates the query and fetches it. Unless keepPage is set the page
// goes back to 1.
func (s *CatalogService) update(ctx context.Context, mutate func(*models.CatalogQuery), keepPage bool) (*Result, error) {
	s.mu.Lock()
	mutate(&s.query)
	if !keepPage {
		s.query.Page = 1
	}
	s.generation++
	generation := s.generation
	query := s.query
	query.Categories = slices.Clone(s.query.Categories)
	s.mu.Unlock()

	products, err := s.api.ListProducts(ctx, serverQuery(query))

	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		api.LoggerFromContext(ctx).Debug("Discarding stale catalog result", slog.Uint64("generation", generation))
		return nil, ErrStaleResult
	}

	if err != nil {
		return nil, err
	}

	result := paginate(filterAndSort(products, query), query)
	s.result = result

	return result, nil
}

// serverQuery strips what the backend cannot handle: it sorts by price, name
// and quantity only.
func serverQuery(q models.CatalogQuery) *models.CatalogQuery {
	if q.SortBy == sortByRating {
		q.SortBy = ""
	}

	return &q
}

func filterAndSort(products []models.Product, q models.CatalogQuery) []models.Product {
	if q.MinRating > 0 {
		products = slices.DeleteFunc(slices.Clone(products), func(p models.Product) bool {
			return p.AverageRating < float64(q.MinRating)
		})
	}

	if q.SortBy == sortByRating {
		products = slices.Clone(products)
		slices.SortStableFunc(products, func(a, b models.Product) int {
			if q.SortOrder == models.SortAsc {
				return cmp.Compare(a.AverageRating, b.AverageRating)
			}
			return cmp.Compare(b.AverageRating, a.AverageRating)
		})
	}

	return products
}

// paginate slices the page out of the full result. The backend accepts
// page and page_size but always answers with every matching row, so a page
// past the end is empty.
func paginate(products []models.Product, q models.CatalogQuery) *Result {
	total := len(products)

	size := q.PageSize
	if size <= 0 {
		return &Result{Products: products, Page: 1, PageSize: total, Total: total}
	}

	page := max(q.Page, 1)
	start := min((page-1)*size, total)
	end := min(start+size, total)

	return &Result{
		Products: products[start:end],
		Page:     page,
		PageSize: size,
		Total:    total,
		HasNext:  end < total,
	}
}
