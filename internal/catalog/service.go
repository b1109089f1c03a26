package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/brazcamiseteria/storefront/internal/domain"
	"github.com/brazcamiseteria/storefront/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var ErrProductNotFound = errors.New("product not found")

// Backend is the catalog read side of the storefront backend.
type Backend interface {
	Menu(ctx context.Context) (*domain.Menu, error)
	IndexPage(ctx context.Context) (*domain.IndexPage, error)
	CategoryPaths(ctx context.Context) ([]domain.PathEntry, error)
	CategoryPage(ctx context.Context, categoryID string) (*domain.CategoryPage, error)
	ProductPaths(ctx context.Context) ([]domain.PathEntry, error)
	ProductPage(ctx context.Context, productID string) (*domain.ProductPage, error)
	CatalogPage(ctx context.Context, productID string) (*domain.CatalogPage, error)
}

type Options struct {
	// PageTTL applies to category, product and gallery pages.
	PageTTL time.Duration
	// IndexTTL applies to the home page.
	IndexTTL time.Duration
}

// Service is a read-through cache over the catalog endpoints.
type Service struct {
	backend Backend
	cache   Cache
	opts    Options
	logger  *zap.Logger
	sfg     singleflight.Group // Prevents cache stampede
}

func NewService(backend Backend, cache Cache, opts Options, logger *zap.Logger) *Service {
	return &Service{
		backend: backend,
		cache:   cache,
		opts:    opts,
		logger:  logger,
	}
}

func (s *Service) Menu(ctx context.Context) (*domain.Menu, error) {
	return load(ctx, s, "menu", s.opts.PageTTL, s.backend.Menu)
}

func (s *Service) IndexPage(ctx context.Context) (*domain.IndexPage, error) {
	return load(ctx, s, "index", s.opts.IndexTTL, s.backend.IndexPage)
}

func (s *Service) CategoryPaths(ctx context.Context) ([]domain.PathEntry, error) {
	return load(ctx, s, "paths:categories", s.opts.PageTTL, s.backend.CategoryPaths)
}

func (s *Service) CategoryPage(ctx context.Context, categoryID string) (*domain.CategoryPage, error) {
	return load(ctx, s, "category:"+categoryID, s.opts.PageTTL, func(ctx context.Context) (*domain.CategoryPage, error) {
		return s.backend.CategoryPage(ctx, categoryID)
	})
}

func (s *Service) ProductPaths(ctx context.Context) ([]domain.PathEntry, error) {
	return load(ctx, s, "paths:products", s.opts.PageTTL, s.backend.ProductPaths)
}

func (s *Service) ProductPage(ctx context.Context, productID string) (*domain.ProductPage, error) {
	return load(ctx, s, "product:"+productID, s.opts.PageTTL, func(ctx context.Context) (*domain.ProductPage, error) {
		return s.backend.ProductPage(ctx, productID)
	})
}

func (s *Service) CatalogPage(ctx context.Context, productID string) (*domain.CatalogPage, error) {
	return load(ctx, s, "gallery:"+productID, s.opts.PageTTL, func(ctx context.Context) (*domain.CatalogPage, error) {
		return s.backend.CatalogPage(ctx, productID)
	})
}

// Product returns the product record the add-to-cart flow snapshots from.
func (s *Service) Product(ctx context.Context, productID string) (*domain.Product, error) {
	page, err := s.ProductPage(ctx, productID)
	if err != nil {
		return nil, err
	}
	if page == nil || page.Product == nil {
		return nil, ErrProductNotFound
	}
	return page.Product, nil
}

func load[T any](ctx context.Context, s *Service, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	log := logger.FromContext(ctx, s.logger)

	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		var cached T
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			log.Warn("catalog cache get failed", zap.String("key", key), zap.Error(err)) // continue to backend
		}

		fresh, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.Set(setCtx, key, fresh, ttl); err != nil {
				log.Warn("catalog cache set failed", zap.String("key", key), zap.Error(err))
			}
		}()

		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
