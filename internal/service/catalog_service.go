package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/model"
	"github.com/pedroluizchagas/thv/internal/repository"
)

// catalogCacheTTL keeps public catalog pages hot for a short window. The
// catalog tolerates slightly stale data; 60s bounds the staleness.
const catalogCacheTTL = 60 * time.Second

// CatalogCache is a byte-value cache with TTL. The Redis implementation
// lives in infra; a nil cache disables caching entirely.
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

type CatalogService interface {
	ListProducts(ctx context.Context, filter dto.CatalogFilter) (*dto.CatalogListResponse, error)
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        CatalogCache
}

func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, cache CatalogCache) CatalogService {
	return &catalogService{productRepo: productRepo, categoryRepo: categoryRepo, cache: cache}
}

func (s *catalogService) ListProducts(ctx context.Context, filter dto.CatalogFilter) (*dto.CatalogListResponse, error) {
	cacheKey := fmt.Sprintf("catalog:products:%s:%s:%d:%d", filter.Category, filter.Search, filter.Page, filter.Limit)
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, cacheKey); ok {
			var cached dto.CatalogListResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	productFilter := dto.ProductFilter{
		Search: filter.Search,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}
	if filter.Category != "" {
		id, err := s.categoryIDBySlug(ctx, filter.Category)
		if err != nil {
			// Unknown slug: empty page, not an error.
			return &dto.CatalogListResponse{
				Data: []dto.CatalogProductResponse{}, Page: filter.Page, Limit: filter.Limit,
			}, nil
		}
		productFilter.CategoryID = id
	}

	products, total, err := s.productRepo.List(ctx, productFilter)
	if err != nil {
		return nil, err
	}

	resp := &dto.CatalogListResponse{
		Data:  make([]dto.CatalogProductResponse, 0, len(products)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range products {
		resp.Data = append(resp.Data, catalogProductToResponse(&products[i]))
	}

	if s.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			s.cache.Set(ctx, cacheKey, raw, catalogCacheTTL)
		}
	}
	return resp, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	cacheKey := "catalog:categories"
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, cacheKey); ok {
			var cached []dto.CategoryResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, *categoryToResponse(&categories[i]))
	}

	if s.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			s.cache.Set(ctx, cacheKey, raw, catalogCacheTTL)
		}
	}
	return out, nil
}

func (s *catalogService) categoryIDBySlug(ctx context.Context, slug string) (string, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range categories {
		if c.Slug == slug {
			return c.ID.String(), nil
		}
	}
	return "", fmt.Errorf("categoria %q não encontrada", slug)
}

func catalogProductToResponse(p *model.Product) dto.CatalogProductResponse {
	resp := dto.CatalogProductResponse{
		ID:          p.ID.String(),
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		SalePrice:   p.SalePrice,
		Unit:        p.Unit,
		Brand:       p.Brand,
		Application: p.Application,
		Photo1URL:   p.Photo1URL,
		Photo2URL:   p.Photo2URL,
		Photo3URL:   p.Photo3URL,
		InStock:     p.StockQuantity > 0,
	}
	if p.Category != nil {
		name := p.Category.Name
		resp.Category = &name
	}
	return resp
}
