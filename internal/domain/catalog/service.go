package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/example/luxa-shop/internal/apperr"
)

// MaxImageSize is the largest product image accepted for upload.
const MaxImageSize = 5 * 1024 * 1024

const highlightLimit = 4

// Filter selects products. Zero values mean "any".
type Filter struct {
	Category     Category
	IsNew        *bool
	IsBestseller *bool
	Limit        int
}

// Repository is the products table of the persistence service.
type Repository interface {
	List(ctx context.Context, f Filter) ([]*Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	Insert(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, p *Product) (*Product, error)
	Delete(ctx context.Context, id string) error
}

// ImageStore is the object storage bucket holding product images.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

type Service struct {
	repo   Repository
	images ImageStore
}

func NewService(repo Repository, images ImageStore) *Service {
	return &Service{repo: repo, images: images}
}

// List returns products newest first, optionally restricted to a category.
func (s *Service) List(ctx context.Context, category Category) ([]*Product, error) {
	if category != "" && !category.Valid() {
		return nil, apperr.Validation("category", fmt.Sprintf("unknown category %q", category))
	}
	products, err := s.repo.List(ctx, Filter{Category: category})
	return products, apperr.Remote("list products", err)
}

func (s *Service) Bestsellers(ctx context.Context) ([]*Product, error) {
	yes := true
	products, err := s.repo.List(ctx, Filter{IsBestseller: &yes, Limit: highlightLimit})
	return products, apperr.Remote("list bestsellers", err)
}

func (s *Service) NewArrivals(ctx context.Context) ([]*Product, error) {
	yes := true
	products, err := s.repo.List(ctx, Filter{IsNew: &yes, Limit: highlightLimit})
	return products, apperr.Remote("list new products", err)
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.Get(ctx, id)
	return p, apperr.Remote("get product", err)
}

func (s *Service) BySlug(ctx context.Context, slug string) (*Product, error) {
	if slug == "" {
		return nil, apperr.Validation("slug", "is required")
	}
	p, err := s.repo.GetBySlug(ctx, slug)
	return p, apperr.Remote("get product by slug", err)
}

// Create inserts a new product. An empty slug is derived from the name.
func (s *Service) Create(ctx context.Context, p *Product) (*Product, error) {
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Stock == nil {
		zero := 0
		p.Stock = &zero
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, apperr.Remote("insert product", err)
	}
	log.Printf("[Catalog] Product created: %s (%s)", created.ID, created.Slug)
	return created, nil
}

func (s *Service) Update(ctx context.Context, p *Product) (*Product, error) {
	if p.ID == "" {
		return nil, apperr.Validation("id", "is required")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, p)
	return updated, apperr.Remote("update product", err)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.Validation("id", "is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Remote("delete product", err)
	}
	log.Printf("[Catalog] Product deleted: %s", id)
	return nil
}

// UploadImage stores an image under a unique key and returns its public URL.
func (s *Service) UploadImage(ctx context.Context, key, filename, contentType string, body io.Reader, size int64) (string, error) {
	if s.images == nil {
		return "", apperr.Configuration("image storage is not configured")
	}
	if size <= 0 {
		return "", apperr.Validation("image", "is empty")
	}
	if size > MaxImageSize {
		return "", apperr.Validation("image", "must be 5 MB or smaller")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperr.Validation("image", fmt.Sprintf("unsupported content type %q", contentType))
	}

	objectKey := "products/" + key + strings.ToLower(path.Ext(filename))
	url, err := s.images.Put(ctx, objectKey, contentType, body, size)
	if err != nil {
		return "", apperr.Remote("upload image", err)
	}
	return url, nil
}
