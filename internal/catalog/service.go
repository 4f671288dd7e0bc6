package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db/models"
	pkgerrors "github.com/MaksTishchuk/OnlineShop-version-2/pkg/errors"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Categories whose products carry a specialization row.
const (
	categorySlugNotebooks   = "notebooks"
	categorySlugSmartphones = "smartphones"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes storefront catalog operations.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	GetCategory(ctx context.Context, slug string) (*CategoryDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetProduct(ctx context.Context, slug string) (*ProductDTO, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, slug string, input UpdateProductInput) (*ProductDTO, error)
}

// ListProductsInput filters and paginates the product listing.
type ListProductsInput struct {
	CategorySlug string
	Page         pagination.Page
}

// CreateCategoryInput holds the payload to create a category.
type CreateCategoryInput struct {
	Name string
	Slug string
}

// ImageInput describes an already-uploaded product image. Dimensions and size
// come from the upload pipeline and are validated against the catalog bounds.
type ImageInput struct {
	URL       string
	Width     int
	Height    int
	SizeBytes int64
}

// NotebookSpecInput holds notebook attributes supplied at product creation.
type NotebookSpecInput struct {
	Diagonal          string
	DisplayType       string
	ProcessorFreq     string
	RAM               string
	Video             string
	TimeWithoutCharge string
}

// SmartphoneSpecInput holds smartphone attributes supplied at product creation.
type SmartphoneSpecInput struct {
	Diagonal     string
	DisplayType  string
	Resolution   string
	AccumVolume  string
	RAM          string
	SD           bool
	SDVolumeMax  *string
	MainCamMP    string
	FrontalCamMP string
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	CategorySlug string
	Title        string
	Slug         string
	Description  *string
	Price        decimal.Decimal
	Image        *ImageInput
	Notebook     *NotebookSpecInput
	Smartphone   *SmartphoneSpecInput
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Image       *ImageInput
	IsActive    *bool
}

type service struct {
	repo     Repository
	dbClient txRunner
	pageSize int
}

// NewService constructs a catalog service instance.
func NewService(repo Repository, dbClient txRunner, pageSize int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if pageSize <= 0 {
		pageSize = pagination.DefaultLimit
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		pageSize: pageSize,
	}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, *toCategoryDTO(&categories[i]))
	}
	return dtos, nil
}

func (s *service) GetCategory(ctx context.Context, slug string) (*CategoryDTO, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category slug required")
	}
	category, err := s.repo.FindCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	return toCategoryDTO(category), nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	var categoryID *uuid.UUID
	if input.CategorySlug != "" {
		category, err := s.repo.FindCategoryBySlug(ctx, input.CategorySlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
		}
		categoryID = &category.ID
	}

	cursor, err := pagination.Decode(input.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := input.Page.Limit
	if limit <= 0 {
		limit = s.pageSize
	}
	limit = pagination.NormalizeLimit(limit)

	products, err := s.repo.ListProducts(ctx, categoryID, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	page, more := pagination.Trim(products, limit)
	result := &ProductListResult{Products: make([]ProductDTO, 0, len(page))}
	for i := range page {
		result.Products = append(result.Products, *toProductDTO(&page[i]))
	}
	if more {
		last := page[len(page)-1]
		next := pagination.Encode(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		result.NextCursor = &next
	}
	return result, nil
}

func (s *service) GetProduct(ctx context.Context, slug string) (*ProductDTO, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug required")
	}
	product, err := s.repo.FindProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return toProductDTO(product), nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	if !slugRe.MatchString(input.Slug) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category slug must be lowercase kebab-case")
	}

	category, err := s.repo.CreateCategory(ctx, &models.Category{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}
	return toCategoryDTO(category), nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product title required")
	}
	if !slugRe.MatchString(input.Slug) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug must be lowercase kebab-case")
	}
	if input.Price.IsNegative() || input.Price.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be positive")
	}
	if input.Notebook != nil && input.Smartphone != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product can carry only one spec payload")
	}
	if err := validateImage(input.Image); err != nil {
		return nil, err
	}

	category, err := s.repo.FindCategoryBySlug(ctx, input.CategorySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	if input.Notebook != nil && category.Slug != categorySlugNotebooks {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notebook spec requires the notebooks category")
	}
	if input.Smartphone != nil && category.Slug != categorySlugSmartphones {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "smartphone spec requires the smartphones category")
	}

	product := &models.Product{
		CategoryID:  category.ID,
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
		Price:       input.Price,
		IsActive:    true,
	}
	if input.Image != nil {
		url := input.Image.URL
		product.ImageURL = &url
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		created, err := txRepo.CreateProduct(ctx, product)
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "product slug already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}

		if spec := input.Notebook; spec != nil {
			row := &models.NotebookSpec{
				ProductID:         created.ID,
				Diagonal:          spec.Diagonal,
				DisplayType:       spec.DisplayType,
				ProcessorFreq:     spec.ProcessorFreq,
				RAM:               spec.RAM,
				Video:             spec.Video,
				TimeWithoutCharge: spec.TimeWithoutCharge,
			}
			if err := txRepo.CreateNotebookSpec(ctx, row); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert notebook spec")
			}
			created.Notebook = row
		}
		if spec := input.Smartphone; spec != nil {
			row := &models.SmartphoneSpec{
				ProductID:    created.ID,
				Diagonal:     spec.Diagonal,
				DisplayType:  spec.DisplayType,
				Resolution:   spec.Resolution,
				AccumVolume:  spec.AccumVolume,
				RAM:          spec.RAM,
				SD:           spec.SD,
				SDVolumeMax:  spec.SDVolumeMax,
				MainCamMP:    spec.MainCamMP,
				FrontalCamMP: spec.FrontalCamMP,
			}
			if err := txRepo.CreateSmartphoneSpec(ctx, row); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert smartphone spec")
			}
			created.Smartphone = row
		}
		return nil
	}); err != nil {
		return nil, err
	}

	product.Category = category
	return toProductDTO(product), nil
}

func (s *service) UpdateProduct(ctx context.Context, slug string, input UpdateProductInput) (*ProductDTO, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug required")
	}
	if input.Price != nil && (input.Price.IsNegative() || input.Price.IsZero()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be positive")
	}
	if err := validateImage(input.Image); err != nil {
		return nil, err
	}

	product, err := s.repo.FindProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product title required")
		}
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Image != nil {
		url := input.Image.URL
		product.ImageURL = &url
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.SaveProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save product")
	}
	return toProductDTO(product), nil
}

func validateImage(image *ImageInput) error {
	if image == nil {
		return nil
	}
	if strings.TrimSpace(image.URL) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "image url required")
	}
	minW, minH := models.ProductMinResolution[0], models.ProductMinResolution[1]
	maxW, maxH := models.ProductMaxResolution[0], models.ProductMaxResolution[1]
	if image.Width < minW || image.Height < minH {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("image resolution is below the %dx%d minimum", minW, minH))
	}
	if image.Width > maxW || image.Height > maxH {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("image resolution exceeds the %dx%d maximum", maxW, maxH))
	}
	if image.SizeBytes > models.ProductMaxImageSizeBytes {
		return pkgerrors.New(pkgerrors.CodeValidation, "image exceeds the 3MB size limit")
	}
	return nil
}
