package product

import (
	"Purchase-Tracker/domain"
	"Purchase-Tracker/entities"
	"Purchase-Tracker/internal/utils/storage"
	"Purchase-Tracker/pkg/category"
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// ProductService writes go straight to the repository. Callers re-fetch the
	// list after any successful write instead of patching a local copy.
	ProductService interface {
		AddProduct(ctx context.Context, req domain.ProductRequest, image *multipart.FileHeader) (domain.ProductResponse, error)
		UpdateProduct(ctx context.Context, id string, req domain.ProductRequest, image *multipart.FileHeader) (domain.ProductResponse, error)
		DeleteProduct(ctx context.Context, id string) error
		ListProducts(ctx context.Context) ([]*entities.Product, error)
		GetProducts(ctx context.Context, filter domain.ProductFilter) (domain.ProductListResponse, error)
		GetProductByID(ctx context.Context, id string) (domain.ProductResponse, error)
		UploadImage(ctx context.Context, image *multipart.FileHeader) (string, error)
		GetSuggestions(ctx context.Context) (domain.SuggestionsResponse, error)
	}

	productService struct {
		productRepository  ProductRepository
		categoryRepository category.CategoryRepository
		s3                 storage.AwsS3
	}
)

func NewProductService(productRepository ProductRepository, categoryRepository category.CategoryRepository, s3 storage.AwsS3) ProductService {
	return &productService{
		productRepository:  productRepository,
		categoryRepository: categoryRepository,
		s3:                 s3,
	}
}

func (s *productService) AddProduct(ctx context.Context, req domain.ProductRequest, image *multipart.FileHeader) (domain.ProductResponse, error) {
	product := &entities.Product{ID: uuid.New()}
	if err := s.apply(ctx, product, req); err != nil {
		return domain.ProductResponse{}, err
	}

	// upload strictly precedes the write; a failed upload leaves the image empty
	if image != nil {
		product.ImageURL = s.uploadOrNil(ctx, image)
	}

	if err := s.productRepository.AddProduct(ctx, product); err != nil {
		return domain.ProductResponse{}, err
	}

	return ToProductResponse(product), nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req domain.ProductRequest, image *multipart.FileHeader) (domain.ProductResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ProductResponse{}, domain.ErrParseUUID
	}

	product, err := s.productRepository.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProductResponse{}, domain.ErrProductNotFound
		}
		return domain.ProductResponse{}, err
	}

	if err := s.apply(ctx, product, req); err != nil {
		return domain.ProductResponse{}, err
	}

	// a new upload replaces the image; if it fails the product is left without one
	if image != nil {
		product.ImageURL = s.uploadOrNil(ctx, image)
	}

	if err := s.productRepository.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProductResponse{}, domain.ErrProductNotFound
		}
		return domain.ProductResponse{}, err
	}

	return ToProductResponse(product), nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrParseUUID
	}

	product, err := s.productRepository.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		return err
	}

	if err := s.productRepository.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		return err
	}

	if product.ImageURL != nil {
		if objectKey := s.s3.GetObjectKeyFromLink(*product.ImageURL); objectKey != "" {
			_ = s.s3.DeleteFile(ctx, objectKey)
		}
	}
	return nil
}

func (s *productService) ListProducts(ctx context.Context) ([]*entities.Product, error) {
	return s.productRepository.GetProducts(ctx)
}

func (s *productService) GetProducts(ctx context.Context, filter domain.ProductFilter) (domain.ProductListResponse, error) {
	products, err := s.productRepository.GetProducts(ctx)
	if err != nil {
		return domain.ProductListResponse{}, err
	}

	visible := Filter(products, filter)
	items := make([]domain.ProductResponse, 0, len(visible))
	for _, p := range visible {
		items = append(items, ToProductResponse(p))
	}

	return domain.ProductListResponse{
		Items: items,
		Shown: len(visible),
		Total: len(products),
	}, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (domain.ProductResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ProductResponse{}, domain.ErrParseUUID
	}

	product, err := s.productRepository.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProductResponse{}, domain.ErrProductNotFound
		}
		return domain.ProductResponse{}, err
	}
	return ToProductResponse(product), nil
}

func (s *productService) UploadImage(ctx context.Context, image *multipart.FileHeader) (string, error) {
	if !storage.IsAllowed(image.Filename, storage.AllowImage...) {
		return "", domain.ErrInvalidImageFormat
	}

	objectKey, err := s.s3.UploadFile(ctx, storage.RandomObjectName(image.Filename), image, "", storage.AllowImage...)
	if err != nil {
		return "", err
	}
	return s.s3.GetPublicLinkKey(objectKey), nil
}

func (s *productService) GetSuggestions(ctx context.Context) (domain.SuggestionsResponse, error) {
	stores, err := s.productRepository.GetDistinctValues(ctx, "store")
	if err != nil {
		return domain.SuggestionsResponse{}, err
	}
	units, err := s.productRepository.GetDistinctValues(ctx, "unit")
	if err != nil {
		return domain.SuggestionsResponse{}, err
	}
	quantityUnits, err := s.productRepository.GetDistinctValues(ctx, "quantity_unit")
	if err != nil {
		return domain.SuggestionsResponse{}, err
	}

	return domain.SuggestionsResponse{
		Stores:        stores,
		Units:         MergeSuggestions(domain.StandardUnits, units),
		QuantityUnits: MergeSuggestions(domain.StandardQuantityUnits, quantityUnits),
	}, nil
}

func (s *productService) uploadOrNil(ctx context.Context, image *multipart.FileHeader) *string {
	url, err := s.UploadImage(ctx, image)
	if err != nil {
		log.Errorf("error uploading product image %q: %v", image.Filename, err)
		return nil
	}
	return &url
}

// apply validates req and copies it onto product.
func (s *productService) apply(ctx context.Context, product *entities.Product, req domain.ProductRequest) error {
	purchaseDate, err := time.Parse(domain.DateLayout, req.PurchaseDate)
	if err != nil {
		return domain.ErrInvalidPurchaseDate
	}
	if req.Price.IsNegative() {
		return domain.ErrInvalidPrice
	}
	if req.Quantity.IsNegative() {
		return domain.ErrInvalidQuantity
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return domain.ErrInvalidCoordinates
	}

	name := strings.TrimSpace(req.Name)
	store := strings.TrimSpace(req.Store)
	if name == "" || store == "" {
		return domain.ErrProductIncomplete
	}

	var categoryID *uuid.UUID
	if req.CategoryID != "" {
		parsed, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return domain.ErrParseUUID
		}
		if _, err := s.categoryRepository.GetCategoryByID(ctx, parsed.String()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCategoryNotFound
			}
			return err
		}
		categoryID = &parsed
	}

	var notes *string
	if trimmed := strings.TrimSpace(req.Notes); trimmed != "" {
		notes = &trimmed
	}

	product.Name = name
	product.CategoryID = categoryID
	product.Category = nil
	product.PurchaseDate = purchaseDate
	product.Store = store
	product.Price = req.Price
	product.Unit = strings.TrimSpace(req.Unit)
	product.Quantity = req.Quantity
	product.QuantityUnit = strings.TrimSpace(req.QuantityUnit)
	product.Notes = notes
	product.Latitude = req.Latitude
	product.Longitude = req.Longitude
	return nil
}

// MergeSuggestions returns the fixed values followed by prior values not already
// present.
func MergeSuggestions(fixed []string, prior []string) []string {
	seen := make(map[string]bool, len(fixed)+len(prior))
	merged := make([]string, 0, len(fixed)+len(prior))
	for _, values := range [][]string{fixed, prior} {
		for _, v := range values {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			merged = append(merged, v)
		}
	}
	return merged
}

func ToProductResponse(p *entities.Product) domain.ProductResponse {
	res := domain.ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		PurchaseDate: p.PurchaseDate.Format(domain.DateLayout),
		Store:        p.Store,
		Price:        p.Price.InexactFloat64(),
		Unit:         p.Unit,
		Quantity:     p.Quantity.InexactFloat64(),
		QuantityUnit: p.QuantityUnit,
		Notes:        p.Notes,
		ImageURL:     p.ImageURL,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		ShareToken:   p.ShareToken,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.CategoryID != nil {
		id := p.CategoryID.String()
		res.CategoryID = &id
	}
	if p.Category != nil {
		res.Category = &domain.CategoryResponse{
			ID:          p.Category.ID.String(),
			Name:        p.Category.Name,
			Description: p.Category.Description,
		}
	}
	return res
}
