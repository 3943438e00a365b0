package category

import (
	"Purchase-Tracker/domain"
	"Purchase-Tracker/entities"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CategoryService interface {
		AddCategory(ctx context.Context, req domain.CategoryRequest) (domain.CategoryResponse, error)
		GetCategories(ctx context.Context) ([]domain.CategoryResponse, error)
		DeleteCategory(ctx context.Context, id string) error
	}

	categoryService struct {
		categoryRepository CategoryRepository
	}
)

func NewCategoryService(categoryRepository CategoryRepository) CategoryService {
	return &categoryService{categoryRepository: categoryRepository}
}

func (s *categoryService) AddCategory(ctx context.Context, req domain.CategoryRequest) (domain.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.CategoryResponse{}, domain.ErrCategoryNameEmpty
	}

	category := &entities.Category{
		ID:   uuid.New(),
		Name: name,
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		category.Description = &description
	}

	if err := s.categoryRepository.AddCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, err
	}

	return toCategoryResponse(category, 0), nil
}

func (s *categoryService) GetCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	categories, err := s.categoryRepository.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.categoryRepository.CountProductsByCategory(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]domain.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		response = append(response, toCategoryResponse(c, counts[c.ID.String()]))
	}
	return response, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrParseUUID
	}

	if err := s.categoryRepository.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func toCategoryResponse(c *entities.Category, productCount int64) domain.CategoryResponse {
	return domain.CategoryResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Description:  c.Description,
		ProductCount: productCount,
		CanDelete:    productCount == 0,
		CreatedAt:    c.CreatedAt,
	}
}
