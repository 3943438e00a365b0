package category

import (
	"Purchase-Tracker/domain"
	"Purchase-Tracker/entities"
	"context"

	"gorm.io/gorm"
)

type (
	CategoryRepository interface {
		AddCategory(ctx context.Context, category *entities.Category) error
		GetCategories(ctx context.Context) ([]*entities.Category, error)
		GetCategoryByID(ctx context.Context, id string) (*entities.Category, error)
		CountProductsByCategory(ctx context.Context) (map[string]int64, error)
		DeleteCategory(ctx context.Context, id string) error
	}

	categoryRepository struct {
		db *gorm.DB
	}
)

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) AddCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetCategories(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) CountProductsByCategory(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		CategoryID string
		Total      int64
	}
	if err := r.db.WithContext(ctx).Model(&entities.Product{}).
		Select("category_id, count(*) as total").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Total
	}
	return counts, nil
}

// DeleteCategory refuses to remove a category that products still reference.
func (r *categoryRepository) DeleteCategory(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var referenced int64
		if err := tx.Model(&entities.Product{}).
			Where("category_id = ?", id).
			Count(&referenced).Error; err != nil {
			return err
		}
		if referenced > 0 {
			return domain.ErrCategoryInUse
		}

		res := tx.Where("id = ?", id).Delete(&entities.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
