package product

import (
	"Purchase-Tracker/entities"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type (
	ProductRepository interface {
		AddProduct(ctx context.Context, product *entities.Product) error
		GetProductByID(ctx context.Context, id string) (*entities.Product, error)
		GetProducts(ctx context.Context) ([]*entities.Product, error)
		UpdateProduct(ctx context.Context, product *entities.Product) error
		DeleteProduct(ctx context.Context, id string) error
		GetProductByShareToken(ctx context.Context, token string) (*entities.Product, error)
		AssignShareToken(ctx context.Context, id string, token string) (bool, error)
		GetDistinctValues(ctx context.Context, column string) ([]string, error)
	}

	productRepository struct {
		db *gorm.DB
	}
)

var suggestionColumns = map[string]bool{
	"store":         true,
	"unit":          true,
	"quantity_unit": true,
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) AddProduct(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetProducts(ctx context.Context) ([]*entities.Product, error) {
	var products []*entities.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Order("purchase_date desc").
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateProduct writes the editable columns only; share_token and created_at are
// never touched by an edit.
func (r *productRepository) UpdateProduct(ctx context.Context, product *entities.Product) error {
	res := r.db.WithContext(ctx).Model(&entities.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":          product.Name,
			"category_id":   product.CategoryID,
			"purchase_date": product.PurchaseDate,
			"store":         product.Store,
			"price":         product.Price,
			"unit":          product.Unit,
			"quantity":      product.Quantity,
			"quantity_unit": product.QuantityUnit,
			"notes":         product.Notes,
			"image_url":     product.ImageURL,
			"latitude":      product.Latitude,
			"longitude":     product.Longitude,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepository) GetProductByShareToken(ctx context.Context, token string) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("share_token = ?", token).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// AssignShareToken sets the token only while the product has none. It reports
// whether this call performed the assignment.
func (r *productRepository) AssignShareToken(ctx context.Context, id string, token string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entities.Product{}).
		Where("id = ? AND share_token IS NULL", id).
		Update("share_token", token)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *productRepository) GetDistinctValues(ctx context.Context, column string) ([]string, error) {
	if !suggestionColumns[column] {
		return nil, fmt.Errorf("column %q has no suggestions", column)
	}

	var values []string
	if err := r.db.WithContext(ctx).Model(&entities.Product{}).
		Distinct(column).
		Where(column+" <> ''").
		Order(column+" asc").
		Pluck(column, &values).Error; err != nil {
		return nil, err
	}
	return values, nil
}
