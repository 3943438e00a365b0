package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddCategory    = "category added successfully"
	MessageSuccessDeleteCategory = "category deleted successfully"
	MessageSuccessGetCategories  = "categories retrieved successfully"

	MessageFailedAddCategory    = "failed to add category"
	MessageFailedDeleteCategory = "failed to delete category"
	MessageFailedGetCategories  = "failed to retrieve categories"

	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryInUse     = errors.New("category is still referenced by products")
	ErrCategoryNameEmpty = errors.New("category name is required")
)

type (
	CategoryRequest struct {
		Name        string `json:"name" form:"name" validate:"required,max=100"`
		Description string `json:"description" form:"description" validate:"omitempty,max=500"`
	}

	CategoryResponse struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Description  *string   `json:"description,omitempty"`
		ProductCount int64     `json:"product_count"`
		CanDelete    bool      `json:"can_delete"`
		CreatedAt    time.Time `json:"created_at"`
	}
)
