package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of purchase_date.
const DateLayout = "2006-01-02"

var (
	MessageSuccessAddProduct     = "product added successfully"
	MessageSuccessUpdateProduct  = "product updated successfully"
	MessageSuccessDeleteProduct  = "product deleted successfully"
	MessageSuccessGetProducts    = "products retrieved successfully"
	MessageSuccessUploadImage    = "image uploaded successfully"
	MessageSuccessGetSuggestions = "suggestions retrieved successfully"

	MessageFailedAddProduct     = "failed to add product"
	MessageFailedUpdateProduct  = "failed to update product"
	MessageFailedDeleteProduct  = "failed to delete product"
	MessageFailedGetProducts    = "failed to retrieve products"
	MessageFailedUploadImage    = "failed to upload image"
	MessageFailedGetSuggestions = "failed to retrieve suggestions"

	ErrProductNotFound     = errors.New("product not found")
	ErrInvalidPurchaseDate = errors.New("invalid purchase date")
	ErrInvalidPrice        = errors.New("price must not be negative")
	ErrInvalidQuantity     = errors.New("quantity must not be negative")
	ErrInvalidImageFormat  = errors.New("invalid image format")
	ErrProductIncomplete   = errors.New("name and store are required")

	StandardUnits         = []string{"ซอง", "กรัม", "กก.", "ml", "ลิตร"}
	StandardQuantityUnits = []string{"ซอง", "กรัม", "กก.", "ml", "ลิตร", "ขวด", "กล่อง", "ชิ้น"}
)

type (
	ProductRequest struct {
		Name         string          `json:"name" validate:"required,max=200"`
		CategoryID   string          `json:"category_id" validate:"omitempty,uuid"`
		PurchaseDate string          `json:"purchase_date" validate:"required"`
		Store        string          `json:"store" validate:"required,max=200"`
		Price        decimal.Decimal `json:"price"`
		Unit         string          `json:"unit" validate:"omitempty,max=50"`
		Quantity     decimal.Decimal `json:"quantity"`
		QuantityUnit string          `json:"quantity_unit" validate:"omitempty,max=50"`
		Notes        string          `json:"notes"`
		Latitude     *float64        `json:"latitude"`
		Longitude    *float64        `json:"longitude"`
	}

	ProductFilter struct {
		Query      string `json:"q" query:"q"`
		CategoryID string `json:"category" query:"category"`
		Store      string `json:"store" query:"store"`
	}

	ProductResponse struct {
		ID           string            `json:"id"`
		Name         string            `json:"name"`
		CategoryID   *string           `json:"category_id"`
		Category     *CategoryResponse `json:"category,omitempty"`
		PurchaseDate string            `json:"purchase_date"`
		Store        string            `json:"store"`
		Price        float64           `json:"price"`
		Unit         string            `json:"unit"`
		Quantity     float64           `json:"quantity"`
		QuantityUnit string            `json:"quantity_unit"`
		Notes        *string           `json:"notes,omitempty"`
		ImageURL     *string           `json:"image_url,omitempty"`
		Latitude     *float64          `json:"latitude,omitempty"`
		Longitude    *float64          `json:"longitude,omitempty"`
		ShareToken   *string           `json:"share_token,omitempty"`
		CreatedAt    time.Time         `json:"created_at"`
		UpdatedAt    time.Time         `json:"updated_at"`
	}

	ProductListResponse struct {
		Items []ProductResponse `json:"items"`
		Shown int               `json:"shown"`
		Total int               `json:"total"`
	}

	SuggestionsResponse struct {
		Stores        []string `json:"stores"`
		Units         []string `json:"units"`
		QuantityUnits []string `json:"quantity_units"`
	}

	UploadImageResponse struct {
		ImageURL string `json:"image_url"`
	}
)

// Normalize maps empty category and store filters to FilterAll.
func (f ProductFilter) Normalize() ProductFilter {
	if f.CategoryID == "" {
		f.CategoryID = FilterAll
	}
	if f.Store == "" {
		f.Store = FilterAll
	}
	return f
}
