package domain

import (
	"errors"
)

var (
	MessageSuccessShareProduct     = "share link created successfully"
	MessageSuccessEmailShareLink   = "share link sent successfully"
	MessageSuccessGetSharedProduct = "shared product retrieved successfully"

	MessageFailedShareProduct    = "failed to create share link"
	MessageFailedGenerateQRCode  = "failed to generate QR code"
	MessageFailedEmailShareLink  = "failed to send share link"
	MessageSharedProductNotFound = "shared product not found"

	ErrShareFailed       = errors.New("share token could not be assigned")
	ErrMailNotConfigured = errors.New("mail delivery is not configured")
)

type (
	ShareResponse struct {
		Token       string `json:"token"`
		URL         string `json:"url"`
		ProductName string `json:"product_name"`
	}

	ShareEmailRequest struct {
		Email string `json:"email" form:"email" validate:"required,email"`
	}

	SharedProductResponse struct {
		Name         string   `json:"name"`
		CategoryName string   `json:"category_name,omitempty"`
		PurchaseDate string   `json:"purchase_date"`
		Store        string   `json:"store"`
		Price        float64  `json:"price"`
		Unit         string   `json:"unit"`
		Quantity     float64  `json:"quantity"`
		QuantityUnit string   `json:"quantity_unit"`
		Notes        *string  `json:"notes,omitempty"`
		ImageURL     *string  `json:"image_url,omitempty"`
		Latitude     *float64 `json:"latitude,omitempty"`
		Longitude    *float64 `json:"longitude,omitempty"`
		MapsURL      string   `json:"maps_url,omitempty"`
	}
)
