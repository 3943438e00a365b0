package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name         string          `gorm:"not null" json:"name"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index" json:"category_id"`
	PurchaseDate time.Time       `gorm:"type:date;not null;index" json:"purchase_date"`
	Store        string          `gorm:"not null" json:"store"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `gorm:"type:numeric(12,3);not null;default:0" json:"quantity"`
	QuantityUnit string          `json:"quantity_unit"`
	Notes        *string         `json:"notes,omitempty"`
	ImageURL     *string         `json:"image_url,omitempty"`
	Latitude     *float64        `json:"latitude,omitempty"`
	Longitude    *float64        `json:"longitude,omitempty"`
	ShareToken   *string         `gorm:"uniqueIndex" json:"share_token,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`
	Timestamp
}

func (p *Product) TableName() string {
	return "products"
}

// HasLocation reports whether both coordinates are set.
func (p *Product) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}
