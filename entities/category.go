package entities

import (
	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description,omitempty"`

	Products []*Product `gorm:"foreignKey:CategoryID" json:"-"`
	Timestamp
}

func (c *Category) TableName() string {
	return "categories"
}
