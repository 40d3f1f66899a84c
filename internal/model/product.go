package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is an item listed in the catalogue. Description and ImageData are
// nullable; ImageData holds an encoded image (typically a data URL).
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"user_id" gorm:"not null;index"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageData   *string         `json:"imageData" gorm:"column:imageData;size:4294967295"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductChanges carries the client supplied fields of a create or update.
type ProductChanges struct {
	Name        string
	Price       decimal.Decimal
	Description *string
	ImageData   *string
}

// Merge applies c on top of p and returns the result. Field rules:
//
//	Name, Price             always taken from c
//	Description, ImageData  taken from c when non-empty, otherwise kept from p
//	ID, UserID, CreatedAt   never changed
//	UpdatedAt               left for the store to refresh
func (p Product) Merge(c ProductChanges) Product {
	out := p
	out.Name = c.Name
	out.Price = c.Price
	if s := NullString(c.Description); s != nil {
		out.Description = s
	}
	if s := NullString(c.ImageData); s != nil {
		out.ImageData = s
	}
	return out
}

// NullString maps nil and "" to nil so empty optional fields are stored as NULL.
func NullString(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
