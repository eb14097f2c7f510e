package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:120;uniqueIndex;not null"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	Active      bool      `json:"active" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

type Product struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	Name              string          `json:"name" gorm:"size:200;not null"`
	Description       *string         `json:"description,omitempty" gorm:"type:text"`
	Price             decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	AvailableQuantity int             `json:"available_quantity" gorm:"not null;default:0"`
	Active            bool            `json:"active" gorm:"not null"`
	ImageURL          *string         `json:"image_url,omitempty" gorm:"size:500"`
	CreatedAt         time.Time       `json:"created_at"`

	Categories []Category `json:"categories,omitempty" gorm:"-"`
}

// ProductCategory is the explicit product/category association. The pair
// is unique.
type ProductCategory struct {
	ID         uint `gorm:"primaryKey"`
	ProductID  uint `gorm:"uniqueIndex:idx_product_category;not null"`
	CategoryID uint `gorm:"uniqueIndex:idx_product_category;index;not null"`
}

type CategoryPatch struct {
	Name        *string
	Description *string
	Active      *bool
}

func (p CategoryPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return invalid("category name must not be empty")
	}
	return nil
}

func (p CategoryPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Active != nil {
		cols["active"] = *p.Active
	}
	return cols
}

// ProductInput is the full set of fields accepted when creating a product.
type ProductInput struct {
	Name              string
	Description       *string
	Price             decimal.Decimal
	AvailableQuantity int
	Active            *bool
	ImageURL          *string
	CategoryIDs       []uint
}

func (in ProductInput) Validate() error {
	if in.Name == "" {
		return invalid("product name must not be empty")
	}
	if Money(in.Price).IsNegative() {
		return invalid("product price must not be negative")
	}
	if in.AvailableQuantity < 0 {
		return invalid("available quantity must not be negative")
	}
	return nil
}

// ProductPatch updates a product. A non-nil CategoryIDs replaces the
// product's category set, an empty slice clears it.
type ProductPatch struct {
	Name              *string
	Description       *string
	Price             *decimal.Decimal
	AvailableQuantity *int
	Active            *bool
	ImageURL          *string
	CategoryIDs       []uint
}

func (p ProductPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return invalid("product name must not be empty")
	}
	if p.Price != nil && Money(*p.Price).IsNegative() {
		return invalid("product price must not be negative")
	}
	if p.AvailableQuantity != nil && *p.AvailableQuantity < 0 {
		return invalid("available quantity must not be negative")
	}
	return nil
}

func (p ProductPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Price != nil {
		cols["price"] = Money(*p.Price)
	}
	if p.AvailableQuantity != nil {
		cols["available_quantity"] = *p.AvailableQuantity
	}
	if p.Active != nil {
		cols["active"] = *p.Active
	}
	if p.ImageURL != nil {
		cols["image_url"] = *p.ImageURL
	}
	return cols
}
