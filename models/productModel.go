package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product categories
const (
	CategoryMen   = "men"
	CategoryWomen = "women"
	CategoryKids  = "kids"
)

func IsValidCategory(category string) bool {
	switch category {
	case CategoryMen, CategoryWomen, CategoryKids:
		return true
	}
	return false
}

// Color is shared reference data, e.g. "Navy" / "#1a2b3c".
type Color struct {
	gorm.Model
	Name string `json:"name" binding:"required"`
	Hex  string `json:"hex" binding:"required"`
}

// Size is shared reference data; value is free-form, e.g. "41" or "L".
type Size struct {
	gorm.Model
	Value string `json:"value" binding:"required"`
}

type ProductImage struct {
	gorm.Model
	ProductID    uint   `json:"product_id"`
	Url          string `json:"url"`
	DisplayOrder int    `json:"order"`
}

type Product struct {
	gorm.Model
	Name         string          `json:"name"`
	SubName      string          `json:"sub_name"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Description  string          `json:"description"`
	Category     string          `json:"category" gorm:"size:16;index"`
	Rating       decimal.Decimal `json:"rating" gorm:"type:decimal(3,2);default:0.00"`
	MainImageUrl string          `json:"main_image_url" gorm:"size:500"`
	Images       []ProductImage  `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Colors       []Color         `json:"colors" gorm:"many2many:product_colors;"`
	Sizes        []Size          `json:"sizes" gorm:"many2many:product_sizes;"`
}
