package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Banner struct {
	gorm.Model
	ImageUrl string `json:"image_url" gorm:"size:500"`
	Link     string `json:"link"`
}

type TrendingItem struct {
	gorm.Model
	Name     string          `json:"name"`
	SubName  string          `json:"sub_name"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	ImageUrl string          `json:"image_url" gorm:"size:500"`
}
