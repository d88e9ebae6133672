package model

import (
	"time"
)

// Product represents a catalog product with bilingual names. Stock is
// only ever decremented inside the order placement transaction and
// never goes negative.
type Product struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	NameFr      string    `json:"name_fr" gorm:"type:varchar(255);not null"`
	NameAr      string    `json:"name_ar" gorm:"type:varchar(255);not null"`
	Slug        string    `json:"slug" gorm:"type:varchar(255);unique;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"not null"`
	ImageURL    string    `json:"image_url" gorm:"type:text"`
	CategoryID  uint      `json:"category_id" gorm:"index;not null"`
	Stock       int       `json:"stock" gorm:"default:0"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
