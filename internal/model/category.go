package model

import (
	"time"
)

// Category is a node of the catalog tree. The tree is two levels deep
// in practice (roots and leaf subcategories) but nothing here assumes
// a depth. Categories hard-delete so the product cascade actually
// removes rows.
type Category struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	NameFr    string     `json:"name_fr" gorm:"type:varchar(255);not null"`
	NameAr    string     `json:"name_ar" gorm:"type:varchar(255);not null"`
	Slug      string     `json:"slug" gorm:"type:varchar(255);unique;not null"`
	ImageURL  string     `json:"image_url" gorm:"type:text"`
	ParentID  *uint      `json:"parent_id,omitempty" gorm:"index"`
	SortOrder int        `json:"sort_order" gorm:"default:0"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	Children  []Category `json:"children,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Products  []Product  `json:"products,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
