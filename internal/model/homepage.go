package model

import (
	"database/sql/driver"
	"errors"
	"time"
)

// Known homepage section keys
const (
	SectionHero       = "hero"
	SectionCategories = "categories"
	SectionProducts   = "products"
	SectionPromos     = "promos"
	SectionTrust      = "trust"
)

// KnownSection reports whether key names a homepage section
func KnownSection(key string) bool {
	switch key {
	case SectionHero, SectionCategories, SectionProducts, SectionPromos, SectionTrust:
		return true
	}
	return false
}

// JSON stores a raw JSON document in a jsonb column and passes it
// through untouched in API responses.
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSON(v)
	default:
		return errors.New("model: unsupported type for JSON column")
	}
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	*j = append((*j)[0:0], data...)
	return nil
}

// HomepageSection is a keyed settings blob for one storefront section.
// Not transactional; the payload shape is owned by the admin UI.
type HomepageSection struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Section   string    `json:"section" gorm:"type:varchar(32);unique;not null"`
	Payload   JSON      `json:"payload" gorm:"type:jsonb"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
