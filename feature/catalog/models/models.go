package models

import "time"

// Category is a product grouping synchronized from the upstream feed.
// The name is the natural key: reconciliation matches upstream categories by
// exact name and never deletes or renames existing rows.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:191;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName sets the table name for Category.
func (Category) TableName() string {
	return "categories"
}

// Product is a catalog entry owned exclusively by the reconciliation engine.
// ExternalID is the stable upstream identity; rows are created or updated in
// place and never deleted, so upstream removals leave stale rows behind.
type Product struct {
	ID          uint     `gorm:"primaryKey" json:"-"`
	ExternalID  int64    `gorm:"uniqueIndex;not null" json:"external_id"`
	CategoryID  uint     `gorm:"index;not null" json:"category_id"`
	Title       string   `gorm:"size:512;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Price       float64  `gorm:"not null" json:"price"`
	ImageURL    string   `gorm:"size:1024" json:"image_url"`
	RatingRate  *float64 `json:"rating_rate,omitempty"`
	RatingCount *int64   `json:"rating_count,omitempty"`

	// Category is populated only where the handler preloads it; listings
	// leave it nil so it stays out of their JSON.
	Category  *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName sets the table name for Product.
func (Product) TableName() string {
	return "products"
}
