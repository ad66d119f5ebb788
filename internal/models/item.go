package models

import "time"

// Item: one inventory line per (name, brand, model) triple. The triple is the
// natural key; the composite unique index keeps duplicates out at the store
// level as well.
type Item struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null;uniqueIndex:idx_items_identity" json:"name"`
	Brand     string `gorm:"size:100;not null;uniqueIndex:idx_items_identity" json:"brand"`
	Model     string `gorm:"size:100;not null;uniqueIndex:idx_items_identity" json:"model"`
	Quantity  int    `gorm:"not null;default:0" json:"quantity"` // never negative
	Remark    string `gorm:"size:255" json:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
