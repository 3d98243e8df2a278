package models

import "time"

// MenuItem identifiers are strings so callers may supply their own; the
// server falls back to a time-based one on create.
type MenuItem struct {
	ID               string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Category         string    `gorm:"type:varchar(50)" json:"category"` // breakfast, lunch, dinner
	Name             string    `gorm:"type:varchar(255);not null" json:"name"`
	NameHindi        string    `gorm:"type:varchar(255)" json:"name_hindi"`
	Description      string    `gorm:"type:text" json:"description"`
	DescriptionHindi string    `gorm:"type:text" json:"description_hindi"`
	Price            int       `gorm:"not null" json:"price"` // minor currency units
	City             string    `gorm:"type:varchar(100);not null;default:'All'" json:"city"`
	AvailableFrom    string    `gorm:"type:varchar(10)" json:"available_from"` // advisory, not enforced
	AvailableTo      string    `gorm:"type:varchar(10)" json:"available_to"`
	Active           bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
