package models

import "time"

// Notification targets a city at write time, but reads are unfiltered:
// the city is informational metadata, not an access filter.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	City      string    `gorm:"type:varchar(100);not null;default:'All'" json:"city"`
	CreatedAt time.Time `json:"created_at"`
}
