package models

import "time"

// Address is a saved shipping profile. Append-only: no update or delete,
// reads return the most recent entries.
type Address struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Line      string    `gorm:"type:varchar(255);not null" json:"line"`
	Landmark  string    `gorm:"type:varchar(255)" json:"landmark"`
	Pincode   string    `gorm:"type:varchar(20)" json:"pincode"`
	City      string    `gorm:"type:varchar(100)" json:"city"`
	CreatedAt time.Time `json:"created_at"`
}
