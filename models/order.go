package models

import (
	"encoding/json"
	"time"
)

const (
	StatusPending        = "pending"
	StatusPreparing      = "preparing"
	StatusOutForDelivery = "out for delivery"
	StatusDelivered      = "delivered"
)

type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Total     int       `gorm:"not null" json:"total"`
	Snapshot  string    `gorm:"type:text;not null" json:"-"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SnapshotItem is one ordered line inside the frozen snapshot.
type SnapshotItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// SnapshotAddress is the shipping address as it was at order time.
type SnapshotAddress struct {
	Name     string `json:"name"`
	Line     string `json:"line"`
	Landmark string `json:"landmark"`
	Pincode  string `json:"pincode"`
	City     string `json:"city"`
}

// OrderSnapshot is captured once at creation and never recomputed, so the
// order keeps the address and prices the user actually confirmed.
type OrderSnapshot struct {
	Items   []SnapshotItem  `json:"items"`
	Address SnapshotAddress `json:"address"`
	Date    string          `json:"date"`
	Time    string          `json:"time"`
	Meal    string          `json:"meal"`
}

// ParseSnapshot decodes the stored snapshot blob.
func (o *Order) ParseSnapshot() (OrderSnapshot, error) {
	var snap OrderSnapshot
	err := json.Unmarshal([]byte(o.Snapshot), &snap)
	return snap, err
}

// ResolvedCity extracts the city frozen into the order's snapshot. An
// unparsable blob or an empty city resolves to "All", which keeps the
// order visible to every administrator (matches the original behavior).
func (o *Order) ResolvedCity() string {
	snap, err := o.ParseSnapshot()
	if err != nil || snap.Address.City == "" {
		return "All"
	}
	return snap.Address.City
}

// statusTransitions lists the statuses an order may move to from each
// state. Every move between known labels is currently allowed; tightening
// the lifecycle later is an edit to this table only.
var statusTransitions = map[string][]string{
	StatusPending:        {StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered},
	StatusPreparing:      {StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered},
	StatusOutForDelivery: {StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered},
	StatusDelivered:      {StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered},
}

// StatusTransitionAllowed reports whether an order may move from one
// status to another. Unknown labels are never allowed.
func StatusTransitionAllowed(from, to string) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
