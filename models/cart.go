package models

import "time"

// Cart status values.
const (
	CartActive   = "active"
	CartCheckout = "checkout"
)

// Cart holds a customer's pending selection. The unique index on
// CustomerID guarantees at most one cart per customer; checkout empties
// the cart instead of deleting it.
type Cart struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CustomerID uint       `gorm:"not null;uniqueIndex" json:"customer_id"`
	Customer   Customer   `gorm:"foreignKey:CustomerID" json:"-"`
	Status     string     `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}
