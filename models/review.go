package models

import "time"

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Customer   Customer  `gorm:"foreignKey:CustomerID" json:"-"`
	SellerID   uint      `gorm:"not null;index" json:"seller_id"`
	Seller     Seller    `gorm:"foreignKey:SellerID" json:"-"`
	FoodItemID *uint     `gorm:"index" json:"food_item_id,omitempty"`
	FoodItem   *FoodItem `gorm:"foreignKey:FoodItemID" json:"-"`
	OrderID    *uint     `gorm:"index" json:"order_id,omitempty"`
	Order      *Order    `gorm:"foreignKey:OrderID" json:"-"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
