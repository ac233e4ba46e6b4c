package models

import "time"

// CartItem copies the food item price at the time of add. The copy is
// refreshed whenever the same item is added again.
type CartItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CartID     uint      `gorm:"not null;uniqueIndex:idx_cart_food" json:"cart_id"`
	Cart       Cart      `gorm:"foreignKey:CartID" json:"-"`
	FoodItemID uint      `gorm:"not null;uniqueIndex:idx_cart_food" json:"food_item_id"`
	FoodItem   FoodItem  `gorm:"foreignKey:FoodItemID" json:"food_item"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Price      float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
