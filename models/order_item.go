package models

import "time"

// OrderItem is the frozen copy of a cart line at checkout. Name and
// price are copied from the food item so later menu edits never change
// historical orders.
type OrderItem struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	OrderID             uint      `gorm:"not null;index" json:"order_id"`
	Order               Order     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	FoodItemID          uint      `gorm:"not null" json:"food_item_id"`
	Name                string    `gorm:"type:varchar(255);not null" json:"name"`
	Price               float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity            int       `gorm:"not null" json:"quantity"`
	TotalPrice          float64   `gorm:"type:decimal(10,2);not null" json:"total_price"`
	SpecialInstructions string    `gorm:"type:text" json:"special_instructions"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
}
