package models

import "time"

type FoodItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"-"`
	SellerID    uint      `gorm:"not null;index" json:"seller_id"`
	Seller      Seller    `gorm:"foreignKey:SellerID" json:"-"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    string    `gorm:"type:varchar(255)" json:"image_url"`
	ImageID     string    `gorm:"type:varchar(255)" json:"image_id"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	Stock       int       `gorm:"default:0" json:"stock"`
	Rating      *float64  `gorm:"type:decimal(2,1)" json:"rating,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
