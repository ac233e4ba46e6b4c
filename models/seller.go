package models

import "time"

// Seller status values. A closed restaurant rejects add-to-cart.
const (
	SellerOpen   = "open"
	SellerClosed = "close"
)

type Seller struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Email          string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Phone          string    `gorm:"type:varchar(20)" json:"phone"`
	Password       string    `gorm:"type:varchar(255);not null" json:"-"`
	Address        string    `gorm:"type:text" json:"address"`
	Description    string    `gorm:"type:text" json:"description"`
	CuisineType    string    `gorm:"type:varchar(100)" json:"cuisine_type"`
	Status         string    `gorm:"type:varchar(10);not null;default:'open'" json:"status"`
	OpeningTime    string    `gorm:"type:varchar(5);default:'09:00'" json:"opening_time"`
	ClosingTime    string    `gorm:"type:varchar(5);default:'22:00'" json:"closing_time"`
	MinimumOrder   float64   `gorm:"type:decimal(10,2);default:10" json:"minimum_order"`
	DeliveryRadius float64   `gorm:"default:5" json:"delivery_radius"`
	ImageURL       string    `gorm:"type:varchar(255)" json:"image_url"`
	ImageID        string    `gorm:"type:varchar(255)" json:"image_id"`
	Rating         *float64  `gorm:"type:decimal(2,1)" json:"rating,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}
