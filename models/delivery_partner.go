package models

import "time"

type DeliveryPartner struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Email       string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Phone       string    `gorm:"type:varchar(20);not null" json:"phone"`
	Password    string    `gorm:"type:varchar(255);not null" json:"-"`
	VehicleType string    `gorm:"type:varchar(10);not null" json:"vehicle_type"` // bike, scooter, car
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	CurrentLat  *float64  `json:"current_lat,omitempty"`
	CurrentLng  *float64  `json:"current_lng,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// ValidVehicleType reports whether t is one of the accepted vehicle types.
func ValidVehicleType(t string) bool {
	switch t {
	case "bike", "scooter", "car":
		return true
	}
	return false
}
