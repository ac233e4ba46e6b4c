package models

import "time"

type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
