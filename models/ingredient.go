package models

import "time"

type Ingredient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);unique;not null" json:"name"`
	Unit      string    `gorm:"type:varchar(20);not null;default:'unit'" json:"unit"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
