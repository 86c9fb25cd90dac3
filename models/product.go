package models

import (
	"encoding/json"
	"time"
)

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	ImageUrls   string    `gorm:"type:text;default:'[]'" json:"-"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`

	Prices []ProductPrice `gorm:"foreignKey:ProductID" json:"prices,omitempty"`
}

// MarshalJSON exposes image_urls as a JSON array instead of the raw column.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		ImageUrls []string `json:"image_urls"`
	}{alias(p), p.GetImageUrls()})
}

func (p *Product) GetImageUrls() []string {
	var urls []string
	if p.ImageUrls == "" {
		return urls
	}
	if err := json.Unmarshal([]byte(p.ImageUrls), &urls); err != nil {
		return nil
	}
	return urls
}

func (p *Product) SetImageUrls(urls []string) error {
	if urls == nil {
		urls = []string{}
	}
	raw, err := json.Marshal(urls)
	if err != nil {
		return err
	}
	p.ImageUrls = string(raw)
	return nil
}
