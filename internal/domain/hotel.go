package domain

import "time"

type Hotel struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required,max=200"`
	Location    string    `json:"location" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	Amenities   string    `json:"amenities" validate:"max=1000"`
	ImageURL    string    `json:"image_url" validate:"omitempty,url"`
	PriceCents  int64     `json:"price_cents" validate:"gte=0"`
	Rating      int       `json:"rating" validate:"gte=1,lte=5"`
	TotalRooms  int       `json:"total_rooms" validate:"gte=1"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
