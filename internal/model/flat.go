package model

import "time"

// Flat represents a single unit inside a tower
type Flat struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TowerID    uint      `json:"tower_id" gorm:"index;not null"`
	FlatNumber string    `json:"flat_number" gorm:"type:varchar(20);not null"`
	Floor      int       `json:"floor" gorm:"not null;default:0"`
	AreaSqft   float64   `json:"area_sqft"`
	FlatType   string    `json:"flat_type" gorm:"type:varchar(20)"` // 1BHK, 2BHK, 3BHK, etc.
	CreatedAt  time.Time `json:"created_at"`
}
