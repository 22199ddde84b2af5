package model

import "time"

// Tower represents a building within a society
type Tower struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SocietyID   uint      `json:"society_id" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	TotalFloors int       `json:"total_floors" gorm:"not null;default:1"`
	CreatedAt   time.Time `json:"created_at"`

	Flats []Flat `json:"flats,omitempty" gorm:"foreignKey:TowerID;constraint:OnDelete:CASCADE"`
}
