package model

import "time"

// Notice represents an announcement to the society. Deleting a notice
// clears the active flag rather than removing the row.
type Notice struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SocietyID uint      `json:"society_id" gorm:"index;not null"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Category  string    `json:"category" gorm:"type:varchar(50);default:general"` // general, maintenance, event, emergency
	CreatedBy uint      `json:"created_by" gorm:"not null"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
