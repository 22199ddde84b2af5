package model

import "time"

// Complaint statuses
const (
	ComplaintStatusOpen       = "open"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
)

// Complaint priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Complaint represents an issue raised by a resident
type Complaint struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SocietyID   uint      `json:"society_id" gorm:"index;not null"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	FlatID      *uint     `json:"flat_id,omitempty" gorm:"index"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url,omitempty" gorm:"type:varchar(500)"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:open"`
	Priority    string    `json:"priority" gorm:"type:varchar(20);default:medium"`
	AssignedTo  *uint     `json:"assigned_to,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
