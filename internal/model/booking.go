package model

import "time"

// Booking statuses
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a facility reservation. Start and end times are
// stored as zero-padded HH:MM strings so that string comparison orders
// them chronologically, in SQL and in Go alike.
type Booking struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SocietyID    uint      `json:"society_id" gorm:"index;not null"`
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	FacilityName string    `json:"facility_name" gorm:"type:varchar(100);not null"` // gym, party_hall, swimming_pool, etc.
	BookingDate  time.Time `json:"booking_date" gorm:"type:date;not null"`
	StartTime    string    `json:"start_time" gorm:"type:varchar(5);not null"`
	EndTime      string    `json:"end_time" gorm:"type:varchar(5);not null"`
	Status       string    `json:"status" gorm:"type:varchar(20);default:confirmed"`
	CreatedAt    time.Time `json:"created_at"`
}
