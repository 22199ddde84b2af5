package model

import "time"

// Visitor statuses
const (
	VisitorStatusPending    = "pending"
	VisitorStatusApproved   = "approved"
	VisitorStatusRejected   = "rejected"
	VisitorStatusCheckedOut = "checked_out"
)

// Visitor represents a gate entry awaiting approval by the flat's
// resident and eventual checkout by security
type Visitor struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	SocietyID     uint       `json:"society_id" gorm:"index;not null"`
	FlatID        uint       `json:"flat_id" gorm:"index;not null"`
	VisitorName   string     `json:"visitor_name" gorm:"type:varchar(255);not null"`
	VisitorPhone  string     `json:"visitor_phone" gorm:"type:varchar(20)"`
	Purpose       string     `json:"purpose" gorm:"type:varchar(255)"`
	VehicleNumber string     `json:"vehicle_number" gorm:"type:varchar(20)"`
	EntryTime     time.Time  `json:"entry_time" gorm:"autoCreateTime"`
	ExitTime      *time.Time `json:"exit_time,omitempty"`
	Status        string     `json:"status" gorm:"type:varchar(20);default:pending"`
	ApprovedBy    *uint      `json:"approved_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
