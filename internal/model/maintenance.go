package model

import "time"

// Invoice statuses
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusOverdue = "overdue"
	InvoiceStatusPaid    = "paid"
)

// MaintenanceInvoice represents a monthly maintenance bill for a flat.
// TotalAmount is always Amount + LateFee.
type MaintenanceInvoice struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SocietyID   uint      `json:"society_id" gorm:"index;not null"`
	FlatID      uint      `json:"flat_id" gorm:"index;not null"`
	Amount      float64   `json:"amount" gorm:"not null"`
	LateFee     float64   `json:"late_fee" gorm:"default:0"`
	TotalAmount float64   `json:"total_amount" gorm:"not null"`
	DueDate     time.Time `json:"due_date" gorm:"type:date;not null"`
	Month       int       `json:"month" gorm:"not null"`
	Year        int       `json:"year" gorm:"not null"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:pending"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
