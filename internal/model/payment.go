package model

import "time"

// Payment represents a settled maintenance invoice. An invoice gets at
// most one payment; recording it flips the invoice to paid.
type Payment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	InvoiceID     uint      `json:"invoice_id" gorm:"index;not null"`
	UserID        uint      `json:"user_id" gorm:"index;not null"`
	Amount        float64   `json:"amount" gorm:"not null"`
	PaymentMethod string    `json:"payment_method" gorm:"type:varchar(50)"` // cash, upi, bank_transfer, card
	TransactionID string    `json:"transaction_id" gorm:"type:varchar(255)"`
	PaymentDate   time.Time `json:"payment_date" gorm:"autoCreateTime"`
	CreatedAt     time.Time `json:"created_at"`
}
