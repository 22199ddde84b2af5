package model

import (
	"encoding/json"
	"time"
)

// Poll represents a society-wide question with a fixed ordered option
// list, stored JSON-encoded
type Poll struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	SocietyID uint       `json:"society_id" gorm:"index;not null"`
	Question  string     `json:"question" gorm:"type:text;not null"`
	Options   string     `json:"-" gorm:"type:jsonb;not null"`
	CreatedBy uint       `json:"created_by" gorm:"not null"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// OptionList decodes the stored option list. A corrupt column yields an
// empty list rather than an error; votes against it are then ignored.
func (p *Poll) OptionList() []string {
	var options []string
	if err := json.Unmarshal([]byte(p.Options), &options); err != nil {
		return nil
	}
	return options
}

// SetOptions encodes and stores the option list
func (p *Poll) SetOptions(options []string) error {
	raw, err := json.Marshal(options)
	if err != nil {
		return err
	}
	p.Options = string(raw)
	return nil
}

// Vote represents a single user's choice on a poll, immutable once
// cast. One vote per (poll, user).
type Vote struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PollID      uint      `json:"poll_id" gorm:"index;not null"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	OptionIndex int       `json:"option_index" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}
