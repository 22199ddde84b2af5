package model

import "time"

// User roles
const (
	RoleAdmin     = "admin"
	RoleResident  = "resident"
	RoleSecurity  = "security"
	RoleTreasurer = "treasurer"
)

// User represents a registered person: admin, resident, security guard
// or treasurer. Email and phone are both optional but unique, since a
// user may sign up via password, OTP or Google.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Email        *string    `json:"email,omitempty" gorm:"type:varchar(255);uniqueIndex"`
	Phone        *string    `json:"phone,omitempty" gorm:"type:varchar(20);uniqueIndex"`
	Name         string     `json:"name" gorm:"type:varchar(255);not null"`
	PasswordHash string     `json:"-" gorm:"type:varchar(255)"`
	Role         string     `json:"role" gorm:"type:varchar(20);not null;default:resident"`
	SocietyID    *uint      `json:"society_id,omitempty" gorm:"index"`
	FlatID       *uint      `json:"flat_id,omitempty" gorm:"index"`
	IsOwner      bool       `json:"is_owner" gorm:"default:false"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	GoogleID     *string    `json:"google_id,omitempty" gorm:"type:varchar(255);uniqueIndex"`
	AvatarURL    string     `json:"avatar_url,omitempty" gorm:"type:varchar(500)"`
	MovedInAt    *time.Time `json:"moved_in_at,omitempty"`
	MovedOutAt   *time.Time `json:"moved_out_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
