package models

import (
	"time"

	"gorm.io/gorm"
)

type OTP struct {
	gorm.Model
	Email       string    `gorm:"size:100;index" json:"email"`
	Code        string    `gorm:"size:6;not null" json:"code"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	IsUsed      bool      `gorm:"default:false" json:"is_used"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	IsDeleted   bool      `gorm:"default:false"`
}
