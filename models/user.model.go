package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name                string     `gorm:"default:''" json:"name"`
	Email               string     `gorm:"unique;not null" json:"email"`
	Password            string     `gorm:"not null" json:"password,omitempty"`
	Role                string     `gorm:"default:'USER'" json:"role"`      // USER, ADMIN
	MainRole            string     `gorm:"default:'USER'" json:"main_role"` // USER, SUPERADMIN
	ResetPasswordExpire *time.Time `json:"reset_password_expire,omitempty"`
	LastLogin           time.Time  `gorm:"default:NULL" json:"last_login"`
	IsDeleted           bool       `gorm:"default:false" json:"-"`
}
