package models

import (
	"gorm.io/gorm"
)

// Permission maps a role to a capability. Handlers never compare role strings
// directly; they go through middleware.RequirePermission.
type Permission struct {
	gorm.Model
	Role       string `gorm:"index;not null" json:"role"`               // USER, ADMIN
	Permission string `gorm:"type:varchar(255)" json:"permission"`      // e.g. "manage-courses"
	IsDeleted  bool   `gorm:"default:false"`
}

const (
	PermViewCourses   = "view-courses"
	PermEnroll        = "enroll"
	PermTrackProgress = "track-progress"
	PermAttemptQuiz   = "attempt-quiz"
	PermChat          = "chat"
	PermManageCourses = "manage-courses"
	PermViewDashboard = "view-dashboard"
)

// RolePermissions is the capability table seeded at migration time.
var RolePermissions = map[string][]string{
	"USER": {
		PermViewCourses,
		PermEnroll,
		PermTrackProgress,
		PermAttemptQuiz,
		PermChat,
	},
	"ADMIN": {
		PermViewCourses,
		PermEnroll,
		PermTrackProgress,
		PermAttemptQuiz,
		PermChat,
		PermManageCourses,
		PermViewDashboard,
	},
}
