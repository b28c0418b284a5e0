package course

import "gorm.io/gorm"

// Subscription grants a user access to a course's lectures. One row per
// (user, course); the composite unique index makes grant replays no-ops.
type Subscription struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_subscription_user_course;not null"`
	CourseID uint `json:"course_id" gorm:"uniqueIndex:idx_subscription_user_course;not null"`
}
