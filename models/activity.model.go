package models

import (
	"gorm.io/gorm"
)

// Activity is the persisted event log backing the admin dashboard feed.
type Activity struct {
	gorm.Model
	UserID    uint   `gorm:"index" json:"user_id"`
	Action    string `gorm:"size:50;not null" json:"action"`
	Detail    string `gorm:"size:255" json:"detail"`
	IsDeleted bool   `gorm:"default:false"`
}

const (
	ActivityUserRegistered = "USER_REGISTERED"
	ActivityCourseCreated  = "COURSE_CREATED"
	ActivityLectureAdded   = "LECTURE_ADDED"
	ActivityCourseDeleted  = "COURSE_DELETED"
	ActivityEnrollment     = "ENROLLMENT_COMPLETED"
	ActivityQuizCreated    = "QUIZ_CREATED"
	ActivityQuizSubmitted  = "QUIZ_SUBMITTED"
	ActivityRoleUpdated    = "ROLE_UPDATED"
)
