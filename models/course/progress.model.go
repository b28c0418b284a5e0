package course

import "gorm.io/gorm"

// Progress is the per (user, course) completion record, created empty at
// enrollment finalization. Unique on the pair so duplicates cannot exist.
type Progress struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_progress_user_course;not null"`
	CourseID uint `json:"course_id" gorm:"uniqueIndex:idx_progress_user_course;not null"`
}

// CompletedLecture is one element of a progress record's completed set.
// Inserted with ON CONFLICT DO NOTHING so concurrent completion reports for
// different lectures never lose an update.
type CompletedLecture struct {
	gorm.Model
	ProgressID uint `json:"progress_id" gorm:"uniqueIndex:idx_completed_progress_lecture;not null"`
	LectureID  uint `json:"lecture_id" gorm:"uniqueIndex:idx_completed_progress_lecture;not null"`
}
