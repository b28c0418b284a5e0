package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	QuestionTypeMCQ       = "mcq"
	QuestionTypeTrueFalse = "truefalse"
	QuestionTypeShort     = "short"
)

type Quiz struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	Title     string `json:"title"`
	CreatedBy uint   `json:"created_by"`
	IsDeleted bool   `gorm:"default:false"`
}

type QuizQuestion struct {
	gorm.Model
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	Question      string         `json:"question"`
	Type          string         `json:"type" gorm:"default:'mcq'"` // mcq, truefalse, short
	Options       datatypes.JSON `json:"options"`                   // JSON array of option strings
	CorrectAnswer string         `json:"correct_answer,omitempty"`
	OrderIndex    int            `json:"order_index" gorm:"default:0"`
}

// QuizAttempt retains only the latest attempt per (user, quiz); a
// resubmission overwrites responses and score in place.
type QuizAttempt struct {
	gorm.Model
	UserID    uint           `json:"user_id" gorm:"uniqueIndex:idx_attempt_user_quiz;not null"`
	QuizID    uint           `json:"quiz_id" gorm:"uniqueIndex:idx_attempt_user_quiz;not null"`
	Responses datatypes.JSON `json:"responses"` // JSON array of {question_id, selected}
	Score     int            `json:"score"`
	Total     int            `json:"total"`
}
