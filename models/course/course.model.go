package course

import "gorm.io/gorm"

// Course represents a catalog entry
type Course struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       int64  `json:"price" gorm:"default:0"`    // whole currency units
	Duration    int64  `json:"duration" gorm:"default:0"` // duration in hours
	CreatedBy   string `json:"created_by"`
	Image       string `json:"image"` // uploaded image path
	IsDeleted   bool   `gorm:"default:false"`
}

// Lecture belongs to exactly one course
type Lecture struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Video       string `json:"video"` // uploaded video path
	IsDeleted   bool   `gorm:"default:false"`
}
