package course

import "gorm.io/gorm"

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusExpired   = "EXPIRED"
)

// Payment is created PENDING at checkout and flipped to COMPLETED exactly
// once by enrollment finalization. OrderID is the gateway session identifier;
// (user, course) are bound here at session-creation time rather than in
// gateway metadata.
type Payment struct {
	gorm.Model
	OrderID          string `json:"order_id" gorm:"uniqueIndex;not null"`
	UserID           uint   `json:"user_id" gorm:"index;not null"`
	CourseID         uint   `json:"course_id" gorm:"index;not null"`
	Amount           int64  `json:"amount"`
	Status           string `json:"status" gorm:"default:'PENDING'"`
	GatewayReference string `json:"gateway_reference"` // gateway transaction id once paid
}
