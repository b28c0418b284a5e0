package utils

import (
	"elearn/database"
	"elearn/models"
	"fmt"
	"log"
	"math/rand"
	"time"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

// RecordActivity appends an event to the dashboard activity log. Failures are
// logged and swallowed; the log is not worth failing a request over.
func RecordActivity(userID uint, action, detail string) {
	activity := models.Activity{
		UserID: userID,
		Action: action,
		Detail: detail,
	}
	if err := database.Database.Db.Create(&activity).Error; err != nil {
		log.Printf("Error recording activity %s: %v", action, err)
	}
}
