package utils

import (
	"elearn/database"
	"elearn/models"
	courseModels "elearn/models/course"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[MAINTENANCE %s] %s", time.Now().Format(time.RFC3339), message)
}

// expireStalePayments marks checkout sessions that never completed as EXPIRED
// so they stop counting as open orders.
func expireStalePayments() {
	db := database.Database.Db
	cutoff := time.Now().Add(-24 * time.Hour)

	res := db.Model(&courseModels.Payment{}).
		Where("status = ? AND created_at < ?", courseModels.PaymentStatusPending, cutoff).
		Update("status", courseModels.PaymentStatusExpired)
	if res.Error != nil {
		logScheduler("Error expiring stale payments: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler("Expired stale pending payments")
	}
}

// purgeExpiredOTPs hard-deletes verification codes past their expiry.
func purgeExpiredOTPs() {
	db := database.Database.Db

	if err := db.Unscoped().
		Where("expires_at < ?", time.Now()).
		Delete(&models.OTP{}).Error; err != nil {
		logScheduler("Error purging expired OTPs: " + err.Error())
	}
}

// StartMaintenanceScheduler runs hourly cleanup of stale payments and OTPs.
func StartMaintenanceScheduler() {
	c := cron.New()

	_, err := c.AddFunc("@hourly", func() {
		expireStalePayments()
		purgeExpiredOTPs()
	})
	if err != nil {
		log.Fatalf("Failed to register maintenance job: %v", err)
	}

	c.Start()
	logScheduler("Maintenance scheduler started")
}
