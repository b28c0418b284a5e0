package utils

import (
	"elearn/database"
	"elearn/models"
	courseModels "elearn/models/course"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSchedulerDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	return db
}

func TestExpireStalePayments(t *testing.T) {
	db := setupSchedulerDB(t)

	stale := courseModels.Payment{
		OrderID: "order-stale", UserID: 1, CourseID: 1,
		Amount: 100, Status: courseModels.PaymentStatusPending,
	}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Model(&stale).
		Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	fresh := courseModels.Payment{
		OrderID: "order-fresh", UserID: 1, CourseID: 1,
		Amount: 100, Status: courseModels.PaymentStatusPending,
	}
	require.NoError(t, db.Create(&fresh).Error)

	done := courseModels.Payment{
		OrderID: "order-done", UserID: 1, CourseID: 1,
		Amount: 100, Status: courseModels.PaymentStatusCompleted,
	}
	require.NoError(t, db.Create(&done).Error)
	require.NoError(t, db.Model(&done).
		Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	expireStalePayments()

	check := func(id uint, want string) {
		var p courseModels.Payment
		require.NoError(t, db.First(&p, id).Error)
		require.Equal(t, want, p.Status)
	}
	check(stale.ID, courseModels.PaymentStatusExpired)
	check(fresh.ID, courseModels.PaymentStatusPending)
	check(done.ID, courseModels.PaymentStatusCompleted)
}

func TestPurgeExpiredOTPs(t *testing.T) {
	db := setupSchedulerDB(t)

	expired := models.OTP{Email: "a@test.dev", Code: "111111", ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, db.Create(&expired).Error)

	live := models.OTP{Email: "b@test.dev", Code: "222222", ExpiresAt: time.Now().Add(5 * time.Minute)}
	require.NoError(t, db.Create(&live).Error)

	purgeExpiredOTPs()

	var count int64
	db.Model(&models.OTP{}).Count(&count)
	require.EqualValues(t, 1, count)

	var remaining models.OTP
	require.NoError(t, db.First(&remaining).Error)
	require.Equal(t, "b@test.dev", remaining.Email)
}
