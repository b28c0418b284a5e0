package database

import (
	"elearn/models"
	courseModels "elearn/models/course"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
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

	RunMigrations(db)
	return db
}

func TestSeedPermissions_Idempotent(t *testing.T) {
	db := openTestDB(t)

	var before int64
	db.Model(&models.Permission{}).Count(&before)
	require.NotZero(t, before)

	require.NoError(t, SeedPermissions(db))

	var after int64
	db.Model(&models.Permission{}).Count(&after)
	require.Equal(t, before, after)
}

func TestSeedPermissions_RoleGrants(t *testing.T) {
	db := openTestDB(t)

	hasGrant := func(role, perm string) bool {
		var p models.Permission
		return db.Where("role = ? AND permission = ?", role, perm).First(&p).Error == nil
	}

	require.True(t, hasGrant("USER", models.PermEnroll))
	require.True(t, hasGrant("USER", models.PermChat))
	require.False(t, hasGrant("USER", models.PermManageCourses))

	require.True(t, hasGrant("ADMIN", models.PermManageCourses))
	require.True(t, hasGrant("ADMIN", models.PermViewDashboard))
}

func TestUniqueIndexes_RejectDuplicates(t *testing.T) {
	db := openTestDB(t)

	user := models.User{Name: "U", Email: "u@test.dev", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	dup := models.User{Name: "U2", Email: "u@test.dev", Password: "x"}
	require.Error(t, db.Create(&dup).Error)

	require.NoError(t, db.Create(&courseModels.Progress{UserID: 1, CourseID: 1}).Error)
	require.Error(t, db.Create(&courseModels.Progress{UserID: 1, CourseID: 1}).Error)

	require.NoError(t, db.Create(&courseModels.Subscription{UserID: 1, CourseID: 1}).Error)
	require.Error(t, db.Create(&courseModels.Subscription{UserID: 1, CourseID: 1}).Error)
}
