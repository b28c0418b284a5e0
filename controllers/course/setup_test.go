package controllers

import (
	"bytes"
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB wires an isolated in-memory database into the package globals.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-jwt-key",
		SaltRound: 4,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()

	user := models.User{
		Name:     name,
		Email:    email,
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestCourse(t *testing.T, db *gorm.DB, title string, price int64) courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		Title:       title,
		Description: "A course about " + title,
		Category:    "testing",
		CreatedBy:   "Test Author",
		Price:       price,
		Duration:    10,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func createTestLecture(t *testing.T, db *gorm.DB, courseID uint, title string) courseModels.Lecture {
	t.Helper()

	lecture := courseModels.Lecture{
		CourseID:    courseID,
		Title:       title,
		Description: "lecture",
		Video:       "uploads/" + title + ".mp4",
	}
	require.NoError(t, db.Create(&lecture).Error)
	return lecture
}

func subscribe(t *testing.T, db *gorm.DB, userID, courseID uint) courseModels.Progress {
	t.Helper()

	require.NoError(t, db.Create(&courseModels.Subscription{UserID: userID, CourseID: courseID}).Error)
	progress := courseModels.Progress{UserID: userID, CourseID: courseID}
	require.NoError(t, db.Create(&progress).Error)
	return progress
}

func authToken(t *testing.T, userID uint) string {
	t.Helper()

	token, err := middleware.GenerateJWT(userID)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}
