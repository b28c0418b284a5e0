package authController

import (
	"bytes"
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	authValidators "elearn/validators/auth"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:           "test-jwt-key",
		ActivationSecret: "test-activation-secret",
		ForgotSecret:     "test-forgot-secret",
		SaltRound:        4,
	}

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

func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Post("/auth/register", authValidators.Register(), Register)
	app.Post("/auth/verify", authValidators.Verify(), Verify)
	app.Post("/auth/login", authValidators.Login(), Login)
	app.Get("/user/me", middleware.JWTMiddleware, MyProfile)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// registerAndVerify walks the two-phase signup and returns the created user.
func registerAndVerify(t *testing.T, app *fiber.App, db *gorm.DB, name, email, password string) models.User {
	t.Helper()

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	activationToken := body["data"].(map[string]interface{})["activationToken"].(string)

	var otp models.OTP
	require.NoError(t, db.Where("email = ?", email).Order("created_at desc").First(&otp).Error)

	resp = postJSON(t, app, "/auth/verify", fiber.Map{
		"otp": otp.Code, "activationToken": activationToken,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("email = ?", email).First(&user).Error)
	return user
}

func TestRegister_NoUserRowBeforeVerification(t *testing.T) {
	db := setupTestDB(t)
	app := newAuthApp()

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"name": "Asha", "email": "asha@test.dev", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.User{}).Count(&count)
	require.EqualValues(t, 0, count)

	var otpCount int64
	db.Model(&models.OTP{}).Where("email = ?", "asha@test.dev").Count(&otpCount)
	require.EqualValues(t, 1, otpCount)
}

func TestRegisterVerifyLogin_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	app := newAuthApp()

	user := registerAndVerify(t, app, db, "Asha", "asha@test.dev", "secret123")
	require.Equal(t, "USER", user.Role)
	require.NotEqual(t, "secret123", user.Password)

	resp := postJSON(t, app, "/auth/login", fiber.Map{
		"email": "asha@test.dev", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	token := body["data"].(map[string]interface{})["token"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	meResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, meResp.StatusCode)
}

func TestVerify_WrongOTPRejected(t *testing.T) {
	db := setupTestDB(t)
	app := newAuthApp()

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"name": "Asha", "email": "asha@test.dev", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	activationToken := body["data"].(map[string]interface{})["activationToken"].(string)

	resp = postJSON(t, app, "/auth/verify", fiber.Map{
		"otp": "000000", "activationToken": activationToken,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	db.Model(&models.User{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestVerify_OTPIsSingleUse(t *testing.T) {
	db := setupTestDB(t)
	app := newAuthApp()

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"name": "Asha", "email": "asha@test.dev", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	activationToken := body["data"].(map[string]interface{})["activationToken"].(string)

	var otp models.OTP
	require.NoError(t, db.Where("email = ?", "asha@test.dev").First(&otp).Error)

	resp = postJSON(t, app, "/auth/verify", fiber.Map{
		"otp": otp.Code, "activationToken": activationToken,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "/auth/verify", fiber.Map{
		"otp": otp.Code, "activationToken": activationToken,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	db := setupTestDB(t)
	app := newAuthApp()

	registerAndVerify(t, app, db, "Asha", "asha@test.dev", "secret123")

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"name": "Other", "email": "asha@test.dev", "password": "different1",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin_WrongPasswordRejected(t *testing.T) {
	db := setupTestDB(t)
	app := newAuthApp()

	registerAndVerify(t, app, db, "Asha", "asha@test.dev", "secret123")

	resp := postJSON(t, app, "/auth/login", fiber.Map{
		"email": "asha@test.dev", "password": "not-the-password",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_RecordsTracking(t *testing.T) {
	db := setupTestDB(t)
	app := newAuthApp()

	user := registerAndVerify(t, app, db, "Asha", "asha@test.dev", "secret123")

	resp := postJSON(t, app, "/auth/login", fiber.Map{
		"email": "asha@test.dev", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.LoginTracking{}).Where("user_id = ?", user.ID).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestRegister_ValidationErrors(t *testing.T) {
	setupTestDB(t)
	app := newAuthApp()

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"name": "A", "email": "not-an-email", "password": "123",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
