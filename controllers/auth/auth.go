package authController

import (
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"elearn/utils"
	authValidators "elearn/validators/auth"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// Register starts the two-phase signup: it mails a 6-digit OTP and returns an
// activation token carrying the pending account. No user row is created yet.
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidators.RegisterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ? AND is_deleted = false", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already exists!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	otp := utils.GenerateOTP()
	expiresAt := time.Now().Add(5 * time.Minute)

	otpRecord := models.OTP{
		Email:       reqData.Email,
		Code:        otp,
		ExpiresAt:   expiresAt,
		Description: "Registration OTP",
	}
	if err := db.Create(&otpRecord).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create OTP!", nil)
	}

	// The pending account travels in the activation token, not the database
	claims := jwt.MapClaims{
		"name":     reqData.Name,
		"email":    reqData.Email,
		"password": string(hashedPassword),
		"iat":      time.Now().Unix(),
		"exp":      expiresAt.Unix(),
	}
	activationToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.AppConfig.ActivationSecret))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create activation token!", nil)
	}

	if err := utils.SendOTPEmail(reqData.Email, reqData.Name, otp); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP email!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent to your mail.", fiber.Map{
		"activationToken": activationToken,
	})
}

// Verify completes signup: checks the OTP against the activation token and
// creates the user.
func Verify(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerify").(*authValidators.VerifyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	token, err := jwt.Parse(reqData.ActivationToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.ActivationSecret), nil
	})
	if err != nil || !token.Valid {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "OTP expired!", nil)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid activation token!", nil)
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	password, _ := claims["password"].(string)
	if email == "" || password == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid activation token!", nil)
	}

	db := database.Database.Db

	var otpRecord models.OTP
	if err := db.Where("email = ? AND code = ? AND is_used = false AND is_deleted = false",
		email, reqData.Otp).First(&otpRecord).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Wrong OTP!", nil)
	}

	if otpRecord.ExpiresAt.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "OTP expired!", nil)
	}

	// Re-check the email; another verification may have won the race
	if err := db.Where("email = ? AND is_deleted = false", email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already exists!", nil)
	}

	newUser := models.User{
		Name:     name,
		Email:    email,
		Password: password, // already hashed at registration
	}
	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	otpRecord.IsUsed = true
	db.Save(&otpRecord)

	utils.RecordActivity(newUser.ID, models.ActivityUserRegistered, newUser.Email)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User registered.", nil)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidators.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = false", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No user with this email!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Wrong password!", nil)
	}

	// Update last login time
	user.LastLogin = time.Now()
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error saving last login time: %v", err)
	}

	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = forwarded
	}

	loginTracking := models.LoginTracking{
		UserID:    user.ID,
		IPAddress: ip,
		Device:    c.Get("User-Agent"),
		Timestamp: time.Now(),
	}
	if err := database.Database.Db.Create(&loginTracking).Error; err != nil {
		log.Printf("Error saving login tracking details: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	// Sanitize user data
	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, fmt.Sprintf("Welcome back %s", user.Name), fiber.Map{
		"user":  user,
		"token": token,
	})
}

func MyProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}

// ForgotPassword mails a signed reset link valid for 5 minutes.
func ForgotPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedForgot").(*authValidators.ForgotPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = false", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No user with this email!", nil)
	}

	claims := jwt.MapClaims{
		"email": user.Email,
		"iat":   time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.AppConfig.ForgotSecret))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create reset token!", nil)
	}

	if err := utils.SendForgotPasswordEmail(user.Email, token); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send reset email!", nil)
	}

	expire := time.Now().Add(5 * time.Minute)
	user.ResetPasswordExpire = &expire
	database.Database.Db.Save(&user)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reset password link sent to your mail.", nil)
}

func ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedReset").(*authValidators.ResetPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	token, err := jwt.Parse(c.Query("token"), func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.ForgotSecret), nil
	})
	if err != nil || !token.Valid {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Token expired!", nil)
	}

	claims, _ := token.Claims.(jwt.MapClaims)
	email, _ := claims["email"].(string)

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = false", email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No user with this email!", nil)
	}

	if user.ResetPasswordExpire == nil || user.ResetPasswordExpire.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Token expired!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	user.Password = string(hashedPassword)
	user.ResetPasswordExpire = nil
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset.", nil)
}

// LoginHistoryList returns the caller's recorded logins, newest first.
func LoginHistoryList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var history []models.LoginTracking
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = false", userID).
		Order("created_at desc").
		Limit(50).
		Find(&history).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch login history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login history.", history)
}
