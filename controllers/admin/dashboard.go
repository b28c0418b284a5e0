package adminController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"
	"elearn/utils"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// GetAllStats aggregates the dashboard counters from live data.
func GetAllStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, totalCourses, totalLectures, totalSubscriptions, totalQuizzes int64
	db.Model(&models.User{}).Where("is_deleted = false").Count(&totalUsers)
	db.Model(&courseModels.Course{}).Where("is_deleted = false").Count(&totalCourses)
	db.Model(&courseModels.Lecture{}).Where("is_deleted = false").Count(&totalLectures)
	db.Model(&courseModels.Subscription{}).Count(&totalSubscriptions)
	db.Model(&courseModels.Quiz{}).Where("is_deleted = false").Count(&totalQuizzes)

	var totalRevenue int64
	db.Model(&courseModels.Payment{}).
		Where("status = ?", courseModels.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalRevenue)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"totalUsers":         totalUsers,
		"totalCourses":       totalCourses,
		"totalLectures":      totalLectures,
		"totalSubscriptions": totalSubscriptions,
		"totalQuizzes":       totalQuizzes,
		"totalRevenue":       totalRevenue,
	})
}

// GetActivity returns the recent platform event feed, newest first.
func GetActivity(c *fiber.Ctx) error {
	var activities []models.Activity
	if err := database.Database.Db.
		Where("is_deleted = false").
		Order("created_at desc").
		Limit(50).
		Find(&activities).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch activity!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Activity fetched successfully!", activities)
}

// GetAllUsers lists every account except the caller's.
func GetAllUsers(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var users []models.User
	if err := database.Database.Db.
		Where("id != ? AND is_deleted = false", userID).
		Order("created_at desc").
		Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", users)
}

// UpdateRole toggles a user between USER and ADMIN. Superadmin only, and
// superadmin accounts themselves are never toggled.
func UpdateRole(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	targetID := c.Locals("targetUserID").(int)

	var target models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", targetID).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if target.MainRole == "SUPERADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Cannot change a superadmin's role!", nil)
	}

	if target.Role == "ADMIN" {
		target.Role = "USER"
	} else {
		target.Role = "ADMIN"
	}
	if err := database.Database.Db.Save(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	utils.RecordActivity(userID, models.ActivityRoleUpdated, fmt.Sprintf("user %d -> %s", target.ID, target.Role))

	return middleware.JsonResponse(c, fiber.StatusOK, true, fmt.Sprintf("Role updated to %s", target.Role), fiber.Map{
		"user": fiber.Map{
			"id":   target.ID,
			"role": target.Role,
		},
	})
}
