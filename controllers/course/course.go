package controllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// isSubscribed reports whether a (user, course) subscription row exists.
func isSubscribed(db *gorm.DB, userID, courseID uint) bool {
	var sub courseModels.Subscription
	return db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&sub).Error == nil
}

// GetAllCourses is the public catalog listing.
func GetAllCourses(c *fiber.Ctx) error {
	var courses []courseModels.Course
	if err := database.Database.Db.Where("is_deleted = false").Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetSingleCourse is the public catalog detail.
func GetSingleCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course": course,
	})
}

// FetchLectures returns a course's lectures. Admins always pass the gate;
// everyone else needs a subscription. Denials leak no lecture data.
func FetchLectures(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Admins manage content for courses they never purchased
	if user.Role != "ADMIN" && !isSubscribed(database.Database.Db, userID, uint(courseID)) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You have not subscribed to this course!", nil)
	}

	var lectures []courseModels.Lecture
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = false", courseID).
		Order("created_at asc").Find(&lectures).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lectures!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lectures fetched successfully!", fiber.Map{
		"lectures": lectures,
	})
}

// FetchLecture returns a single lecture behind the same gate.
func FetchLecture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lectureID := c.Locals("lectureID").(int)

	var lecture courseModels.Lecture
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", lectureID).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	if user.Role != "ADMIN" && !isSubscribed(database.Database.Db, userID, lecture.CourseID) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You have not subscribed to this course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture fetched successfully!", fiber.Map{
		"lecture": lecture,
	})
}

// GetMyCourses lists the catalog entries the caller has purchased.
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var subscriptions []courseModels.Subscription
	if err := database.Database.Db.Where("user_id = ?", userID).Find(&subscriptions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subscriptions!", nil)
	}

	courseIDs := make([]uint, len(subscriptions))
	for i, sub := range subscriptions {
		courseIDs[i] = sub.CourseID
	}

	var courses []courseModels.Course
	if len(courseIDs) > 0 {
		if err := database.Database.Db.Where("id IN ? AND is_deleted = false", courseIDs).Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "My courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}
