package controllers

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// AddProgress marks one lecture of a course as completed for the caller.
// Completion is a set membership, so replays and concurrent submissions for
// different lectures both land correctly.
func AddProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lectureID := c.Locals("lectureID").(int)

	db := database.Database.Db

	var progress courseModels.Progress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No progress record for this course!", nil)
	}

	var lecture courseModels.Lecture
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = false", lectureID, courseID).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found in this course!", nil)
	}

	completed := courseModels.CompletedLecture{
		ProgressID: progress.ID,
		LectureID:  lecture.ID,
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&completed)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
	}

	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress already recorded.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "New progress added.", nil)
}

// GetYourProgress reports the caller's completion for a course as a
// percentage of non-deleted lectures. A course with no lectures is 0%.
func GetYourProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var progress courseModels.Progress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No progress record for this course!", nil)
	}

	var liveLectureIDs []uint
	if err := db.Model(&courseModels.Lecture{}).
		Where("course_id = ? AND is_deleted = false", courseID).
		Pluck("id", &liveLectureIDs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	totalLectures := int64(len(liveLectureIDs))

	// Completions of since-deleted lectures must not count
	var completedLectures []courseModels.CompletedLecture
	if err := db.Where("progress_id = ? AND lecture_id IN ?", progress.ID, liveLectureIDs).
		Find(&completedLectures).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	completedIDs := make([]uint, len(completedLectures))
	for i, cl := range completedLectures {
		completedIDs[i] = cl.LectureID
	}

	completed := int64(len(completedLectures))
	percentage := 0
	if totalLectures > 0 {
		percentage = int(completed * 100 / totalLectures)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"courseProgressPercentage": percentage,
		"completedLectures":        completed,
		"allLectures":              totalLectures,
		"completedLectureIds":      completedIDs,
	})
}
