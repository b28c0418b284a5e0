package adminController

import (
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"
	"elearn/utils"
	adminValidators "elearn/validators/admin"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateCourse adds a catalog entry with its poster image.
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedCourse").(*adminValidators.CreateCourseRequest)

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Image upload failed or missing!", nil)
	}

	imagePath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving course image: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save image!", nil)
	}

	course := courseModels.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		Category:    reqData.Category,
		CreatedBy:   reqData.CreatedBy,
		Duration:    reqData.Duration,
		Price:       reqData.Price,
		Image:       imagePath,
	}
	if err := database.Database.Db.Create(&course).Error; err != nil {
		utils.RemoveFile(imagePath)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	utils.RecordActivity(userID, models.ActivityCourseCreated, course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", fiber.Map{
		"course": course,
	})
}

// AddLecture attaches a video lecture to a course.
func AddLecture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	reqData := c.Locals("validatedLecture").(*adminValidators.CreateLectureRequest)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please upload a video!", nil)
	}

	videoPath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving lecture video: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save video!", nil)
	}

	lecture := courseModels.Lecture{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Video:       videoPath,
	}
	if err := database.Database.Db.Create(&lecture).Error; err != nil {
		utils.RemoveFile(videoPath)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add lecture!", nil)
	}

	utils.RecordActivity(userID, models.ActivityLectureAdded, lecture.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lecture added successfully!", fiber.Map{
		"lecture": lecture,
	})
}

// DeleteLecture removes a lecture and its media file.
func DeleteLecture(c *fiber.Ctx) error {
	lectureID := c.Locals("lectureID").(int)

	var lecture courseModels.Lecture
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", lectureID).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	lecture.IsDeleted = true
	if err := database.Database.Db.Save(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lecture!", nil)
	}

	utils.RemoveFile(lecture.Video)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture deleted.", nil)
}

// DeleteCourse removes a course and everything hanging off it: lectures and
// their media, quizzes with questions, and learner subscriptions. The writes
// share one transaction; files are cleaned up after it commits.
func DeleteCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lectures []courseModels.Lecture
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = false", course.ID).Find(&lectures).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&courseModels.Lecture{}).
			Where("course_id = ?", course.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		var quizIDs []uint
		if err := tx.Model(&courseModels.Quiz{}).
			Where("course_id = ?", course.ID).
			Pluck("id", &quizIDs).Error; err != nil {
			return err
		}
		if len(quizIDs) > 0 {
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&courseModels.QuizQuestion{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&courseModels.Quiz{}).
				Where("id IN ?", quizIDs).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("course_id = ?", course.ID).Delete(&courseModels.Subscription{}).Error; err != nil {
			return err
		}

		course.IsDeleted = true
		return tx.Save(&course).Error
	})
	if err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	for _, lecture := range lectures {
		utils.RemoveFile(lecture.Video)
	}
	utils.RemoveFile(course.Image)

	utils.RecordActivity(userID, models.ActivityCourseDeleted, course.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted.", nil)
}

// CreateQuiz stores a quiz with its questions for a course.
func CreateQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	reqData := c.Locals("validatedQuiz").(*adminValidators.CreateQuizRequest)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var quiz courseModels.Quiz
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		quiz = courseModels.Quiz{
			CourseID:  course.ID,
			Title:     reqData.Title,
			CreatedBy: userID,
		}
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}

		for i, q := range reqData.Questions {
			optionsJSON, err := json.Marshal(q.Options)
			if err != nil {
				return err
			}

			question := courseModels.QuizQuestion{
				QuizID:        quiz.ID,
				Question:      q.Question,
				Type:          q.Type,
				Options:       optionsJSON,
				CorrectAnswer: q.CorrectAnswer,
				OrderIndex:    i,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Printf("Error creating quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	utils.RecordActivity(userID, models.ActivityQuizCreated, quiz.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", fiber.Map{
		"quiz": quiz,
	})
}
