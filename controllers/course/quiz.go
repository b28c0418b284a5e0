package controllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"
	"elearn/utils"
	courseValidators "elearn/validators/course"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// answersMatch compares a submitted answer with the stored one after
// trimming and lowercasing both sides. "short" answers share the same rule,
// so " 4 " matches "4".
func answersMatch(submitted, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(correct))
}

// scoreAttempt grades a submission against the quiz's question set. Responses
// for unknown question ids are ignored, and each question contributes at most
// one point regardless of how often it appears in the submission; the total is
// always the number of questions in the quiz.
func scoreAttempt(questions []courseModels.QuizQuestion, responses []courseValidators.QuizAttemptResponse) (score, total int) {
	answered := make(map[uint]string, len(responses))
	for _, resp := range responses {
		// First response for a question wins
		if _, seen := answered[resp.QuestionID]; !seen {
			answered[resp.QuestionID] = resp.Selected
		}
	}

	for _, q := range questions {
		selected, ok := answered[q.ID]
		if !ok {
			continue
		}
		if answersMatch(selected, q.CorrectAnswer) {
			score++
		}
	}

	return score, len(questions)
}

type quizQuestionView struct {
	ID            uint     `json:"id"`
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	OrderIndex    int      `json:"orderIndex"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
}

// GetCourseQuiz returns the quizzes of a course with their questions. The
// stored answers stay server-side unless the caller is an admin.
func GetCourseQuiz(c *fiber.Ctx) error {
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

	if user.Role != "ADMIN" && !isSubscribed(database.Database.Db, userID, course.ID) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You have not subscribed to this course!", nil)
	}

	var quizzes []courseModels.Quiz
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = false", courseID).Find(&quizzes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
	}

	type quizView struct {
		ID        uint               `json:"id"`
		Title     string             `json:"title"`
		Questions []quizQuestionView `json:"questions"`
	}

	result := make([]quizView, 0, len(quizzes))
	for _, quiz := range quizzes {
		var questions []courseModels.QuizQuestion
		if err := database.Database.Db.Where("quiz_id = ?", quiz.ID).
			Order("order_index asc").Find(&questions).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz questions!", nil)
		}

		views := make([]quizQuestionView, 0, len(questions))
		for _, q := range questions {
			var options []string
			if len(q.Options) > 0 {
				if err := json.Unmarshal(q.Options, &options); err != nil {
					log.Printf("Error decoding quiz options: %v", err)
				}
			}
			view := quizQuestionView{
				ID:         q.ID,
				Question:   q.Question,
				Type:       q.Type,
				Options:    options,
				OrderIndex: q.OrderIndex,
			}
			if user.Role == "ADMIN" {
				view.CorrectAnswer = q.CorrectAnswer
			}
			views = append(views, view)
		}

		result = append(result, quizView{ID: quiz.ID, Title: quiz.Title, Questions: views})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quizzes fetched successfully!", fiber.Map{
		"quizzes": result,
	})
}

// SubmitQuizAttempt grades a submission server-side and stores it. One
// attempt per (user, quiz); a resubmission overwrites the previous one.
func SubmitQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedAttempt").(*courseValidators.QuizAttemptRequest)

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = false", reqData.QuizID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if !isSubscribed(db, userID, quiz.CourseID) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You have not subscribed to this course!", nil)
	}

	var questions []courseModels.QuizQuestion
	if err := db.Where("quiz_id = ?", quiz.ID).Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz questions!", nil)
	}

	score, total := scoreAttempt(questions, reqData.Responses)

	responsesJSON, err := json.Marshal(reqData.Responses)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store attempt!", nil)
	}

	attempt := courseModels.QuizAttempt{
		UserID:    userID,
		QuizID:    quiz.ID,
		Responses: datatypes.JSON(responsesJSON),
		Score:     score,
		Total:     total,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "quiz_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"responses", "score", "total", "updated_at"}),
	}).Create(&attempt).Error; err != nil {
		log.Printf("Error saving quiz attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store attempt!", nil)
	}

	utils.RecordActivity(userID, models.ActivityQuizSubmitted, fmt.Sprintf("quiz %d score %d/%d", quiz.ID, score, total))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully!", fiber.Map{
		"score": score,
		"total": total,
	})
}

// UpdateQuizAttempt regrades an existing attempt with new responses.
func UpdateQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attemptID := c.Locals("attemptID").(int)
	reqData := c.Locals("validatedAttempt").(*courseValidators.QuizAttemptRequest)

	db := database.Database.Db

	var attempt courseModels.QuizAttempt
	if err := db.Where("id = ? AND user_id = ?", attemptID, userID).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	var questions []courseModels.QuizQuestion
	if err := db.Where("quiz_id = ?", attempt.QuizID).Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz questions!", nil)
	}

	score, total := scoreAttempt(questions, reqData.Responses)

	responsesJSON, err := json.Marshal(reqData.Responses)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store attempt!", nil)
	}

	attempt.Responses = datatypes.JSON(responsesJSON)
	attempt.Score = score
	attempt.Total = total
	if err := db.Save(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz attempt updated!", fiber.Map{
		"score": score,
		"total": total,
	})
}

// GetQuizAttempt returns the caller's attempt for one quiz.
func GetQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var attempt courseModels.QuizAttempt
	if err := database.Database.Db.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No attempt for this quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt fetched successfully!", attempt)
}

// GetAllQuizAttempts returns the caller's attempts plus summary analytics.
func GetAllQuizAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var attempts []courseModels.QuizAttempt
	if err := database.Database.Db.Where("user_id = ?", userID).
		Order("created_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	var totalScore, totalPossible int
	for _, a := range attempts {
		totalScore += a.Score
		totalPossible += a.Total
	}

	averageScore := 0.0
	if totalPossible > 0 {
		averageScore = float64(totalScore) * 100 / float64(totalPossible)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts":      attempts,
		"totalAttempts": len(attempts),
		"averageScore":  averageScore,
	})
}
