package courseValidator

import (
	"elearn/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CourseID validates the :id path parameter and stores it as an int.
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// LectureID validates the :id path parameter for lecture endpoints.
func LectureID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lectureIDStr := strings.TrimSpace(c.Params("id"))

		lectureID, err := strconv.Atoi(lectureIDStr)
		if err != nil || lectureID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lecture ID!", nil)
		}

		c.Locals("lectureID", lectureID)
		return c.Next()
	}
}

// CourseIDParam validates the :courseId path parameter.
func CourseIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("courseId")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// QuizID validates the quizId query parameter for attempt lookup.
func QuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID, err := strconv.Atoi(strings.TrimSpace(c.Query("quizId")))
		if err != nil || quizID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quizId query parameter!", nil)
		}

		c.Locals("quizID", quizID)
		return c.Next()
	}
}

// AddProgress validates the course and lectureId query parameters.
func AddProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Query("course")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course query parameter!", nil)
		}

		lectureID, err := strconv.Atoi(strings.TrimSpace(c.Query("lectureId")))
		if err != nil || lectureID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lectureId query parameter!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("lectureID", lectureID)
		return c.Next()
	}
}

// GetProgress validates the course query parameter.
func GetProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Query("course")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course query parameter!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// PaymentVerify validates the session id body.
func PaymentVerify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SessionID string `json:"session_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.SessionID) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "session_id is required!", nil)
		}

		c.Locals("sessionID", strings.TrimSpace(reqData.SessionID))
		return c.Next()
	}
}

// QuizAttemptResponse is one submitted answer.
type QuizAttemptResponse struct {
	QuestionID uint   `json:"questionId"`
	Selected   string `json:"selected"`
}

// QuizAttemptRequest is a quiz submission; the score is computed server-side.
type QuizAttemptRequest struct {
	QuizID    uint                  `json:"quizId"`
	Responses []QuizAttemptResponse `json:"responses"`
}

func SubmitQuizAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(QuizAttemptRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.QuizID == 0 {
			errors["quizId"] = "quizId is required!"
		}
		if len(reqData.Responses) == 0 {
			errors["responses"] = "At least one response is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAttempt", reqData)
		return c.Next()
	}
}

func UpdateQuizAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		attemptID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || attemptID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Attempt ID!", nil)
		}

		reqData := new(QuizAttemptRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Responses) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "At least one response is required!", nil)
		}

		c.Locals("attemptID", attemptID)
		c.Locals("validatedAttempt", reqData)
		return c.Next()
	}
}

// ChatRequest validates the chat assistant message body.
func ChatRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Message string `json:"message"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Message) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Message is required!", nil)
		}

		c.Locals("chatMessage", strings.TrimSpace(reqData.Message))
		return c.Next()
	}
}
