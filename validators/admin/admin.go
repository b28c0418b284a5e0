package adminValidator

import (
	"elearn/middleware"
	courseModels "elearn/models/course"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateCourseRequest is the multipart form body for course creation.
type CreateCourseRequest struct {
	Title       string `form:"title" validate:"required,min=3"`
	Description string `form:"description" validate:"required,min=5"`
	Category    string `form:"category" validate:"required"`
	CreatedBy   string `form:"createdBy" validate:"required"`
	Duration    int64  `form:"duration" validate:"gte=0"`
	Price       int64  `form:"price" validate:"gte=0"`
}

// CreateLectureRequest is the multipart form body for adding a lecture.
type CreateLectureRequest struct {
	Title       string `form:"title" validate:"required,min=3"`
	Description string `form:"description" validate:"required"`
}

// QuizQuestionInput is one question in a quiz creation request.
type QuizQuestionInput struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// CreateQuizRequest is the body for quiz creation.
type CreateQuizRequest struct {
	Title     string              `json:"title"`
	Questions []QuizQuestionInput `json:"questions"`
}

func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				errors[field] = field + " is required!"
			case "min":
				errors[field] = field + " must be at least " + fe.Param() + " characters long!"
			case "gte":
				errors[field] = field + " must not be negative!"
			default:
				errors[field] = "Invalid " + field + "!"
			}
		}
	}
	return errors
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		if _, err := c.FormFile("file"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Image upload failed or missing!", nil)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func CreateLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(CreateLectureRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		if _, err := c.FormFile("file"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please upload a video!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedLecture", reqData)
		return c.Next()
	}
}

// CreateQuiz validates the quiz body and normalizes per-type question rules:
// mcq needs at least two options, truefalse is pinned to True/False, short
// answer carries no options.
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("courseId")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(CreateQuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Title) == "" || len(reqData.Questions) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "All fields are required!", nil)
		}

		for i := range reqData.Questions {
			q := &reqData.Questions[i]
			if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.CorrectAnswer) == "" || strings.TrimSpace(q.Type) == "" {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
					"Each question must have a question, correct answer, and type!", nil)
			}

			switch q.Type {
			case courseModels.QuestionTypeMCQ:
				if len(q.Options) < 2 {
					return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
						"MCQ questions must have at least 2 options!", nil)
				}
			case courseModels.QuestionTypeTrueFalse:
				q.Options = []string{"True", "False"}
			case courseModels.QuestionTypeShort:
				q.Options = []string{}
			default:
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question type!", nil)
			}
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// UserRoleUpdate validates the :id path parameter for the role toggle.
func UserRoleUpdate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		targetID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || targetID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		c.Locals("targetUserID", targetID)
		return c.Next()
	}
}
