package userRoutes

import (
	authControllers "elearn/controllers/auth"
	controllers "elearn/controllers/course"
	"elearn/middleware"
	"elearn/models"
	courseValidators "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user", middleware.JWTMiddleware)

	userGroup.Get("/me", authControllers.MyProfile)
	userGroup.Get("/login/history", authControllers.LoginHistoryList)

	userGroup.Post("/progress",
		middleware.RequirePermission(models.PermTrackProgress),
		courseValidators.AddProgress(), controllers.AddProgress)
	userGroup.Get("/progress",
		middleware.RequirePermission(models.PermTrackProgress),
		courseValidators.GetProgress(), controllers.GetYourProgress)

	// Static quiz paths before the :courseId catch-all
	userGroup.Post("/quiz/attempt",
		middleware.RequirePermission(models.PermAttemptQuiz),
		courseValidators.SubmitQuizAttempt(), controllers.SubmitQuizAttempt)
	userGroup.Put("/quiz/attempt/:id",
		middleware.RequirePermission(models.PermAttemptQuiz),
		courseValidators.UpdateQuizAttempt(), controllers.UpdateQuizAttempt)
	userGroup.Get("/quiz/attempt",
		middleware.RequirePermission(models.PermAttemptQuiz),
		courseValidators.QuizID(), controllers.GetQuizAttempt)
	userGroup.Get("/quiz/attempts",
		middleware.RequirePermission(models.PermAttemptQuiz),
		controllers.GetAllQuizAttempts)
	userGroup.Get("/quiz/:courseId",
		middleware.RequirePermission(models.PermAttemptQuiz),
		courseValidators.CourseIDParam(), controllers.GetCourseQuiz)
}
