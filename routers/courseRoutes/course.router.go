package courseRoutes

import (
	chatControllers "elearn/controllers/chat"
	controllers "elearn/controllers/course"
	"elearn/middleware"
	"elearn/models"
	courseValidators "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Public catalog; static paths before :id
	courseGroup.Get("/all", controllers.GetAllCourses)
	courseGroup.Get("/mycourse", middleware.JWTMiddleware, controllers.GetMyCourses)
	courseGroup.Get("/lecture/:id", middleware.JWTMiddleware,
		courseValidators.LectureID(), controllers.FetchLecture)

	// Purchase flow
	courseGroup.Post("/checkout/:id", middleware.JWTMiddleware,
		middleware.RequirePermission(models.PermEnroll),
		courseValidators.CourseID(), controllers.Checkout)
	courseGroup.Post("/payment/verify", middleware.JWTMiddleware,
		middleware.RequirePermission(models.PermEnroll),
		courseValidators.PaymentVerify(), controllers.PaymentVerification)
	courseGroup.Post("/payment/webhook", controllers.PaymentWebhook)
	courseGroup.Post("/payment/success/:id", middleware.JWTMiddleware,
		middleware.RequirePermission(models.PermEnroll),
		courseValidators.CourseID(), controllers.PaymentSuccess)

	courseGroup.Get("/:id", courseValidators.CourseID(), controllers.GetSingleCourse)
	courseGroup.Get("/:id/lectures", middleware.JWTMiddleware,
		courseValidators.CourseID(), controllers.FetchLectures)

	// Tutoring assistant
	app.Post("/chat", middleware.JWTMiddleware,
		middleware.RequirePermission(models.PermChat),
		courseValidators.ChatRequest(), chatControllers.ChatCompletion)
}
