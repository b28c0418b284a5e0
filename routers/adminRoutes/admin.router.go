package adminRoutes

import (
	adminControllers "elearn/controllers/admin"
	"elearn/middleware"
	"elearn/models"
	adminValidators "elearn/validators/admin"
	courseValidators "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware)

	manage := middleware.RequirePermission(models.PermManageCourses)
	dashboard := middleware.RequirePermission(models.PermViewDashboard)

	// Course management
	adminGroup.Post("/course/new", manage, adminValidators.CreateCourse(), adminControllers.CreateCourse)
	adminGroup.Post("/course/:id/lecture", manage, adminValidators.CreateLecture(), adminControllers.AddLecture)
	adminGroup.Post("/course/:courseId/quiz", manage, adminValidators.CreateQuiz(), adminControllers.CreateQuiz)
	adminGroup.Delete("/course/:id", manage, courseValidators.CourseID(), adminControllers.DeleteCourse)
	adminGroup.Delete("/lecture/:id", manage, courseValidators.LectureID(), adminControllers.DeleteLecture)

	// Dashboard
	adminGroup.Get("/stats", dashboard, adminControllers.GetAllStats)
	adminGroup.Get("/activity", dashboard, adminControllers.GetActivity)
	adminGroup.Get("/users", dashboard, adminControllers.GetAllUsers)

	// Role toggle is superadmin-only
	adminGroup.Put("/user/:id/role", middleware.RequireSuperAdmin,
		adminValidators.UserRoleUpdate(), adminControllers.UpdateRole)
}
