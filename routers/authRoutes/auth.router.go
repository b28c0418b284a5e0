package authRoutes

import (
	authControllers "elearn/controllers/auth"
	authValidators "elearn/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/verify", authValidators.Verify(), authControllers.Verify)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/forgot", authValidators.ForgotPassword(), authControllers.ForgotPassword)
	authGroup.Post("/reset", authValidators.ResetPassword(), authControllers.ResetPassword)
}
