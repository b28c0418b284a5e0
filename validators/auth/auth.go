package authValidator

import (
	"elearn/middleware"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type VerifyRequest struct {
	Otp             string `json:"otp" validate:"required,len=6,numeric"`
	ActivationToken string `json:"activationToken" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// fieldErrors converts validator output to the {field: message} map the
// client expects.
func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				errors[field] = field + " is required!"
			case "email":
				errors[field] = "Invalid email address!"
			case "min":
				errors[field] = field + " must be at least " + fe.Param() + " characters long!"
			case "len":
				errors[field] = field + " must be exactly " + fe.Param() + " characters!"
			default:
				errors[field] = "Invalid " + field + "!"
			}
		}
	}
	return errors
}

func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Email = strings.TrimSpace(strings.ToLower(reqData.Email))
		reqData.Name = strings.TrimSpace(reqData.Name)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

func Verify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(VerifyRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedVerify", reqData)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
		}

		reqData.Email = strings.TrimSpace(strings.ToLower(reqData.Email))

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

func ForgotPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ForgotPasswordRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Email = strings.TrimSpace(strings.ToLower(reqData.Email))

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedForgot", reqData)
		return c.Next()
	}
}

func ResetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.TrimSpace(c.Query("token")) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Reset token is required!", nil)
		}

		reqData := new(ResetPasswordRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedReset", reqData)
		return c.Next()
	}
}
