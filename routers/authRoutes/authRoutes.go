package authRoutes

import (
	authControllers "github.com/rashinkp/byway-sub000/controllers/auth"
	"github.com/rashinkp/byway-sub000/middleware"
	authValidators "github.com/rashinkp/byway-sub000/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/send/otp", authControllers.SendOTP)
	authGroup.Patch("/verify/otp", authControllers.VerifyOTP)
	authGroup.Post("/forgot/password/send/otp", authControllers.ForgotPasswordSendOTP)
	authGroup.Patch("/forgot/password/verify/otp", authControllers.ForgotPasswordVerifyOTP)
	authGroup.Patch("/reset/password", middleware.JWTMiddleware, authControllers.ResetPassword)
	authGroup.Put("/change/login/password", authValidators.ChangePassword(), middleware.JWTMiddleware, authControllers.ChangeLoginPassword)
}
