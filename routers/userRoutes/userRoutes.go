package userRoutes

import (
	userControllers "github.com/rashinkp/byway-sub000/controllers/userControllers"
	"github.com/rashinkp/byway-sub000/middleware"
	"github.com/rashinkp/byway-sub000/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userControllers.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, userValidator.UpdateProfile(), userControllers.UpdateProfile)
	userGroup.Post("/profile/image", middleware.JWTMiddleware, userControllers.UploadProfileImage)

	// Public instructor page
	app.Get("/instructor/:userId", userValidator.UserIDParam(), userControllers.GetInstructorProfile)
}
