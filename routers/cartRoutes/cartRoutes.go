package cartRoutes

import (
	controllers "github.com/rashinkp/byway-sub000/controllers/cart"
	"github.com/rashinkp/byway-sub000/middleware"
	cartValidators "github.com/rashinkp/byway-sub000/validators/cart"
	courseValidators "github.com/rashinkp/byway-sub000/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCartRoutes(app *fiber.App) {
	cartGroup := app.Group("/cart", middleware.JWTMiddleware)

	cartGroup.Get("/", controllers.GetCart)
	cartGroup.Post("/add", cartValidators.AddToCart(), controllers.AddToCart)
	cartGroup.Delete("/:courseId", courseValidators.CourseIDParam(), controllers.RemoveFromCart)
	cartGroup.Post("/checkout", cartValidators.Checkout(), controllers.Checkout)

	orderGroup := app.Group("/orders", middleware.JWTMiddleware)
	orderGroup.Get("/", controllers.GetOrderHistory)
}
