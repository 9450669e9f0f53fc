package cartValidator

import (
	"github.com/rashinkp/byway-sub000/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type addToCartRequest struct {
	CourseID uint `json:"courseId" validate:"required,gt=0"`
}

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=WALLET STRIPE PAYPAL"`
	PaymentID     string `json:"paymentId" validate:"omitempty,min=5,max=100"`
}

// AddToCart validates the add-to-cart request
func AddToCart() fiber.Handler {
	return func(c *fiber.Ctx) error {
		parsed := new(addToCartRequest)
		if err := c.BodyParser(parsed); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(parsed); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"courseId": "A valid course ID is required!",
			})
		}

		reqData := new(struct {
			CourseID uint `json:"courseId"`
		})
		reqData.CourseID = parsed.CourseID

		c.Locals("validatedAddToCart", reqData)
		return c.Next()
	}
}

// Checkout validates the checkout request
func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		parsed := new(checkoutRequest)
		if err := c.BodyParser(parsed); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(parsed); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "PaymentMethod":
					errors["paymentMethod"] = "Payment method must be WALLET, STRIPE, or PAYPAL!"
				case "PaymentID":
					errors["paymentId"] = "Payment reference must be between 5 and 100 characters!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData := new(struct {
			PaymentMethod string `json:"paymentMethod"`
			PaymentID     string `json:"paymentId"`
		})
		reqData.PaymentMethod = parsed.PaymentMethod
		reqData.PaymentID = parsed.PaymentID

		c.Locals("validatedCheckout", reqData)
		return c.Next()
	}
}
