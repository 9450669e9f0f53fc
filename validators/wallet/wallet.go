package walletValidator

import (
	"strconv"

	"github.com/rashinkp/byway-sub000/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type depositRequest struct {
	Gateway   string `json:"gateway" validate:"required,oneof=stripe paypal"`
	PaymentID string `json:"paymentId" validate:"required,min=5,max=100"`
}

// Deposit validates a wallet deposit request
func Deposit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		parsed := new(depositRequest)
		if err := c.BodyParser(parsed); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(parsed); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Gateway":
					errors["gateway"] = "Gateway must be stripe or paypal!"
				case "PaymentID":
					errors["paymentId"] = "Payment reference must be between 5 and 100 characters!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData := new(struct {
			Gateway   string `json:"gateway"`
			PaymentID string `json:"paymentId"`
		})
		reqData.Gateway = parsed.Gateway
		reqData.PaymentID = parsed.PaymentID

		c.Locals("validatedDeposit", reqData)
		return c.Next()
	}
}

// Pagination validates common page/limit query parameters
func Pagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
		})

		reqData.Page, _ = strconv.Atoi(c.Query("page", "1"))
		reqData.Limit, _ = strconv.Atoi(c.Query("limit", "10"))

		if reqData.Page <= 0 {
			reqData.Page = 1
		}
		if reqData.Limit <= 0 || reqData.Limit > 100 {
			reqData.Limit = 10
		}

		c.Locals("validatedPagination", reqData)
		return c.Next()
	}
}
