package userValidator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rashinkp/byway-sub000/middleware"

	"github.com/gofiber/fiber/v2"
)

// UpdateProfile validates profile update fields
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name"`
			Mobile   string `json:"mobile"`
			Bio      string `json:"bio"`
			Headline string `json:"headline"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Mobile = strings.TrimSpace(reqData.Mobile)
		reqData.Headline = strings.TrimSpace(reqData.Headline)

		if reqData.Name != "" && len(reqData.Name) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		if reqData.Mobile != "" {
			if matched, _ := regexp.MatchString(`^\d{10}$`, reqData.Mobile); !matched {
				errors["mobile"] = "Invalid mobile number!"
			}
		}

		if len(reqData.Headline) > 120 {
			errors["headline"] = "Headline must be under 120 characters!"
		}
		if len(reqData.Bio) > 4000 {
			errors["bio"] = "Bio must be under 4000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateProfile", reqData)
		return c.Next()
	}
}

// UserIDParam validates the :userId route parameter
func UserIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("userId"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		c.Locals("userID", id)
		return c.Next()
	}
}
