package courseValidator

import (
	"strings"

	"github.com/rashinkp/byway-sub000/middleware"

	"github.com/gofiber/fiber/v2"
)

// ============ Instructor Course Validators ============

var validLevels = map[string]bool{"BEGINNER": true, "INTERMEDIATE": true, "ADVANCED": true}
var validStatuses = map[string]bool{"DRAFT": true, "ACTIVE": true, "INACTIVE": true}
var validContentTypes = map[string]bool{"TEXT": true, "VIDEO": true, "QUIZ": true}

// CreateCourse validates instructor course creation request
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string  `json:"title"`
			Description string  `json:"description"`
			Price       float64 `json:"price"`
			Duration    int64   `json:"duration"`
			Level       string  `json:"level"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Level = strings.TrimSpace(reqData.Level)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		} else if len(reqData.Description) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if reqData.Duration <= 0 {
			errors["duration"] = "Duration must be a positive number!"
		}

		if reqData.Level == "" {
			reqData.Level = "BEGINNER"
		} else if !validLevels[reqData.Level] {
			errors["level"] = "Level must be BEGINNER, INTERMEDIATE, or ADVANCED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates instructor course update request
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string  `json:"title"`
			Description string  `json:"description"`
			Price       float64 `json:"price"`
			Duration    int64   `json:"duration"`
			Level       string  `json:"level"`
			Status      string  `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Level = strings.TrimSpace(reqData.Level)
		reqData.Status = strings.TrimSpace(reqData.Status)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description != "" && len(reqData.Description) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if reqData.Level != "" && !validLevels[reqData.Level] {
			errors["level"] = "Level must be BEGINNER, INTERMEDIATE, or ADVANCED!"
		}

		if reqData.Status != "" && !validStatuses[reqData.Status] {
			errors["status"] = "Status must be DRAFT, ACTIVE, or INACTIVE!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateCourse", reqData)
		return c.Next()
	}
}

// AddLesson validates a new lesson request
func AddLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			ContentType string `json:"contentType"`
			TextContent string `json:"textContent"`
			VideoURL    string `json:"videoUrl"`
			OrderIndex  int    `json:"orderIndex"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.ContentType = strings.TrimSpace(reqData.ContentType)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.ContentType == "" {
			reqData.ContentType = "TEXT"
		} else if !validContentTypes[reqData.ContentType] {
			errors["contentType"] = "Content type must be TEXT, VIDEO, or QUIZ!"
		}

		if reqData.ContentType == "TEXT" && strings.TrimSpace(reqData.TextContent) == "" {
			errors["textContent"] = "Text content is required for TEXT lessons!"
		}
		if reqData.ContentType == "VIDEO" && strings.TrimSpace(reqData.VideoURL) == "" {
			errors["videoUrl"] = "Video URL is required for VIDEO lessons!"
		}

		if reqData.OrderIndex < 0 {
			errors["orderIndex"] = "Order index cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAddLesson", reqData)
		return c.Next()
	}
}

// AddQuestion validates a new quiz question with its options
func AddQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Question string `json:"question"`
			Options  []struct {
				OptionText string `json:"option_text"`
				IsCorrect  bool   `json:"is_correct"`
			} `json:"options"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Question = strings.TrimSpace(reqData.Question)

		if reqData.Question == "" {
			errors["question"] = "Question is required!"
		}

		if len(reqData.Options) < 2 {
			errors["options"] = "At least two options are required!"
		} else {
			correct := 0
			for _, opt := range reqData.Options {
				if strings.TrimSpace(opt.OptionText) == "" {
					errors["options"] = "Option text cannot be empty!"
					break
				}
				if opt.IsCorrect {
					correct++
				}
			}
			if correct != 1 && errors["options"] == "" {
				errors["options"] = "Exactly one option must be marked correct!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAddQuestion", reqData)
		return c.Next()
	}
}
