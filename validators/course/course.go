package courseValidator

import (
	"strconv"
	"strings"

	"github.com/rashinkp/byway-sub000/middleware"

	"github.com/gofiber/fiber/v2"
)

// CourseIDParam validates the :courseId route parameter
func CourseIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("courseId"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", id)
		return c.Next()
	}
}

// LessonIDParam validates the :lessonId route parameter
func LessonIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("lessonId"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		c.Locals("lessonID", id)
		return c.Next()
	}
}

// CourseList validates the public catalog query parameters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     int    `json:"page"`
			Limit    int    `json:"limit"`
			Search   string `json:"search"`
			Level    string `json:"level"`
			MaxPrice int    `json:"maxPrice"`
		})

		reqData.Page, _ = strconv.Atoi(c.Query("page", "1"))
		reqData.Limit, _ = strconv.Atoi(c.Query("limit", "10"))
		reqData.Search = strings.TrimSpace(c.Query("search"))
		reqData.Level = strings.TrimSpace(c.Query("level"))
		reqData.MaxPrice, _ = strconv.Atoi(c.Query("maxPrice", "0"))

		errors := make(map[string]string)

		if reqData.Page <= 0 {
			reqData.Page = 1
		}
		if reqData.Limit <= 0 || reqData.Limit > 100 {
			reqData.Limit = 10
		}

		if reqData.Level != "" {
			validLevels := map[string]bool{"BEGINNER": true, "INTERMEDIATE": true, "ADVANCED": true}
			if !validLevels[reqData.Level] {
				errors["level"] = "Level must be BEGINNER, INTERMEDIATE, or ADVANCED!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// QuizSubmit validates quiz answers submission
func QuizSubmit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Answers []struct {
				QuestionID uint `json:"question_id"`
				OptionID   uint `json:"option_id"`
			} `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Answers) == 0 {
			errors["answers"] = "At least one answer is required!"
		}
		for _, a := range reqData.Answers {
			if a.QuestionID == 0 || a.OptionID == 0 {
				errors["answers"] = "Each answer needs a question and an option!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuizSubmit", reqData)
		return c.Next()
	}
}

// AddReview validates a course review
func AddReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Rating  int    `json:"rating"`
			Comment string `json:"comment"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Rating < 1 || reqData.Rating > 5 {
			errors["rating"] = "Rating must be between 1 and 5!"
		}
		if len(reqData.Comment) > 2000 {
			errors["comment"] = "Comment must be under 2000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAddReview", reqData)
		return c.Next()
	}
}
