package controllers

import (
	"github.com/rashinkp/byway-sub000/database"
	"github.com/rashinkp/byway-sub000/middleware"
	"github.com/rashinkp/byway-sub000/models"
	courseModels "github.com/rashinkp/byway-sub000/models/course"

	"github.com/gofiber/fiber/v2"
)

// CourseListItem is a course enriched with its instructor name
type CourseListItem struct {
	courseModels.Course
	InstructorName string `json:"instructor_name"`
}

// CourseList lists published courses with search and pagination
func CourseList(c *fiber.Ctx) error {
	request := c.Locals("validatedCourseList").(*struct {
		Page     int    `json:"page"`
		Limit    int    `json:"limit"`
		Search   string `json:"search"`
		Level    string `json:"level"`
		MaxPrice int    `json:"maxPrice"`
	})

	offset := (request.Page - 1) * request.Limit

	query := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ? AND status = ?", false, true, "ACTIVE")

	if request.Search != "" {
		query = query.Where("title LIKE ? OR description LIKE ?", "%"+request.Search+"%", "%"+request.Search+"%")
	}
	if request.Level != "" {
		query = query.Where("level = ?", request.Level)
	}
	if request.MaxPrice > 0 {
		query = query.Where("price <= ?", request.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to count courses!", nil)
	}

	var courses []courseModels.Course
	if err := query.Order("created_at desc").Limit(request.Limit).Offset(offset).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	result := make([]CourseListItem, len(courses))
	for i, course := range courses {
		result[i] = CourseListItem{Course: course}
		var instructor models.User
		if err := database.Database.Db.Select("name").Where("id = ?", course.CreatedBy).First(&instructor).Error; err == nil {
			result[i].InstructorName = instructor.Name
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
		"total":   total,
		"page":    request.Page,
		"limit":   request.Limit,
	})
}

// GetCourseDetails returns a single course together with its lesson outline.
// When a valid token is supplied, the response includes the caller's
// enrollment state.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var instructor models.User
	instructorName := ""
	if err := database.Database.Db.Select("name").Where("id = ?", course.CreatedBy).First(&instructor).Error; err == nil {
		instructorName = instructor.Name
	}

	// Outline only, content stays behind enrollment
	var lessons []courseModels.Lesson
	database.Database.Db.Select("id, course_id, title, description, content_type, order_index").
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("order_index asc").Find(&lessons)

	isEnrolled := false
	if userID, ok := c.Locals("userId").(uint); ok {
		var enrollment courseModels.Enrollment
		if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err == nil {
			isEnrolled = true
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":          course,
		"instructor_name": instructorName,
		"lessons":         lessons,
		"lesson_count":    len(lessons),
		"is_enrolled":     isEnrolled,
	})
}
