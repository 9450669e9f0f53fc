package controllers

import (
	"github.com/rashinkp/byway-sub000/database"
	"github.com/rashinkp/byway-sub000/middleware"
	courseModels "github.com/rashinkp/byway-sub000/models/course"
	"github.com/rashinkp/byway-sub000/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse creates a new course in DRAFT status for the instructor
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	request := c.Locals("validatedCreateCourse").(*struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Duration    int64   `json:"duration"`
		Level       string  `json:"level"`
	})

	course := courseModels.Course{
		Title:       request.Title,
		Description: request.Description,
		CreatedBy:   userID,
		Price:       request.Price,
		Duration:    request.Duration,
		Level:       request.Level,
		Status:      "DRAFT",
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates an existing course owned by the instructor
func UpdateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	request := c.Locals("validatedUpdateCourse").(*struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Duration    int64   `json:"duration"`
		Level       string  `json:"level"`
		Status      string  `json:"status"`
	})

	course, errResp := loadOwnedCourse(c, userID, courseID)
	if course == nil {
		return errResp
	}

	if request.Title != "" {
		course.Title = request.Title
	}
	if request.Description != "" {
		course.Description = request.Description
	}
	if request.Price >= 0 {
		course.Price = request.Price
	}
	if request.Duration > 0 {
		course.Duration = request.Duration
	}
	if request.Level != "" {
		course.Level = request.Level
	}
	if request.Status != "" {
		course.Status = request.Status
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// PublishCourse publishes a course so it appears in the public catalog
func PublishCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, errResp := loadOwnedCourse(c, userID, courseID)
	if course == nil {
		return errResp
	}

	// A course needs at least one published lesson before going live
	var lessonCount int64
	database.Database.Db.Model(&courseModels.Lesson{}).Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).Count(&lessonCount)
	if lessonCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course must have at least one published lesson!", nil)
	}

	course.IsPublished = true
	course.Status = "ACTIVE"
	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// DeleteCourse soft deletes a course owned by the instructor
func DeleteCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, errResp := loadOwnedCourse(c, userID, courseID)
	if course == nil {
		return errResp
	}

	course.IsDeleted = true
	course.IsPublished = false
	course.Status = "INACTIVE"
	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AddLesson adds a lesson to a course owned by the instructor
func AddLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	request := c.Locals("validatedAddLesson").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ContentType string `json:"contentType"`
		TextContent string `json:"textContent"`
		VideoURL    string `json:"videoUrl"`
		OrderIndex  int    `json:"orderIndex"`
	})

	course, errResp := loadOwnedCourse(c, userID, courseID)
	if course == nil {
		return errResp
	}

	lesson := courseModels.Lesson{
		CourseID:    course.ID,
		Title:       request.Title,
		Description: request.Description,
		ContentType: request.ContentType,
		TextContent: request.TextContent,
		VideoURL:    request.VideoURL,
		OrderIndex:  request.OrderIndex,
		IsPublished: true,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&lesson).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add lesson!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson added successfully!", lesson)
}

// AddQuizQuestion adds a question with options to a QUIZ lesson
func AddQuizQuestion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	request := c.Locals("validatedAddQuestion").(*struct {
		Question string `json:"question"`
		Options  []struct {
			OptionText string `json:"option_text"`
			IsCorrect  bool   `json:"is_correct"`
		} `json:"options"`
	})

	course, errResp := loadOwnedCourse(c, userID, courseID)
	if course == nil {
		return errResp
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}
	if lesson.ContentType != "QUIZ" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson is not a quiz!", nil)
	}

	var questionCount int64
	database.Database.Db.Model(&courseModels.QuizQuestion{}).Where("lesson_id = ? AND is_deleted = ?", lessonID, false).Count(&questionCount)

	question := courseModels.QuizQuestion{
		LessonID:   lesson.ID,
		Question:   request.Question,
		OrderIndex: int(questionCount),
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add question!", nil)
	}

	for i, opt := range request.Options {
		option := courseModels.QuizOption{
			QuestionID: question.ID,
			OptionText: opt.OptionText,
			IsCorrect:  opt.IsCorrect,
			OrderIndex: i,
		}
		if err := tx.Create(&option).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add option!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// UploadCourseThumbnail stores a thumbnail image for a course
func UploadCourseThumbnail(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, errResp := loadOwnedCourse(c, userID, courseID)
	if course == nil {
		return errResp
	}

	fileHeader, err := c.FormFile("thumbnail")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Thumbnail file is required!", nil)
	}

	filePath, err := utils.SaveUploadedFile(fileHeader, "uploads/thumbnails")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
	}

	course.ThumbnailURL = utils.GetFileURL(filePath)
	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thumbnail uploaded successfully!", fiber.Map{
		"thumbnail_url": course.ThumbnailURL,
	})
}

// InstructorCourseList lists all courses created by the instructor,
// including drafts
func InstructorCourseList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Where("created_by = ? AND is_deleted = ?", userID, false).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// loadOwnedCourse fetches a course and enforces ownership. Admins can
// manage any course.
func loadOwnedCourse(c *fiber.Ctx, userID uint, courseID int) (*courseModels.Course, error) {
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	role, _ := c.Locals("role").(string)
	if course.CreatedBy != userID && role != "ADMIN" {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	return &course, nil
}
