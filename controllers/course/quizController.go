package controllers

import (
	"encoding/json"
	"time"

	"github.com/rashinkp/byway-sub000/database"
	"github.com/rashinkp/byway-sub000/middleware"
	"github.com/rashinkp/byway-sub000/models"
	courseModels "github.com/rashinkp/byway-sub000/models/course"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuiz grades a quiz attempt and records the score against the
// lesson progress of the user
func SubmitQuiz(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	request := c.Locals("validatedQuizSubmit").(*struct {
		Answers []struct {
			QuestionID uint `json:"question_id"`
			OptionID   uint `json:"option_id"`
		} `json:"answers"`
	})

	// Check if lesson exists and is a quiz
	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", lessonID, courseID, false, true).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}
	if lesson.ContentType != "QUIZ" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson is not a quiz!", nil)
	}

	// Check enrollment
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var questions []courseModels.QuizQuestion
	database.Database.Db.Where("lesson_id = ? AND is_deleted = ?", lessonID, false).Find(&questions)
	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz has no questions!", nil)
	}

	// Grade the attempt
	answered := make(map[uint]uint, len(request.Answers))
	selected := make([]uint, 0, len(request.Answers))
	for _, a := range request.Answers {
		answered[a.QuestionID] = a.OptionID
		selected = append(selected, a.OptionID)
	}

	correct := 0
	for _, q := range questions {
		optionID, ok := answered[q.ID]
		if !ok {
			continue
		}
		var option courseModels.QuizOption
		if err := database.Database.Db.Where("id = ? AND question_id = ? AND is_deleted = ?", optionID, q.ID, false).First(&option).Error; err != nil {
			continue
		}
		if option.IsCorrect {
			correct++
		}
	}

	score := correct * 100 / len(questions)

	// Record the attempt
	var attemptCount int64
	database.Database.Db.Model(&courseModels.QuizAttempt{}).Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).Count(&attemptCount)

	selectedJSON, _ := json.Marshal(selected)
	attempt := courseModels.QuizAttempt{
		UserID:          userID,
		LessonID:        uint(lessonID),
		SelectedOptions: string(selectedJSON),
		Score:           score,
		MaxScore:        len(questions),
		AttemptNumber:   int(attemptCount) + 1,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&attempt).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record quiz attempt!", nil)
	}
	tx.Commit()

	// Passing a quiz completes the lesson and records the score; a better
	// score on a retake replaces the previous one
	now := time.Now()
	var progress courseModels.LessonProgress
	err := database.Database.Db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).First(&progress).Error
	if err == nil {
		if progress.Score == nil || score > *progress.Score {
			progress.Score = &score
		}
		if !progress.Completed {
			progress.Completed = true
			progress.CompletedAt = &now
		}
		database.Database.Db.Save(&progress)
	} else {
		progress = courseModels.LessonProgress{
			EnrollmentID: enrollment.ID,
			UserID:       userID,
			CourseID:     uint(courseID),
			LessonID:     uint(lessonID),
			Completed:    true,
			CompletedAt:  &now,
			Score:        &score,
		}
		database.Database.Db.Create(&progress)
	}

	updateEnrollmentProgress(userID, uint(courseID))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully!", fiber.Map{
		"score":          score,
		"correct":        correct,
		"total":          len(questions),
		"attempt_number": attempt.AttemptNumber,
	})
}
