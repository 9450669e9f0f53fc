package controllers

import (
	"github.com/rashinkp/byway-sub000/database"
	"github.com/rashinkp/byway-sub000/middleware"
	"github.com/rashinkp/byway-sub000/models"
	courseModels "github.com/rashinkp/byway-sub000/models/course"

	"github.com/gofiber/fiber/v2"
)

// ReviewWithUser is a review enriched with the reviewer's name
type ReviewWithUser struct {
	courseModels.Review
	UserName string `json:"user_name"`
}

// AddReview lets an enrolled student review a course, one review per user
func AddReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	request := c.Locals("validatedAddReview").(*struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	})

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Only enrolled students can review
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var existing courseModels.Review
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this course!", nil)
	}

	review := courseModels.Review{
		UserID:   userID,
		CourseID: uint(courseID),
		Rating:   request.Rating,
		Comment:  request.Comment,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&review).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add review!", nil)
	}
	tx.Commit()

	refreshCourseRating(uint(courseID))

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review added successfully!", review)
}

// GetCourseReviews lists the reviews of a course
func GetCourseReviews(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var reviews []courseModels.Review
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("created_at desc").Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	result := make([]ReviewWithUser, len(reviews))
	for i, review := range reviews {
		result[i] = ReviewWithUser{Review: review}
		var user models.User
		if err := database.Database.Db.Select("name").Where("id = ?", review.UserID).First(&user).Error; err == nil {
			result[i].UserName = user.Name
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", fiber.Map{
		"reviews":      result,
		"total":        len(result),
		"rating":       course.Rating,
		"review_count": course.ReviewCount,
	})
}

// DeleteReview soft deletes the caller's own review
func DeleteReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var review courseModels.Review
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	review.IsDeleted = true
	if err := database.Database.Db.Save(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review!", nil)
	}

	refreshCourseRating(uint(courseID))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully!", nil)
}

// refreshCourseRating recomputes the aggregate rating of a course
func refreshCourseRating(courseID uint) {
	var count int64
	var avg float64

	database.Database.Db.Model(&courseModels.Review{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&count)
	if count > 0 {
		database.Database.Db.Model(&courseModels.Review{}).Where("course_id = ? AND is_deleted = ?", courseID, false).
			Select("AVG(rating)").Scan(&avg)
	}

	database.Database.Db.Model(&courseModels.Course{}).Where("id = ?", courseID).
		Updates(map[string]interface{}{"rating": avg, "review_count": count})
}
