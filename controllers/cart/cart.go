package controllers

import (
	"github.com/rashinkp/byway-sub000/database"
	"github.com/rashinkp/byway-sub000/middleware"
	cartModels "github.com/rashinkp/byway-sub000/models/cart"
	courseModels "github.com/rashinkp/byway-sub000/models/course"

	"github.com/gofiber/fiber/v2"
)

// CartItemWithCourse is a cart line enriched with its course
type CartItemWithCourse struct {
	cartModels.CartItem
	Course courseModels.Course `json:"course"`
}

// AddToCart adds a paid course to the user's cart
func AddToCart(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	request := c.Locals("validatedAddToCart").(*struct {
		CourseID uint `json:"courseId"`
	})

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", request.CourseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.Price <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Free courses can be enrolled directly!", nil)
	}

	// Already enrolled? Nothing to buy.
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, request.CourseID, false).First(&enrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	}

	var existing cartModels.CartItem
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, request.CourseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is already in your cart!", nil)
	}

	item := cartModels.CartItem{
		UserID:        userID,
		CourseID:      request.CourseID,
		PriceSnapshot: course.Price,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&item).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add course to cart!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course added to cart successfully!", item)
}

// GetCart lists the user's cart with course details and the total
func GetCart(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var items []cartModels.CartItem
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("created_at desc").Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch cart!", nil)
	}

	result := make([]CartItemWithCourse, 0, len(items))
	total := 0.0
	for _, item := range items {
		var course courseModels.Course
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", item.CourseID, false).First(&course).Error; err != nil {
			continue
		}
		result = append(result, CartItemWithCourse{CartItem: item, Course: course})
		total += item.PriceSnapshot
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart fetched successfully!", fiber.Map{
		"items": result,
		"count": len(result),
		"total": total,
	})
}

// RemoveFromCart removes a course from the user's cart
func RemoveFromCart(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var item cartModels.CartItem
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found in cart!", nil)
	}

	item.IsDeleted = true
	if err := database.Database.Db.Save(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove course from cart!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course removed from cart successfully!", nil)
}
