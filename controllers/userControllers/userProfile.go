package userController

import (
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/rashinkp/byway-sub000/database"
	"github.com/rashinkp/byway-sub000/middleware"
	"github.com/rashinkp/byway-sub000/models"
	"github.com/rashinkp/byway-sub000/services/storage"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the current user's profile
func GetProfile(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}

// UpdateProfile updates the editable profile fields
func UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	request := c.Locals("validatedUpdateProfile").(*struct {
		Name     string `json:"name"`
		Mobile   string `json:"mobile"`
		Bio      string `json:"bio"`
		Headline string `json:"headline"`
	})

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if request.Name != "" {
		user.Name = request.Name
	}
	if request.Mobile != "" {
		user.Mobile = request.Mobile
	}
	if request.Bio != "" {
		user.Bio = request.Bio
	}
	if request.Headline != "" {
		user.Headline = request.Headline
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", user)
}

// UploadProfileImage uploads a new avatar to object storage and swaps
// the old one out. Deleting the previous file is best effort.
func UploadProfileImage(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Image file is required!", nil)
	}

	if fileHeader.Size > 5*1024*1024 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Image must be smaller than 5MB!", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read image!", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read image!", nil)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/png" && contentType != "image/jpeg" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only PNG and JPEG images are allowed!", nil)
	}

	filename := fmt.Sprintf("user-%d-%s", userID, uuid.NewString())
	url, err := storage.Storage.UploadFile(c.Context(), data, filename, contentType, "avatars", map[string]string{
		"userId": fmt.Sprintf("%d", userID),
	})
	if err != nil {
		log.Printf("Error uploading profile image: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload image!", nil)
	}

	oldURL := user.ProfileImage
	user.ProfileImage = url
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	if oldURL != "" {
		if err := storage.Storage.DeleteFile(c.Context(), oldURL); err != nil {
			log.Printf("Error deleting old profile image: %v", err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile image updated successfully!", fiber.Map{
		"profile_image": url,
	})
}

// GetInstructorProfile is the public instructor page with their courses
func GetInstructorProfile(c *fiber.Ctx) error {
	instructorID := c.Locals("userID").(int)

	var instructor models.User
	if err := database.Database.Db.Where("id = ? AND role = ? AND is_deleted = ?", instructorID, "INSTRUCTOR", false).First(&instructor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Instructor not found!", nil)
	}

	instructor.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor profile fetched successfully!", fiber.Map{
		"instructor": instructor,
	})
}
