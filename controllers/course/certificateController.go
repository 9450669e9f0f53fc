package controllers

import (
	"strings"
	"time"

	"github.com/rashinkp/byway-sub000/config"
	"github.com/rashinkp/byway-sub000/database"
	"github.com/rashinkp/byway-sub000/middleware"
	"github.com/rashinkp/byway-sub000/models"
	courseModels "github.com/rashinkp/byway-sub000/models/course"
	"github.com/rashinkp/byway-sub000/repositories"
	"github.com/rashinkp/byway-sub000/services/certificate"
	"github.com/rashinkp/byway-sub000/services/storage"
	"github.com/rashinkp/byway-sub000/utils"

	"github.com/gofiber/fiber/v2"
)

var (
	certificateUseCase *certificate.GenerateCertificateUseCase
	certificateRepo    *repositories.CertificateRepository
)

// InitCertificateService wires the certificate workflow against the global
// database and storage connections. Called once from main after ConnectDb
// and storage.Connect.
func InitCertificateService() error {
	renderer, err := certificate.NewPDFRenderer(config.AppConfig.CertTemplatePath, config.AppConfig.CertFontPath)
	if err != nil {
		return err
	}

	db := database.Database.Db
	enrollments := repositories.NewEnrollmentRepository(db)
	lessons := repositories.NewLessonRepository(db)
	progress := repositories.NewLessonProgressRepository(db)
	courses := repositories.NewCourseRepository(db)
	users := repositories.NewUserRepository(db)
	certificateRepo = repositories.NewCertificateRepository(db)

	completion := certificate.NewCompletionService(enrollments, lessons, progress, courses, users)
	certificateUseCase = certificate.NewGenerateCertificateUseCase(
		enrollments, certificateRepo, completion, courses, users, renderer, storage.Storage,
	)
	return nil
}

// statusForCertificateError maps workflow failure reasons to HTTP statuses.
func statusForCertificateError(msg string) int {
	switch {
	case msg == "User is not enrolled in this course":
		return fiber.StatusForbidden
	case strings.Contains(msg, "day(s) before regenerating"):
		return fiber.StatusConflict
	case msg == "Course is not completed yet":
		return fiber.StatusBadRequest
	case msg == "Course not found" || msg == "User not found":
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// GenerateCertificate runs the certificate generation workflow for the
// current user and course
func GenerateCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	out := certificateUseCase.Execute(c.Context(), certificate.GenerateCertificateInput{
		UserID:   userID,
		CourseID: uint(courseID),
	})
	if !out.Success {
		return middleware.JsonResponse(c, statusForCertificateError(out.Error), false, out.Error, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate generated successfully!", fiber.Map{
		"certificate": out.Certificate,
	})
}

// GetUserCertificates lists the current user's certificates with pagination,
// status filter and certificate-number search
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, _ := c.Locals("validatedCertificateList").(*struct {
		Page      *int   `json:"page"`
		Limit     *int   `json:"limit"`
		SortBy    string `json:"sort_by"`
		SortOrder string `json:"sort_order"`
		Status    string `json:"status"`
		Search    string `json:"search"`
	})

	params := repositories.CertificateListParams{Page: 1, Limit: 10}
	if reqData != nil {
		if reqData.Page != nil {
			params.Page = *reqData.Page
		}
		if reqData.Limit != nil {
			params.Limit = *reqData.Limit
		}
		params.SortBy = reqData.SortBy
		params.SortOrder = reqData.SortOrder
		params.Status = reqData.Status
		params.Search = reqData.Search
	}

	page, err := certificateRepo.FindManyByUserID(userID, params)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseName string `json:"course_name"`
	}

	items := make([]CertificateWithCourse, len(page.Items))
	for i, cert := range page.Items {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		items[i] = CertificateWithCourse{Certificate: cert, CourseName: course.Title}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": items,
		"total":        page.Total,
		"hasMore":      page.HasMore,
		"nextPage":     page.NextPage,
	})
}

// VerifyCertificate resolves a certificate by its shareable number. Public
// endpoint used by employers to validate a certificate.
func VerifyCertificate(c *fiber.Ctx) error {
	number := strings.ToUpper(strings.TrimSpace(c.Params("number")))
	if number == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate number is required!", nil)
	}

	cert, err := certificateRepo.FindByCertificateNumber(number)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify certificate!", nil)
	}
	if cert == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var course courseModels.Course
	database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
	var user models.User
	database.Database.Db.Where("id = ?", cert.UserID).First(&user)

	valid := cert.Status == courseModels.CertificateStatusIssued && !cert.IsExpired()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", fiber.Map{
		"certificate_number": cert.CertificateNumber,
		"status":             cert.Status,
		"valid":              valid,
		"student_name":       user.Name,
		"course_title":       course.Title,
		"issued_at":          cert.IssuedAt,
		"expires_at":         cert.ExpiresAt,
	})
}

// AdminIssueCertificate transitions a generated certificate to ISSUED
func AdminIssueCertificate(c *fiber.Ctx) error {
	certID := c.Locals("certificateID").(int)

	reqData, _ := c.Locals("validatedIssue").(*struct {
		ExpiresAt *time.Time `json:"expires_at"`
	})

	cert, err := certificateRepo.FindByID(uint(certID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificate!", nil)
	}
	if cert == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var expiresAt *time.Time
	if reqData != nil {
		expiresAt = reqData.ExpiresAt
	}
	if err := cert.Issue(expiresAt); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	if err := certificateRepo.Update(cert); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	// Notify the student
	var user models.User
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", cert.UserID).First(&user).Error; err == nil {
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		utils.SendCertificateEmail(user.Email, user.Name, course.Title, cert.CertificateNumber)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued successfully!", cert)
}

// AdminRevokeCertificate transitions an issued certificate to REVOKED
func AdminRevokeCertificate(c *fiber.Ctx) error {
	certID := c.Locals("certificateID").(int)

	cert, err := certificateRepo.FindByID(uint(certID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificate!", nil)
	}
	if cert == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if err := cert.Revoke(); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	if err := certificateRepo.Update(cert); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to revoke certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate revoked successfully!", cert)
}
