package courseValidator

import (
	"strconv"
	"strings"
	"time"

	"github.com/rashinkp/byway-sub000/middleware"

	"github.com/gofiber/fiber/v2"
)

// CertificateIDParam validates the :certificateId route parameter
func CertificateIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("certificateId"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Certificate ID!", nil)
		}

		c.Locals("certificateID", id)
		return c.Next()
	}
}

// CertificateList validates listing query parameters for user certificates
func CertificateList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page      *int   `json:"page"`
			Limit     *int   `json:"limit"`
			SortBy    string `json:"sort_by"`
			SortOrder string `json:"sort_order"`
			Status    string `json:"status"`
			Search    string `json:"search"`
		})

		page, _ := strconv.Atoi(c.Query("page", "1"))
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		reqData.Page = &page
		reqData.Limit = &limit
		reqData.SortBy = strings.TrimSpace(c.Query("sortBy"))
		reqData.SortOrder = strings.TrimSpace(c.Query("sortOrder"))
		reqData.Status = strings.TrimSpace(c.Query("status"))
		reqData.Search = strings.TrimSpace(c.Query("search"))

		errors := make(map[string]string)

		if page <= 0 {
			page = 1
		}
		if limit <= 0 || limit > 100 {
			limit = 10
		}

		if reqData.SortBy != "" {
			validSorts := map[string]bool{"created_at": true, "issued_at": true, "certificate_number": true}
			if !validSorts[reqData.SortBy] {
				errors["sortBy"] = "Sort field must be created_at, issued_at, or certificate_number!"
			}
		}
		if reqData.SortOrder != "" && reqData.SortOrder != "asc" && reqData.SortOrder != "desc" {
			errors["sortOrder"] = "Sort order must be asc or desc!"
		}
		if reqData.Status != "" {
			validStatuses := map[string]bool{"PENDING": true, "GENERATED": true, "ISSUED": true, "REVOKED": true}
			if !validStatuses[reqData.Status] {
				errors["status"] = "Status must be PENDING, GENERATED, ISSUED, or REVOKED!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCertificateList", reqData)
		return c.Next()
	}
}

// IssueCertificate validates the admin issue request
func IssueCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ExpiresAt *time.Time `json:"expires_at"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.ExpiresAt != nil && reqData.ExpiresAt.Before(time.Now()) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Expiry date must be in the future!", nil)
		}

		c.Locals("validatedIssue", reqData)
		return c.Next()
	}
}
