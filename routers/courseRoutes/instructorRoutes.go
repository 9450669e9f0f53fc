package courseRoutes

import (
	controllers "github.com/rashinkp/byway-sub000/controllers/course"
	"github.com/rashinkp/byway-sub000/middleware"
	validators "github.com/rashinkp/byway-sub000/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorCourseRoutes sets up course authoring routes for
// instructors and admins
func SetupInstructorCourseRoutes(app *fiber.App) {
	instructorGroup := app.Group("/instructor/course", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN"))

	// Course CRUD
	instructorGroup.Post("/create", validators.CreateCourse(), controllers.CreateCourse)
	instructorGroup.Get("/list", controllers.InstructorCourseList)
	instructorGroup.Put("/:courseId", validators.CourseIDParam(), validators.UpdateCourse(), controllers.UpdateCourse)
	instructorGroup.Delete("/:courseId", validators.CourseIDParam(), controllers.DeleteCourse)
	instructorGroup.Post("/:courseId/publish", validators.CourseIDParam(), controllers.PublishCourse)
	instructorGroup.Post("/:courseId/thumbnail", validators.CourseIDParam(), controllers.UploadCourseThumbnail)

	// Lesson management
	instructorGroup.Post("/:courseId/lesson", validators.CourseIDParam(), validators.AddLesson(), controllers.AddLesson)
	instructorGroup.Post("/:courseId/lesson/:lessonId/question", validators.CourseIDParam(), validators.LessonIDParam(), validators.AddQuestion(), controllers.AddQuizQuestion)

	// Certificate administration
	adminCertGroup := app.Group("/admin/certificate", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	adminCertGroup.Post("/:certificateId/issue", validators.CertificateIDParam(), validators.IssueCertificate(), controllers.AdminIssueCertificate)
	adminCertGroup.Post("/:certificateId/revoke", validators.CertificateIDParam(), controllers.AdminRevokeCertificate)
}
