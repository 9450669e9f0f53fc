package courseRoutes

import (
	controllers "github.com/rashinkp/byway-sub000/controllers/course"
	"github.com/rashinkp/byway-sub000/middleware"
	validators "github.com/rashinkp/byway-sub000/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog (public)
	courseGroup.Get("/list", validators.CourseList(), controllers.CourseList)
	courseGroup.Get("/:courseId", validators.CourseIDParam(), controllers.GetCourseDetails)

	// Reviews
	courseGroup.Get("/:courseId/reviews", validators.CourseIDParam(), controllers.GetCourseReviews)
	courseGroup.Post("/:courseId/reviews", middleware.JWTMiddleware, validators.CourseIDParam(), validators.AddReview(), controllers.AddReview)
	courseGroup.Delete("/:courseId/reviews", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.DeleteReview)

	// Enrollment
	courseGroup.Post("/:courseId/enroll", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.EnrollInCourse)

	// Content viewing (for enrolled users)
	courseGroup.Get("/:courseId/lessons", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.GetCourseLessons)

	// Lesson completion
	courseGroup.Post("/:courseId/lesson/:lessonId/complete", middleware.JWTMiddleware, validators.CourseIDParam(), validators.LessonIDParam(), controllers.MarkLessonComplete)

	// Quiz submission
	courseGroup.Post("/:courseId/lesson/:lessonId/quiz/submit", middleware.JWTMiddleware, validators.CourseIDParam(), validators.LessonIDParam(), validators.QuizSubmit(), controllers.SubmitQuiz)

	// Progress tracking
	courseGroup.Get("/:courseId/progress", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.GetUserProgress)

	// Certificate generation for a completed course
	courseGroup.Post("/:courseId/certificate", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.GenerateCertificate)

	// User enrollments and certificates
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollmentsList)
	userGroup.Get("/certificates", middleware.JWTMiddleware, validators.CertificateList(), controllers.GetUserCertificates)

	// Public certificate verification
	app.Get("/certificate/verify/:number", controllers.VerifyCertificate)
}
