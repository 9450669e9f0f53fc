package certificate

import (
	"context"
	"time"

	"github.com/rashinkp/byway-sub000/models"
	courseModels "github.com/rashinkp/byway-sub000/models/course"
)

// CertificateTemplateData carries everything the renderer draws onto the
// certificate.
type CertificateTemplateData struct {
	CertificateNumber string
	StudentName       string
	CourseTitle       string
	CompletionDate    string
	InstructorName    string
	TotalLessons      int
	CompletedLessons  int
	AverageScore      int
	IssuedDate        time.Time
}

// GenerateCertificateInput identifies the enrollment to certify.
type GenerateCertificateInput struct {
	UserID   uint
	CourseID uint
}

// GenerateCertificateOutput is the tagged result of a generation run.
// Execute never returns an error; expected and unexpected failures alike end
// up here with Success=false.
type GenerateCertificateOutput struct {
	Success     bool                      `json:"success"`
	Certificate *courseModels.Certificate `json:"certificate,omitempty"`
	Error       string                    `json:"error,omitempty"`
}

// Collaborator lookups. The GORM repositories satisfy these; tests substitute
// in-memory fakes. Not-found lookups return (nil, nil).

type EnrollmentReader interface {
	FindByUserAndCourse(userID, courseID uint) (*courseModels.Enrollment, error)
}

type CourseReader interface {
	FindByID(id uint) (*courseModels.Course, error)
}

type UserReader interface {
	FindByID(id uint) (*models.User, error)
}

type LessonReader interface {
	FindByCourseID(courseID uint) ([]courseModels.Lesson, error)
}

type LessonProgressReader interface {
	FindByEnrollment(enrollmentID, courseID uint) ([]courseModels.LessonProgress, error)
}

// CertificateStore is the slice of the certificate repository the generation
// workflow needs.
type CertificateStore interface {
	Create(cert *courseModels.Certificate) error
	Update(cert *courseModels.Certificate) error
	FindByUserAndCourse(userID, courseID uint) (*courseModels.Certificate, error)
}

// PDFGenerator renders a certificate document.
type PDFGenerator interface {
	GenerateCertificatePDF(data CertificateTemplateData) ([]byte, error)
}

// FileStorage uploads and deletes binary artifacts in object storage.
type FileStorage interface {
	UploadFile(ctx context.Context, data []byte, filename, contentType, folder string, metadata map[string]string) (string, error)
	DeleteFile(ctx context.Context, url string) error
}
