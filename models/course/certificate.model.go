package course

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Certificate status lifecycle: PENDING -> GENERATED -> ISSUED -> REVOKED
const (
	CertificateStatusPending   = "PENDING"
	CertificateStatusGenerated = "GENERATED"
	CertificateStatusIssued    = "ISSUED"
	CertificateStatusRevoked   = "REVOKED"
)

var (
	ErrCertificateNotGenerated = errors.New("certificate must be generated before it can be issued")
	ErrCertificateExpired      = errors.New("certificate has expired")
	ErrCertificateNotIssued    = errors.New("only issued certificates can be revoked")
	ErrExpiryInPast            = errors.New("expiry date must be in the future")
)

// CompletionStats is a snapshot of course completion statistics taken at
// generation time and embedded into the certificate metadata.
type CompletionStats struct {
	TotalLessons     int    `json:"totalLessons"`
	CompletedLessons int    `json:"completedLessons"`
	AverageScore     int    `json:"averageScore"`
	CompletionDate   string `json:"completionDate"`
	InstructorName   string `json:"instructorName"`
}

// CertificateMetadata is the persisted shape of the metadata JSON column.
type CertificateMetadata struct {
	CompletionStats CompletionStats `json:"completionStats"`
	GeneratedAt     time.Time       `json:"generatedAt"`
}

// Certificate represents proof that a user completed a course
type Certificate struct {
	gorm.Model
	UserID            uint           `json:"user_id" gorm:"uniqueIndex:idx_cert_user_course;not null"`
	CourseID          uint           `json:"course_id" gorm:"uniqueIndex:idx_cert_user_course;not null"`
	EnrollmentID      uint           `json:"enrollment_id" gorm:"index;not null"`
	CertificateNumber string         `json:"certificate_number" gorm:"uniqueIndex;not null"`
	Status            string         `json:"status" gorm:"default:'PENDING'"`
	IssuedAt          *time.Time     `json:"issued_at"`
	ExpiresAt         *time.Time     `json:"expires_at"`
	PdfURL            string         `json:"pdf_url"`
	Metadata          datatypes.JSON `json:"metadata"`
	IsDeleted         bool           `gorm:"default:false"`
}

// NewCertificate builds a first-time certificate in PENDING status.
func NewCertificate(certificateNumber string, userID, courseID, enrollmentID uint) *Certificate {
	return &Certificate{
		UserID:            userID,
		CourseID:          courseID,
		EnrollmentID:      enrollmentID,
		CertificateNumber: certificateNumber,
		Status:            CertificateStatusPending,
	}
}

// RegenerateFrom builds a replacement certificate that keeps the identity of
// the previous one. ID and CreatedAt carry over; certificate number, status,
// PDF URL and metadata are replaced.
func RegenerateFrom(previous *Certificate, certificateNumber string, userID, courseID, enrollmentID uint) *Certificate {
	cert := NewCertificate(certificateNumber, userID, courseID, enrollmentID)
	cert.ID = previous.ID
	cert.CreatedAt = previous.CreatedAt
	return cert
}

// MarkGenerated transitions the certificate to GENERATED with its artifact URL
// and a metadata snapshot.
func (c *Certificate) MarkGenerated(pdfURL string, meta CertificateMetadata) error {
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	c.Status = CertificateStatusGenerated
	c.PdfURL = pdfURL
	c.Metadata = datatypes.JSON(raw)
	return nil
}

// Issue transitions a generated, non-expired certificate to ISSUED.
// An optional expiry date must lie in the future.
func (c *Certificate) Issue(expiresAt *time.Time) error {
	if c.Status != CertificateStatusGenerated {
		return ErrCertificateNotGenerated
	}
	if c.IsExpired() {
		return ErrCertificateExpired
	}
	if expiresAt != nil && !expiresAt.After(time.Now()) {
		return ErrExpiryInPast
	}
	now := time.Now()
	c.Status = CertificateStatusIssued
	c.IssuedAt = &now
	if expiresAt != nil {
		c.ExpiresAt = expiresAt
	}
	return nil
}

// Revoke transitions an issued certificate to REVOKED.
func (c *Certificate) Revoke() error {
	if c.Status != CertificateStatusIssued {
		return ErrCertificateNotIssued
	}
	c.Status = CertificateStatusRevoked
	return nil
}

// IsExpired reports whether the certificate's expiry date has passed.
func (c *Certificate) IsExpired() bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(time.Now())
}

// GetMetadata decodes the metadata JSON column.
func (c *Certificate) GetMetadata() (CertificateMetadata, error) {
	var meta CertificateMetadata
	if len(c.Metadata) == 0 {
		return meta, nil
	}
	err := json.Unmarshal(c.Metadata, &meta)
	return meta, err
}
