package certificate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFRendererWithoutAssets(t *testing.T) {
	// Empty paths fall back to the bundled font and a plain background
	renderer, err := NewPDFRenderer("", "")
	require.NoError(t, err)

	data := CertificateTemplateData{
		CertificateNumber: "CERT-TEST01-ABC123",
		StudentName:       "Asha Nair",
		CourseTitle:       "Go From Scratch",
		CompletionDate:    "2026-08-15",
		InstructorName:    "Ravi Menon",
		TotalLessons:      10,
		CompletedLessons:  10,
		AverageScore:      92,
		IssuedDate:        time.Date(2026, 8, 16, 12, 0, 0, 0, time.UTC),
	}

	pdf, err := renderer.GenerateCertificatePDF(data)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)

	// A PDF document always opens with the magic header
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestPDFRendererMissingTemplateFile(t *testing.T) {
	_, err := NewPDFRenderer("/nonexistent/template.png", "")
	assert.Error(t, err)
}
