package course

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generatedCertificate(t *testing.T) *Certificate {
	t.Helper()
	cert := NewCertificate("CERT-TEST-000001", 1, 7, 3)
	meta := CertificateMetadata{
		CompletionStats: CompletionStats{TotalLessons: 10, CompletedLessons: 10, AverageScore: 92},
		GeneratedAt:     time.Now(),
	}
	require.NoError(t, cert.MarkGenerated("https://example.com/cert.pdf", meta))
	return cert
}

func TestNewCertificateStartsPending(t *testing.T) {
	cert := NewCertificate("CERT-TEST-000001", 1, 7, 3)
	assert.Equal(t, CertificateStatusPending, cert.Status)
	assert.Empty(t, cert.PdfURL)
	assert.Nil(t, cert.IssuedAt)
}

func TestMarkGeneratedStoresMetadata(t *testing.T) {
	cert := generatedCertificate(t)

	assert.Equal(t, CertificateStatusGenerated, cert.Status)
	assert.Equal(t, "https://example.com/cert.pdf", cert.PdfURL)

	meta, err := cert.GetMetadata()
	require.NoError(t, err)
	assert.Equal(t, 10, meta.CompletionStats.TotalLessons)
	assert.Equal(t, 92, meta.CompletionStats.AverageScore)
}

func TestIssueRequiresGenerated(t *testing.T) {
	cert := NewCertificate("CERT-TEST-000001", 1, 7, 3)
	err := cert.Issue(nil)
	assert.ErrorIs(t, err, ErrCertificateNotGenerated)
}

func TestIssueSetsIssuedAt(t *testing.T) {
	cert := generatedCertificate(t)

	future := time.Now().Add(365 * 24 * time.Hour)
	require.NoError(t, cert.Issue(&future))

	assert.Equal(t, CertificateStatusIssued, cert.Status)
	require.NotNil(t, cert.IssuedAt)
	assert.Equal(t, &future, cert.ExpiresAt)
}

func TestIssueRejectsPastExpiry(t *testing.T) {
	cert := generatedCertificate(t)

	past := time.Now().Add(-time.Hour)
	err := cert.Issue(&past)
	assert.ErrorIs(t, err, ErrExpiryInPast)
	assert.Equal(t, CertificateStatusGenerated, cert.Status)
}

func TestRevokeRequiresIssued(t *testing.T) {
	cert := generatedCertificate(t)
	assert.ErrorIs(t, cert.Revoke(), ErrCertificateNotIssued)

	require.NoError(t, cert.Issue(nil))
	require.NoError(t, cert.Revoke())
	assert.Equal(t, CertificateStatusRevoked, cert.Status)

	// Revoking twice fails
	assert.ErrorIs(t, cert.Revoke(), ErrCertificateNotIssued)
}

func TestIsExpired(t *testing.T) {
	cert := generatedCertificate(t)
	assert.False(t, cert.IsExpired())

	past := time.Now().Add(-time.Minute)
	cert.ExpiresAt = &past
	assert.True(t, cert.IsExpired())
}

func TestRegenerateFromKeepsIdentity(t *testing.T) {
	original := generatedCertificate(t)
	original.ID = 42
	original.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	regen := RegenerateFrom(original, "CERT-TEST-000002", 1, 7, 3)

	assert.Equal(t, uint(42), regen.ID)
	assert.Equal(t, original.CreatedAt, regen.CreatedAt)
	assert.Equal(t, "CERT-TEST-000002", regen.CertificateNumber)
	assert.Equal(t, CertificateStatusPending, regen.Status)
	assert.Empty(t, regen.PdfURL)
	assert.Empty(t, regen.Metadata)
}
