package repositories

import (
	"fmt"
	"testing"
	"time"

	courseModels "github.com/rashinkp/byway-sub000/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&courseModels.Certificate{}))

	t.Cleanup(func() {
		db.Exec("DELETE FROM certificates")
	})
	return db
}

func seedCertificate(t *testing.T, repo *CertificateRepository, userID, courseID uint, number, status string) *courseModels.Certificate {
	t.Helper()
	cert := courseModels.NewCertificate(number, userID, courseID, 1)
	cert.Status = status
	require.NoError(t, repo.Create(cert))
	return cert
}

func TestCertificateCreateAndFind(t *testing.T) {
	repo := NewCertificateRepository(newTestDB(t))

	created := seedCertificate(t, repo, 1, 7, "CERT-AAA-000001", courseModels.CertificateStatusGenerated)

	byID, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "CERT-AAA-000001", byID.CertificateNumber)

	byPair, err := repo.FindByUserAndCourse(1, 7)
	require.NoError(t, err)
	require.NotNil(t, byPair)
	assert.Equal(t, created.ID, byPair.ID)

	byNumber, err := repo.FindByCertificateNumber("CERT-AAA-000001")
	require.NoError(t, err)
	require.NotNil(t, byNumber)
}

func TestCertificateFindMissingReturnsNil(t *testing.T) {
	repo := NewCertificateRepository(newTestDB(t))

	cert, err := repo.FindByUserAndCourse(999, 999)
	require.NoError(t, err)
	assert.Nil(t, cert)
}

func TestCertificateFindByUserID(t *testing.T) {
	repo := NewCertificateRepository(newTestDB(t))

	seedCertificate(t, repo, 1, 1, "CERT-UUU-000001", courseModels.CertificateStatusGenerated)
	seedCertificate(t, repo, 1, 2, "CERT-UUU-000002", courseModels.CertificateStatusIssued)
	seedCertificate(t, repo, 2, 3, "CERT-UUU-000003", courseModels.CertificateStatusGenerated)

	other := seedCertificate(t, repo, 1, 4, "CERT-UUU-000004", courseModels.CertificateStatusGenerated)
	require.NoError(t, repo.Delete(other.ID))

	certs, err := repo.FindByUserID(1)
	require.NoError(t, err)
	require.Len(t, certs, 2)
	for _, cert := range certs {
		assert.EqualValues(t, 1, cert.UserID)
	}
}

func TestCertificateFindByCourseID(t *testing.T) {
	repo := NewCertificateRepository(newTestDB(t))

	seedCertificate(t, repo, 1, 7, "CERT-VVV-000001", courseModels.CertificateStatusGenerated)
	seedCertificate(t, repo, 2, 7, "CERT-VVV-000002", courseModels.CertificateStatusGenerated)
	seedCertificate(t, repo, 3, 8, "CERT-VVV-000003", courseModels.CertificateStatusGenerated)

	certs, err := repo.FindByCourseID(7)
	require.NoError(t, err)
	require.Len(t, certs, 2)
	for _, cert := range certs {
		assert.EqualValues(t, 7, cert.CourseID)
	}
}

func TestCertificateFindByStatus(t *testing.T) {
	repo := NewCertificateRepository(newTestDB(t))

	seedCertificate(t, repo, 1, 1, "CERT-WWW-000001", courseModels.CertificateStatusGenerated)
	seedCertificate(t, repo, 2, 2, "CERT-WWW-000002", courseModels.CertificateStatusIssued)
	seedCertificate(t, repo, 3, 3, "CERT-WWW-000003", courseModels.CertificateStatusIssued)

	issued, err := repo.FindCertificatesByStatus(courseModels.CertificateStatusIssued)
	require.NoError(t, err)
	assert.Len(t, issued, 2)

	revoked, err := repo.FindCertificatesByStatus(courseModels.CertificateStatusRevoked)
	require.NoError(t, err)
	assert.Empty(t, revoked)
}

func TestCertificateSoftDelete(t *testing.T) {
	repo := NewCertificateRepository(newTestDB(t))

	created := seedCertificate(t, repo, 1, 7, "CERT-AAA-000002", courseModels.CertificateStatusGenerated)
	require.NoError(t, repo.Delete(created.ID))

	found, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCertificateListPagination(t *testing.T) {
	repo := NewCertificateRepository(newTestDB(t))

	for i := 0; i < 25; i++ {
		seedCertificate(t, repo, 1, uint(i+1), fmt.Sprintf("CERT-AAA-%06d", i), courseModels.CertificateStatusGenerated)
	}

	page1, err := repo.FindManyByUserID(1, CertificateListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page1.Items, 10)
	assert.EqualValues(t, 25, page1.Total)
	assert.True(t, page1.HasMore)
	assert.Equal(t, 2, page1.NextPage)

	page3, err := repo.FindManyByUserID(1, CertificateListParams{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page3.Items, 5)
	assert.False(t, page3.HasMore)
	assert.Equal(t, 0, page3.NextPage)
}

func TestCertificateListStatusFilterAndSearch(t *testing.T) {
	repo := NewCertificateRepository(newTestDB(t))

	seedCertificate(t, repo, 1, 1, "CERT-AAA-X00001", courseModels.CertificateStatusGenerated)
	seedCertificate(t, repo, 1, 2, "CERT-BBB-X00002", courseModels.CertificateStatusIssued)
	seedCertificate(t, repo, 1, 3, "CERT-BBB-X00003", courseModels.CertificateStatusIssued)
	seedCertificate(t, repo, 2, 4, "CERT-CCC-X00004", courseModels.CertificateStatusIssued)

	issued, err := repo.FindManyByUserID(1, CertificateListParams{Status: courseModels.CertificateStatusIssued})
	require.NoError(t, err)
	assert.Len(t, issued.Items, 2)

	searched, err := repo.FindManyByUserID(1, CertificateListParams{Search: "bbb"})
	require.NoError(t, err)
	assert.Len(t, searched.Items, 2)

	both, err := repo.FindManyByUserID(1, CertificateListParams{Status: courseModels.CertificateStatusGenerated, Search: "AAA"})
	require.NoError(t, err)
	assert.Len(t, both.Items, 1)
	assert.Equal(t, "CERT-AAA-X00001", both.Items[0].CertificateNumber)
}

func TestCertificateListSortByNumberAsc(t *testing.T) {
	repo := NewCertificateRepository(newTestDB(t))

	seedCertificate(t, repo, 1, 1, "CERT-AAA-Z00003", courseModels.CertificateStatusGenerated)
	seedCertificate(t, repo, 1, 2, "CERT-AAA-Z00001", courseModels.CertificateStatusGenerated)
	seedCertificate(t, repo, 1, 3, "CERT-AAA-Z00002", courseModels.CertificateStatusGenerated)

	page, err := repo.FindManyByUserID(1, CertificateListParams{SortBy: "certificate_number", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "CERT-AAA-Z00001", page.Items[0].CertificateNumber)
	assert.Equal(t, "CERT-AAA-Z00003", page.Items[2].CertificateNumber)
}

func TestFindExpiredIssued(t *testing.T) {
	repo := NewCertificateRepository(newTestDB(t))

	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	expired := seedCertificate(t, repo, 1, 1, "CERT-EEE-000001", courseModels.CertificateStatusIssued)
	expired.ExpiresAt = &past
	require.NoError(t, repo.Update(expired))

	valid := seedCertificate(t, repo, 1, 2, "CERT-EEE-000002", courseModels.CertificateStatusIssued)
	valid.ExpiresAt = &future
	require.NoError(t, repo.Update(valid))

	seedCertificate(t, repo, 1, 3, "CERT-EEE-000003", courseModels.CertificateStatusIssued)

	found, err := repo.FindExpiredIssued()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "CERT-EEE-000001", found[0].CertificateNumber)
}
