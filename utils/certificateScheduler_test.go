package utils

import (
	"testing"
	"time"

	"github.com/rashinkp/byway-sub000/database"
	courseModels "github.com/rashinkp/byway-sub000/models/course"
	"github.com/rashinkp/byway-sub000/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSchedulerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&courseModels.Certificate{}))

	previous := database.Database
	database.Database = database.DbInstance{Db: db}
	t.Cleanup(func() {
		db.Exec("DELETE FROM certificates")
		database.Database = previous
	})
	return db
}

func seedIssuedCertificate(t *testing.T, repo *repositories.CertificateRepository, courseID uint, number string, expiresAt *time.Time) *courseModels.Certificate {
	t.Helper()
	cert := courseModels.NewCertificate(number, 1, courseID, 1)
	cert.Status = courseModels.CertificateStatusIssued
	cert.ExpiresAt = expiresAt
	require.NoError(t, repo.Create(cert))
	return cert
}

func TestProcessExpiredCertificatesRevokes(t *testing.T) {
	db := newSchedulerTestDB(t)
	repo := repositories.NewCertificateRepository(db)

	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	expired := seedIssuedCertificate(t, repo, 1, "CERT-SCH-000001", &past)
	valid := seedIssuedCertificate(t, repo, 2, "CERT-SCH-000002", &future)
	perpetual := seedIssuedCertificate(t, repo, 3, "CERT-SCH-000003", nil)

	processExpiredCertificates()

	reloaded, err := repo.FindByID(expired.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, courseModels.CertificateStatusRevoked, reloaded.Status)

	for _, untouched := range []*courseModels.Certificate{valid, perpetual} {
		reloaded, err := repo.FindByID(untouched.ID)
		require.NoError(t, err)
		require.NotNil(t, reloaded)
		assert.Equal(t, courseModels.CertificateStatusIssued, reloaded.Status)
	}
}
