package utils

import (
	"log"
	"time"

	"github.com/rashinkp/byway-sub000/database"
	"github.com/rashinkp/byway-sub000/models"
	"github.com/rashinkp/byway-sub000/models/course"
	"github.com/rashinkp/byway-sub000/repositories"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[CERT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// processExpiredCertificates revokes ISSUED certificates whose expiry
// has passed so verification stops accepting them
func processExpiredCertificates() {
	repo := repositories.NewCertificateRepository(database.Database.Db)

	expired, err := repo.FindExpiredIssued()
	if err != nil {
		logScheduler("Error fetching expired certificates: " + err.Error())
		return
	}

	for i := range expired {
		cert := &expired[i]
		if err := cert.Revoke(); err != nil {
			logScheduler("Error revoking expired certificate " + cert.CertificateNumber + ": " + err.Error())
			continue
		}
		if err := repo.Update(cert); err != nil {
			logScheduler("Error revoking expired certificate " + cert.CertificateNumber + ": " + err.Error())
			continue
		}
		logScheduler("Certificate " + cert.CertificateNumber + " expired and was revoked")
	}
}

// sendCompletionReminders nudges students who started a course this
// month but have stalled for over a week
func sendCompletionReminders() {
	db := database.Database.Db
	monthStart := now.BeginningOfMonth()
	staleBefore := time.Now().AddDate(0, 0, -7)

	var enrollments []course.Enrollment
	if err := db.Where("status = ? AND is_deleted = ? AND created_at >= ? AND updated_at < ?", "IN_PROGRESS", false, monthStart, staleBefore).
		Find(&enrollments).Error; err != nil {
		logScheduler("Error fetching stalled enrollments: " + err.Error())
		return
	}

	for _, enrollment := range enrollments {
		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", enrollment.UserID, false).First(&user).Error; err != nil {
			continue
		}

		var c course.Course
		if err := db.Where("id = ? AND is_deleted = ?", enrollment.CourseID, false).First(&c).Error; err != nil {
			continue
		}

		SendCompletionReminderEmail(user.Email, user.Name, c.Title, enrollment.Progress)
	}

	logScheduler("Completion reminders processed")
}

// cleanupExpiredOTPs soft deletes OTP rows past their expiry
func cleanupExpiredOTPs() {
	db := database.Database.Db

	result := db.Model(&models.OTP{}).
		Where("expires_at < ? AND is_deleted = ?", time.Now(), false).
		Update("is_deleted", true)
	if result.Error != nil {
		logScheduler("Error cleaning up OTPs: " + result.Error.Error())
		return
	}
}

// StartCertificateScheduler wires the recurring maintenance jobs
func StartCertificateScheduler() *cron.Cron {
	c := cron.New()

	// Revoke expired certificates every hour
	c.AddFunc("0 * * * *", processExpiredCertificates)

	// Remind stalled students every Monday morning
	c.AddFunc("0 9 * * 1", sendCompletionReminders)

	// Clear stale OTPs every night
	c.AddFunc("30 2 * * *", cleanupExpiredOTPs)

	c.Start()
	logScheduler("Certificate scheduler started")

	return c
}
