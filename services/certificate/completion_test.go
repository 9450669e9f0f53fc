package certificate

import (
	"testing"
	"time"

	"github.com/rashinkp/byway-sub000/models"
	courseModels "github.com/rashinkp/byway-sub000/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCompletionFixture(lessonCount, completedCount int) (*CompletionService, *fakeEnrollments, *fakeLessons, *fakeProgress) {
	lessons, rows := completedLessons(completedCount, lessonCount)

	enr := &fakeEnrollments{enrollment: &courseModels.Enrollment{
		Model:        gorm.Model{ID: 3},
		UserID:       1,
		CourseID:     7,
		AccessStatus: "ACTIVE",
	}}
	ls := &fakeLessons{lessons: lessons}
	pr := &fakeProgress{rows: rows}
	courses := &fakeCourses{course: &courseModels.Course{Model: gorm.Model{ID: 7}, Title: "Go From Scratch", CreatedBy: 99}}
	users := &fakeUsers{user: &models.User{Model: gorm.Model{ID: 99}, Name: "Ravi Menon"}}

	return NewCompletionService(enr, ls, pr, courses, users), enr, ls, pr
}

func TestIsCourseCompleteAtThreshold(t *testing.T) {
	// 9 of 10 lessons is exactly 90%
	svc, _, _, _ := newCompletionFixture(10, 9)

	complete, err := svc.IsCourseComplete(1, 7)
	require.NoError(t, err)
	assert.True(t, complete)
}

func TestIsCourseCompleteBelowThreshold(t *testing.T) {
	svc, _, _, _ := newCompletionFixture(10, 8)

	complete, err := svc.IsCourseComplete(1, 7)
	require.NoError(t, err)
	assert.False(t, complete)
}

func TestIsCourseCompleteNoProgressRows(t *testing.T) {
	// An active enrollment with no progress rows counts as complete
	svc, _, _, pr := newCompletionFixture(10, 10)
	pr.rows = nil

	complete, err := svc.IsCourseComplete(1, 7)
	require.NoError(t, err)
	assert.True(t, complete)
}

func TestIsCourseCompleteNoLessons(t *testing.T) {
	svc, _, ls, _ := newCompletionFixture(10, 10)
	ls.lessons = nil

	complete, err := svc.IsCourseComplete(1, 7)
	require.NoError(t, err)
	assert.False(t, complete)
}

func TestIsCourseCompleteBlockedAccess(t *testing.T) {
	svc, enr, _, _ := newCompletionFixture(10, 10)
	enr.enrollment.AccessStatus = "BLOCKED"

	complete, err := svc.IsCourseComplete(1, 7)
	require.NoError(t, err)
	assert.False(t, complete)
}

func TestIsCourseCompleteNotEnrolled(t *testing.T) {
	svc, enr, _, _ := newCompletionFixture(10, 10)
	enr.enrollment = nil

	complete, err := svc.IsCourseComplete(1, 7)
	require.NoError(t, err)
	assert.False(t, complete)
}

func TestComputeStatistics(t *testing.T) {
	svc, _, _, pr := newCompletionFixture(10, 10)

	// Sprinkle quiz scores over a few rows
	s80, s90, s95 := 80, 90, 95
	pr.rows[0].Score = &s80
	pr.rows[1].Score = &s90
	pr.rows[2].Score = &s95

	stats, err := svc.ComputeStatistics(1, 7)
	require.NoError(t, err)

	assert.Equal(t, 10, stats.TotalLessons)
	assert.Equal(t, 10, stats.CompletedLessons)
	// (80+90+95)/3 = 88.33 rounds to 88
	assert.Equal(t, 88, stats.AverageScore)
	assert.Equal(t, "Ravi Menon", stats.InstructorName)

	// Completion date is the latest completion, formatted as a date
	latest := pr.rows[9].CompletedAt
	assert.Equal(t, latest.Format("2006-01-02"), stats.CompletionDate)
}

func TestComputeStatisticsNoProgressFallsBackToToday(t *testing.T) {
	svc, _, _, pr := newCompletionFixture(5, 5)
	pr.rows = nil

	stats, err := svc.ComputeStatistics(1, 7)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalLessons)
	assert.Equal(t, 0, stats.CompletedLessons)
	assert.Equal(t, 0, stats.AverageScore)
	assert.Equal(t, time.Now().Format("2006-01-02"), stats.CompletionDate)
}

func TestComputeStatisticsInstructorLookupBestEffort(t *testing.T) {
	svc, _, _, _ := newCompletionFixture(10, 10)
	svc.users = &fakeUsers{user: nil}

	stats, err := svc.ComputeStatistics(1, 7)
	require.NoError(t, err)
	assert.Equal(t, "", stats.InstructorName)
	assert.Equal(t, 10, stats.CompletedLessons)
}
