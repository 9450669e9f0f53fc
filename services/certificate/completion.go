package certificate

import (
	"math"
	"time"

	courseModels "github.com/rashinkp/byway-sub000/models/course"
)

// completionThresholdPercent is the share of lessons a student must finish
// for the course to count as complete.
const completionThresholdPercent = 90.0

// CompletionService aggregates lesson progress into completion decisions and
// statistics. All operations are read-only.
type CompletionService struct {
	enrollments EnrollmentReader
	lessons     LessonReader
	progress    LessonProgressReader
	courses     CourseReader
	users       UserReader
}

func NewCompletionService(
	enrollments EnrollmentReader,
	lessons LessonReader,
	progress LessonProgressReader,
	courses CourseReader,
	users UserReader,
) *CompletionService {
	return &CompletionService{
		enrollments: enrollments,
		lessons:     lessons,
		progress:    progress,
		courses:     courses,
		users:       users,
	}
}

// IsCourseComplete reports whether the user finished at least 90% of the
// course's lessons. A user with an active enrollment but zero progress rows
// counts as complete; that fallback mirrors long-standing behavior and is
// kept until product decides otherwise.
func (s *CompletionService) IsCourseComplete(userID, courseID uint) (bool, error) {
	enrollment, err := s.enrollments.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return false, err
	}
	if enrollment == nil || enrollment.AccessStatus != "ACTIVE" {
		return false, nil
	}

	lessons, err := s.lessons.FindByCourseID(courseID)
	if err != nil {
		return false, err
	}
	if len(lessons) == 0 {
		return false, nil
	}

	progress, err := s.progress.FindByEnrollment(enrollment.ID, courseID)
	if err != nil {
		return false, err
	}
	if len(progress) == 0 {
		return true, nil
	}

	completed := 0
	for _, p := range progress {
		if p.Completed {
			completed++
		}
	}

	percent := float64(completed) / float64(len(lessons)) * 100
	return percent >= completionThresholdPercent, nil
}

// ComputeStatistics derives the completion snapshot embedded into a
// certificate. The instructor lookup is best-effort; a failure there leaves
// the name empty rather than aborting.
func (s *CompletionService) ComputeStatistics(userID, courseID uint) (courseModels.CompletionStats, error) {
	var stats courseModels.CompletionStats

	enrollment, err := s.enrollments.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return stats, err
	}
	if enrollment == nil {
		return stats, nil
	}

	lessons, err := s.lessons.FindByCourseID(courseID)
	if err != nil {
		return stats, err
	}

	progress, err := s.progress.FindByEnrollment(enrollment.ID, courseID)
	if err != nil {
		return stats, err
	}

	stats.TotalLessons = len(lessons)
	if len(progress) > 0 {
		stats.TotalLessons = len(progress)
	}

	var (
		scoreSum   int
		scoreCount int
		latestDone *time.Time
	)
	for _, p := range progress {
		if p.Completed {
			stats.CompletedLessons++
			if p.CompletedAt != nil && (latestDone == nil || p.CompletedAt.After(*latestDone)) {
				latestDone = p.CompletedAt
			}
		}
		if p.Score != nil {
			scoreSum += *p.Score
			scoreCount++
		}
	}

	if scoreCount > 0 {
		stats.AverageScore = int(math.Round(float64(scoreSum) / float64(scoreCount)))
	}

	completionDate := time.Now()
	if latestDone != nil {
		completionDate = *latestDone
	}
	stats.CompletionDate = completionDate.Format("2006-01-02")

	stats.InstructorName = s.lookupInstructorName(courseID)

	return stats, nil
}

// lookupInstructorName resolves the course creator's display name, swallowing
// lookup failures.
func (s *CompletionService) lookupInstructorName(courseID uint) string {
	course, err := s.courses.FindByID(courseID)
	if err != nil || course == nil {
		return ""
	}
	instructor, err := s.users.FindByID(course.CreatedBy)
	if err != nil || instructor == nil {
		return ""
	}
	return instructor.Name
}
