package certificate

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/rashinkp/byway-sub000/models"
	courseModels "github.com/rashinkp/byway-sub000/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ---- fakes ----

type fakeEnrollments struct {
	enrollment *courseModels.Enrollment
	err        error
}

func (f *fakeEnrollments) FindByUserAndCourse(userID, courseID uint) (*courseModels.Enrollment, error) {
	return f.enrollment, f.err
}

type fakeCourses struct {
	course *courseModels.Course
	err    error
}

func (f *fakeCourses) FindByID(id uint) (*courseModels.Course, error) {
	return f.course, f.err
}

type fakeUsers struct {
	user *models.User
	err  error
}

func (f *fakeUsers) FindByID(id uint) (*models.User, error) {
	return f.user, f.err
}

type fakeLessons struct {
	lessons []courseModels.Lesson
	err     error
}

func (f *fakeLessons) FindByCourseID(courseID uint) ([]courseModels.Lesson, error) {
	return f.lessons, f.err
}

type fakeProgress struct {
	rows []courseModels.LessonProgress
	err  error
}

func (f *fakeProgress) FindByEnrollment(enrollmentID, courseID uint) ([]courseModels.LessonProgress, error) {
	return f.rows, f.err
}

type fakeCertStore struct {
	existing  *courseModels.Certificate
	created   *courseModels.Certificate
	updated   *courseModels.Certificate
	createErr error
	updateErr error
}

func (f *fakeCertStore) Create(cert *courseModels.Certificate) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = cert
	return nil
}

func (f *fakeCertStore) Update(cert *courseModels.Certificate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = cert
	return nil
}

func (f *fakeCertStore) FindByUserAndCourse(userID, courseID uint) (*courseModels.Certificate, error) {
	return f.existing, nil
}

type fakePDF struct {
	data  []byte
	err   error
	calls int
	last  CertificateTemplateData
}

func (f *fakePDF) GenerateCertificatePDF(data CertificateTemplateData) ([]byte, error) {
	f.calls++
	f.last = data
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

type fakeStorage struct {
	uploadURL   string
	uploadErr   error
	deleteErr   error
	uploadCalls int
	deleteCalls int
	uploaded    []byte
	deleted     []string
	ops         []string
}

func (f *fakeStorage) UploadFile(ctx context.Context, data []byte, filename, contentType, folder string, metadata map[string]string) (string, error) {
	f.uploadCalls++
	f.ops = append(f.ops, "upload")
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploaded = data
	return f.uploadURL, nil
}

func (f *fakeStorage) DeleteFile(ctx context.Context, url string) error {
	f.deleteCalls++
	f.ops = append(f.ops, "delete")
	f.deleted = append(f.deleted, url)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return nil
}

// ---- fixture ----

type fixture struct {
	uc      *GenerateCertificateUseCase
	enr     *fakeEnrollments
	certs   *fakeCertStore
	lessons *fakeLessons
	prog    *fakeProgress
	pdf     *fakePDF
	store   *fakeStorage
}

func completedLessons(n, total int) ([]courseModels.Lesson, []courseModels.LessonProgress) {
	lessons := make([]courseModels.Lesson, total)
	rows := make([]courseModels.LessonProgress, total)
	done := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	for i := 0; i < total; i++ {
		lessons[i] = courseModels.Lesson{Model: gorm.Model{ID: uint(i + 1)}, CourseID: 7}
		rows[i] = courseModels.LessonProgress{LessonID: uint(i + 1), CourseID: 7}
		if i < n {
			rows[i].Completed = true
			at := done.Add(time.Duration(i) * time.Hour)
			rows[i].CompletedAt = &at
		}
	}
	return lessons, rows
}

func newFixture() *fixture {
	lessons, rows := completedLessons(10, 10)

	f := &fixture{
		enr: &fakeEnrollments{enrollment: &courseModels.Enrollment{
			Model:        gorm.Model{ID: 3},
			UserID:       1,
			CourseID:     7,
			AccessStatus: "ACTIVE",
		}},
		certs:   &fakeCertStore{},
		lessons: &fakeLessons{lessons: lessons},
		prog:    &fakeProgress{rows: rows},
		pdf:     &fakePDF{data: []byte("%PDF-1.4 fake")},
		store:   &fakeStorage{uploadURL: "https://storage.googleapis.com/bucket/certificates/x.pdf"},
	}

	courses := &fakeCourses{course: &courseModels.Course{
		Model:     gorm.Model{ID: 7},
		Title:     "Go From Scratch",
		CreatedBy: 99,
	}}
	users := &fakeUsers{user: &models.User{Model: gorm.Model{ID: 1}, Name: "Asha Nair"}}

	completion := NewCompletionService(f.enr, f.lessons, f.prog, courses, users)
	f.uc = NewGenerateCertificateUseCase(f.enr, f.certs, completion, courses, users, f.pdf, f.store)
	f.uc.retryDelay = 0
	return f
}

// ---- tests ----

func TestGenerateCertificateSuccess(t *testing.T) {
	f := newFixture()

	out := f.uc.Execute(context.Background(), GenerateCertificateInput{UserID: 1, CourseID: 7})

	require.True(t, out.Success, "expected success, got error: %s", out.Error)
	require.NotNil(t, out.Certificate)

	cert := out.Certificate
	assert.Equal(t, courseModels.CertificateStatusGenerated, cert.Status)
	assert.Equal(t, f.store.uploadURL, cert.PdfURL)
	assert.Regexp(t, `^CERT-[0-9A-Z]+-[0-9A-Z]{6}$`, cert.CertificateNumber)

	// Persisted via Create, not Update
	assert.Same(t, cert, f.certs.created)
	assert.Nil(t, f.certs.updated)

	// Statistics snapshot ends up in the metadata
	meta, err := cert.GetMetadata()
	require.NoError(t, err)
	assert.Equal(t, 10, meta.CompletionStats.TotalLessons)
	assert.Equal(t, 10, meta.CompletionStats.CompletedLessons)
	assert.Equal(t, "Asha Nair", f.pdf.last.StudentName)
	assert.Equal(t, "Go From Scratch", f.pdf.last.CourseTitle)

	// The rendered bytes are what got uploaded
	assert.Equal(t, f.pdf.data, f.store.uploaded)
}

func TestGenerateCertificateNotEnrolled(t *testing.T) {
	f := newFixture()
	f.enr.enrollment = nil

	out := f.uc.Execute(context.Background(), GenerateCertificateInput{UserID: 1, CourseID: 7})

	require.False(t, out.Success)
	assert.Equal(t, "User is not enrolled in this course", out.Error)
	assert.Zero(t, f.pdf.calls)
	assert.Zero(t, f.store.uploadCalls)
	assert.Nil(t, f.certs.created)
}

func TestGenerateCertificateCooldown(t *testing.T) {
	f := newFixture()
	f.certs.existing = &courseModels.Certificate{
		Model: gorm.Model{
			ID:        42,
			UpdatedAt: time.Now().Add(-10 * 24 * time.Hour),
		},
		CertificateNumber: "CERT-OLD-AAAAAA",
	}

	out := f.uc.Execute(context.Background(), GenerateCertificateInput{UserID: 1, CourseID: 7})

	require.False(t, out.Success)
	assert.Equal(t, "Certificate was generated recently. Please wait 20 day(s) before regenerating", out.Error)
	assert.Zero(t, f.pdf.calls)
	assert.Zero(t, f.store.uploadCalls)
}

func TestGenerateCertificateRegeneration(t *testing.T) {
	f := newFixture()
	created := time.Now().Add(-90 * 24 * time.Hour)
	f.certs.existing = &courseModels.Certificate{
		Model: gorm.Model{
			ID:        42,
			CreatedAt: created,
			UpdatedAt: time.Now().Add(-31 * 24 * time.Hour),
		},
		CertificateNumber: "CERT-OLD-AAAAAA",
		UserID:            1,
		CourseID:          7,
		PdfURL:            "https://storage.googleapis.com/bucket/certificates/old.pdf",
	}

	out := f.uc.Execute(context.Background(), GenerateCertificateInput{UserID: 1, CourseID: 7})

	require.True(t, out.Success, "expected success, got error: %s", out.Error)
	cert := out.Certificate

	// Identity survives regeneration, the number does not
	assert.Equal(t, uint(42), cert.ID)
	assert.Equal(t, created, cert.CreatedAt)
	assert.NotEqual(t, "CERT-OLD-AAAAAA", cert.CertificateNumber)

	// Old artifact was deleted before the new one was uploaded
	require.Equal(t, []string{"delete", "upload"}, f.store.ops)
	assert.Equal(t, []string{"https://storage.googleapis.com/bucket/certificates/old.pdf"}, f.store.deleted)

	// Regeneration updates in place
	assert.Same(t, cert, f.certs.updated)
	assert.Nil(t, f.certs.created)
}

func TestGenerateCertificateDeleteFailureIsNonFatal(t *testing.T) {
	f := newFixture()
	f.certs.existing = &courseModels.Certificate{
		Model: gorm.Model{
			ID:        42,
			UpdatedAt: time.Now().Add(-31 * 24 * time.Hour),
		},
		CertificateNumber: "CERT-OLD-AAAAAA",
		PdfURL:            "https://storage.googleapis.com/bucket/certificates/old.pdf",
	}
	f.store.deleteErr = errors.New("object not found")

	out := f.uc.Execute(context.Background(), GenerateCertificateInput{UserID: 1, CourseID: 7})

	require.True(t, out.Success, "delete failure must not abort regeneration: %s", out.Error)
	assert.Equal(t, retryAttempts, f.store.deleteCalls)
	assert.Equal(t, 1, f.store.uploadCalls)
}

func TestGenerateCertificateNotCompleted(t *testing.T) {
	f := newFixture()
	lessons, rows := completedLessons(8, 10)
	f.lessons.lessons = lessons
	f.prog.rows = rows

	out := f.uc.Execute(context.Background(), GenerateCertificateInput{UserID: 1, CourseID: 7})

	require.False(t, out.Success)
	assert.Equal(t, "Course is not completed yet", out.Error)
	assert.Zero(t, f.pdf.calls)
}

func TestGenerateCertificatePDFFailureRetries(t *testing.T) {
	f := newFixture()
	f.pdf.err = errors.New("render blew up")

	out := f.uc.Execute(context.Background(), GenerateCertificateInput{UserID: 1, CourseID: 7})

	require.False(t, out.Success)
	assert.Equal(t, "Failed to generate certificate PDF", out.Error)
	assert.Equal(t, retryAttempts, f.pdf.calls)
	assert.Zero(t, f.store.uploadCalls)
	assert.Nil(t, f.certs.created)
}

func TestGenerateCertificateUploadFailureIsFatal(t *testing.T) {
	f := newFixture()
	f.store.uploadErr = errors.New("bucket unavailable")

	out := f.uc.Execute(context.Background(), GenerateCertificateInput{UserID: 1, CourseID: 7})

	require.False(t, out.Success)
	assert.Equal(t, "Failed to upload certificate PDF", out.Error)
	assert.Equal(t, retryAttempts, f.store.uploadCalls)
	assert.Nil(t, f.certs.created)
}

func TestGenerateCertificateSaveFailure(t *testing.T) {
	f := newFixture()
	f.certs.createErr = errors.New("duplicate key")

	out := f.uc.Execute(context.Background(), GenerateCertificateInput{UserID: 1, CourseID: 7})

	require.False(t, out.Success)
	assert.Equal(t, "Failed to save certificate", out.Error)
}

func TestNewCertificateNumberFormat(t *testing.T) {
	re := regexp.MustCompile(`^CERT-[0-9A-Z]+-[0-9A-Z]{6}$`)
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		n := NewCertificateNumber()
		assert.Regexp(t, re, n)
		seen[n] = true
	}
	assert.Greater(t, len(seen), 1, "numbers should vary")
}

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	var km keyedMutex

	first := km.lock("1:7")

	acquired := make(chan struct{})
	go func() {
		l := km.lock("1:7")
		close(acquired)
		km.unlock("1:7", l)
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first still held")
	case <-time.After(50 * time.Millisecond):
	}

	km.unlock("1:7", first)
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock never acquired after release")
	}
}

func TestKeyedMutexReleasesIdleEntries(t *testing.T) {
	var km keyedMutex

	l := km.lock("1:7")
	other := km.lock("2:7")

	km.mu.Lock()
	assert.Len(t, km.locks, 2)
	km.mu.Unlock()

	km.unlock("1:7", l)
	km.unlock("2:7", other)

	km.mu.Lock()
	assert.Empty(t, km.locks)
	km.mu.Unlock()
}
