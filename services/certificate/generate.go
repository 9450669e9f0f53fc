package certificate

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	courseModels "github.com/rashinkp/byway-sub000/models/course"
)

const (
	// regenerationCooldownDays is the minimum age of an existing certificate
	// before it may be regenerated.
	regenerationCooldownDays = 30

	retryAttempts = 3
)

// keyedMutex serializes work per string key. It keeps concurrent generation
// requests for the same (user, course) pair from racing each other within
// this process; the unique DB constraints remain the cross-process backstop.
// Entries are reference counted and removed once the last holder unlocks, so
// the map does not accumulate one mutex per pair ever seen.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) *keyedLock {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return l
}

func (k *keyedMutex) unlock(key string, l *keyedLock) {
	l.mu.Unlock()

	k.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()
}

// GenerateCertificateUseCase orchestrates the certificate generation
// workflow: enrollment validation, regeneration cooldown, completion check,
// PDF rendering, artifact upload and persistence.
type GenerateCertificateUseCase struct {
	enrollments  EnrollmentReader
	certificates CertificateStore
	completion   *CompletionService
	courses      CourseReader
	users        UserReader
	pdf          PDFGenerator
	storage      FileStorage

	locks      keyedMutex
	retryDelay time.Duration
}

func NewGenerateCertificateUseCase(
	enrollments EnrollmentReader,
	certificates CertificateStore,
	completion *CompletionService,
	courses CourseReader,
	users UserReader,
	pdf PDFGenerator,
	storage FileStorage,
) *GenerateCertificateUseCase {
	return &GenerateCertificateUseCase{
		enrollments:  enrollments,
		certificates: certificates,
		completion:   completion,
		courses:      courses,
		users:        users,
		pdf:          pdf,
		storage:      storage,
		retryDelay:   200 * time.Millisecond,
	}
}

func failure(msg string) GenerateCertificateOutput {
	return GenerateCertificateOutput{Success: false, Error: msg}
}

// Execute runs the generation workflow. It never panics past its boundary and
// never returns an error; every failure path is captured in the output.
func (uc *GenerateCertificateUseCase) Execute(ctx context.Context, input GenerateCertificateInput) (out GenerateCertificateOutput) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Certificate generation panic for user %d course %d: %v", input.UserID, input.CourseID, r)
			out = failure(fmt.Sprintf("%v", r))
		}
	}()

	key := fmt.Sprintf("%d:%d", input.UserID, input.CourseID)
	lock := uc.locks.lock(key)
	defer uc.locks.unlock(key, lock)

	// Step 1: enrollment check
	enrollment, err := uc.enrollments.FindByUserAndCourse(input.UserID, input.CourseID)
	if err != nil {
		return failure(err.Error())
	}
	if enrollment == nil {
		return failure("User is not enrolled in this course")
	}

	// Step 2: existing certificate and regeneration cooldown
	existing, err := uc.certificates.FindByUserAndCourse(input.UserID, input.CourseID)
	if err != nil {
		return failure(err.Error())
	}
	if existing != nil {
		daysSince := time.Since(existing.UpdatedAt).Hours() / 24
		if daysSince < regenerationCooldownDays {
			remaining := int(math.Ceil(regenerationCooldownDays - daysSince))
			return failure(fmt.Sprintf("Certificate was generated recently. Please wait %d day(s) before regenerating", remaining))
		}
		if existing.PdfURL != "" {
			// Losing the old artifact is not worth failing the regeneration.
			if err := uc.withRetry(func() error { return uc.storage.DeleteFile(ctx, existing.PdfURL) }); err != nil {
				log.Printf("Failed to delete old certificate PDF %s: %v", existing.PdfURL, err)
			}
		}
	}

	// Step 3: completion check
	complete, err := uc.completion.IsCourseComplete(input.UserID, input.CourseID)
	if err != nil {
		return failure(err.Error())
	}
	if !complete {
		return failure("Course is not completed yet")
	}

	// Step 4: entity resolution
	courseRec, err := uc.courses.FindByID(input.CourseID)
	if err != nil {
		return failure(err.Error())
	}
	if courseRec == nil {
		return failure("Course not found")
	}
	userRec, err := uc.users.FindByID(input.UserID)
	if err != nil {
		return failure(err.Error())
	}
	if userRec == nil {
		return failure("User not found")
	}

	// Step 5: statistics snapshot
	stats, err := uc.completion.ComputeStatistics(input.UserID, input.CourseID)
	if err != nil {
		return failure(err.Error())
	}

	// Steps 6-7: certificate number and entity construction. A regeneration
	// keeps the previous identity but takes a fresh number.
	number := NewCertificateNumber()
	var cert *courseModels.Certificate
	if existing != nil {
		cert = courseModels.RegenerateFrom(existing, number, input.UserID, input.CourseID, enrollment.ID)
	} else {
		cert = courseModels.NewCertificate(number, input.UserID, input.CourseID, enrollment.ID)
	}

	// Step 8: PDF rendering
	data := CertificateTemplateData{
		CertificateNumber: number,
		StudentName:       userRec.Name,
		CourseTitle:       courseRec.Title,
		CompletionDate:    stats.CompletionDate,
		InstructorName:    stats.InstructorName,
		TotalLessons:      stats.TotalLessons,
		CompletedLessons:  stats.CompletedLessons,
		AverageScore:      stats.AverageScore,
		IssuedDate:        time.Now(),
	}
	var pdfBytes []byte
	if err := uc.withRetry(func() error {
		b, renderErr := uc.pdf.GenerateCertificatePDF(data)
		if renderErr != nil {
			return renderErr
		}
		pdfBytes = b
		return nil
	}); err != nil {
		log.Printf("Certificate PDF render failed for %s: %v", number, err)
		return failure("Failed to generate certificate PDF")
	}

	// Step 9: artifact upload
	var pdfURL string
	if err := uc.withRetry(func() error {
		url, uploadErr := uc.storage.UploadFile(ctx, pdfBytes, number+".pdf", "application/pdf", "certificates", map[string]string{
			"userId":   strconv.FormatUint(uint64(input.UserID), 10),
			"courseId": strconv.FormatUint(uint64(input.CourseID), 10),
		})
		if uploadErr != nil {
			return uploadErr
		}
		pdfURL = url
		return nil
	}); err != nil {
		log.Printf("Certificate PDF upload failed for %s: %v", number, err)
		return failure("Failed to upload certificate PDF")
	}

	// Step 10: finalize entity
	meta := courseModels.CertificateMetadata{
		CompletionStats: stats,
		GeneratedAt:     time.Now(),
	}
	if err := cert.MarkGenerated(pdfURL, meta); err != nil {
		return failure(err.Error())
	}

	// Step 11: persist (update keeps the regenerated identity)
	if existing != nil {
		err = uc.certificates.Update(cert)
	} else {
		err = uc.certificates.Create(cert)
	}
	if err != nil {
		log.Printf("Failed to save certificate %s: %v", number, err)
		return failure("Failed to save certificate")
	}

	return GenerateCertificateOutput{Success: true, Certificate: cert}
}

// withRetry runs fn up to retryAttempts times with doubling backoff.
func (uc *GenerateCertificateUseCase) withRetry(fn func() error) error {
	var err error
	delay := uc.retryDelay
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt < retryAttempts-1 && delay > 0 {
			time.Sleep(delay)
			delay *= 2
		}
	}
	return err
}

const certNumberCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewCertificateNumber builds a shareable certificate number of the form
// CERT-<base36 millis>-<6 random base36 chars>. Uniqueness is probabilistic;
// the unique column constraint is the real backstop.
func NewCertificateNumber() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = certNumberCharset[rng.Intn(len(certNumberCharset))]
	}
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return "CERT-" + ts + "-" + string(suffix)
}
