package repositories

import (
	"errors"
	"strings"
	"time"

	courseModels "github.com/rashinkp/byway-sub000/models/course"

	"gorm.io/gorm"
)

// CertificateListParams controls the paginated certificate listing.
type CertificateListParams struct {
	Page      int // 1-indexed
	Limit     int
	SortBy    string // created_at, issued_at, certificate_number
	SortOrder string // asc, desc
	Status    string // Optional status filter
	Search    string // Optional text search over certificate_number
}

// CertificatePage is one page of certificates.
type CertificatePage struct {
	Items    []courseModels.Certificate `json:"items"`
	Total    int64                      `json:"total"`
	HasMore  bool                       `json:"hasMore"`
	NextPage int                        `json:"nextPage"` // 0 when there is no next page
}

// CertificateRepository persists certificate records.
type CertificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

func (r *CertificateRepository) Create(cert *courseModels.Certificate) error {
	return r.db.Create(cert).Error
}

func (r *CertificateRepository) Update(cert *courseModels.Certificate) error {
	return r.db.Save(cert).Error
}

func (r *CertificateRepository) Delete(id uint) error {
	return r.db.Model(&courseModels.Certificate{}).Where("id = ?", id).Update("is_deleted", true).Error
}

func (r *CertificateRepository) FindByID(id uint) (*courseModels.Certificate, error) {
	return r.findOne("id = ? AND is_deleted = ?", id, false)
}

// FindByUserID returns all of a user's certificates, newest first.
func (r *CertificateRepository) FindByUserID(userID uint) ([]courseModels.Certificate, error) {
	return r.findMany("user_id = ? AND is_deleted = ?", userID, false)
}

// FindByCourseID returns every certificate issued for a course, newest first.
func (r *CertificateRepository) FindByCourseID(courseID uint) ([]courseModels.Certificate, error) {
	return r.findMany("course_id = ? AND is_deleted = ?", courseID, false)
}

// FindCertificatesByStatus returns all certificates in a lifecycle status,
// newest first.
func (r *CertificateRepository) FindCertificatesByStatus(status string) ([]courseModels.Certificate, error) {
	return r.findMany("status = ? AND is_deleted = ?", status, false)
}

// FindByUserAndCourse returns the canonical certificate for an enrollment,
// or nil when none exists. The unique (user_id, course_id) index guarantees
// at most one row.
func (r *CertificateRepository) FindByUserAndCourse(userID, courseID uint) (*courseModels.Certificate, error) {
	return r.findOne("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false)
}

func (r *CertificateRepository) FindByCertificateNumber(number string) (*courseModels.Certificate, error) {
	return r.findOne("certificate_number = ? AND is_deleted = ?", number, false)
}

// FindManyByUserID returns a page of the user's certificates with optional
// status filter and certificate-number search.
func (r *CertificateRepository) FindManyByUserID(userID uint, params CertificateListParams) (*CertificatePage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := r.db.Model(&courseModels.Certificate{}).Where("user_id = ? AND is_deleted = ?", userID, false)

	if params.Status != "" {
		db = db.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		db = db.Where("certificate_number LIKE ?", "%"+strings.ToUpper(params.Search)+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, err
	}

	sortBy := params.SortBy
	switch sortBy {
	case "issued_at", "certificate_number", "created_at":
	default:
		sortBy = "created_at"
	}
	sortOrder := "desc"
	if strings.EqualFold(params.SortOrder, "asc") {
		sortOrder = "asc"
	}

	var items []courseModels.Certificate
	if err := db.Order(sortBy + " " + sortOrder).Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}

	result := &CertificatePage{
		Items:   items,
		Total:   total,
		HasMore: int64(offset+limit) < total,
	}
	if result.HasMore {
		result.NextPage = page + 1
	}
	return result, nil
}

// FindExpiredIssued returns issued certificates whose expiry date has passed.
func (r *CertificateRepository) FindExpiredIssued() ([]courseModels.Certificate, error) {
	var certs []courseModels.Certificate
	err := r.db.Where("status = ? AND expires_at IS NOT NULL AND expires_at < ? AND is_deleted = ?",
		courseModels.CertificateStatusIssued, time.Now(), false).Find(&certs).Error
	return certs, err
}

func (r *CertificateRepository) findMany(query string, args ...interface{}) ([]courseModels.Certificate, error) {
	var certs []courseModels.Certificate
	err := r.db.Where(query, args...).Order("created_at desc").Find(&certs).Error
	return certs, err
}

func (r *CertificateRepository) findOne(query string, args ...interface{}) (*courseModels.Certificate, error) {
	var cert courseModels.Certificate
	err := r.db.Where(query, args...).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}
