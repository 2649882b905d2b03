package repositories

import (
	"context"
	"errors"
	"fmt"

	"jobmatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id string) (*models.Job, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id string) error
	ListByEmployer(ctx context.Context, employerID string, page, pageSize int) ([]models.Job, int64, error)
	SearchLexical(ctx context.Context, terms []string, location string, limit int) ([]string, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindByIDs(ctx context.Context, ids []string) ([]models.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var jobs []models.Job
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) Update(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *JobRepositoryImpl) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) ListByEmployer(ctx context.Context, employerID string, page, pageSize int) ([]models.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := r.db.WithContext(ctx).Model(&models.Job{}).Where("employer_id = ?", employerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&jobs).Error
	return jobs, total, err
}

// SearchLexical finds active jobs whose title or description contains any of
// the given terms. A non-empty location widens the match to the location
// column. Only identifiers are returned; hydration happens separately.
func (r *JobRepositoryImpl) SearchLexical(ctx context.Context, terms []string, location string, limit int) ([]string, error) {
	query := r.db.WithContext(ctx).Model(&models.Job{}).Where("is_active = ?", true)

	var (
		clauses []string
		args    []interface{}
	)
	for _, term := range terms {
		if term == "" {
			continue
		}
		pattern := fmt.Sprintf("%%%s%%", term)
		clauses = append(clauses, "title ILIKE ? OR description ILIKE ?")
		args = append(args, pattern, pattern)
	}
	if location != "" {
		clauses = append(clauses, "location ILIKE ?")
		args = append(args, fmt.Sprintf("%%%s%%", location))
	}
	if len(clauses) == 0 {
		return nil, nil
	}

	where := "(" + clauses[0] + ")"
	for _, c := range clauses[1:] {
		where += " OR (" + c + ")"
	}

	var ids []string
	err := query.Where(where, args...).Limit(limit).Pluck("id", &ids).Error
	return ids, err
}
