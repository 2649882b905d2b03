package repositories

import (
	"context"
	"errors"
	"time"

	"jobmatch_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for this user")
)

type ProfileRepository interface {
	// StudentProfile operations
	CreateStudentProfile(ctx context.Context, profile *models.StudentProfile) error
	FindStudentProfileByUserID(ctx context.Context, userID string) (*models.StudentProfile, error)
	UpdateStudentProfile(ctx context.Context, profile *models.StudentProfile) error
	ListProfilesWithStaleEmbeddings(ctx context.Context, olderThan time.Time, limit int) ([]models.StudentProfile, error)

	// EmployerProfile operations
	CreateEmployerProfile(ctx context.Context, profile *models.EmployerProfile) error
	FindEmployerProfileByUserID(ctx context.Context, userID string) (*models.EmployerProfile, error)
	UpdateEmployerProfile(ctx context.Context, profile *models.EmployerProfile) error

	// Embedding cache columns on the student profile row
	LoadEmbedding(ctx context.Context, ownerID string) ([]byte, time.Time, error)
	SaveEmbedding(ctx context.Context, ownerID string, raw []byte, updatedAt time.Time) error
	ClearEmbedding(ctx context.Context, ownerID string) error
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

// StudentProfile operations

func (r *ProfileRepositoryImpl) CreateStudentProfile(ctx context.Context, profile *models.StudentProfile) error {
	err := r.db.WithContext(ctx).Create(profile).Error
	if isUniqueViolation(err) {
		return ErrProfileAlreadyExists
	}
	return err
}

func (r *ProfileRepositoryImpl) FindStudentProfileByUserID(ctx context.Context, userID string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateStudentProfile(ctx context.Context, profile *models.StudentProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// ListProfilesWithStaleEmbeddings returns profiles whose embedding is missing
// or older than the given cutoff. Used by the background refresh worker.
func (r *ProfileRepositoryImpl) ListProfilesWithStaleEmbeddings(ctx context.Context, olderThan time.Time, limit int) ([]models.StudentProfile, error) {
	var profiles []models.StudentProfile
	err := r.db.WithContext(ctx).
		Where("embedding_updated_at IS NULL OR embedding_updated_at < ?", olderThan).
		Limit(limit).
		Find(&profiles).Error
	return profiles, err
}

// EmployerProfile operations

func (r *ProfileRepositoryImpl) CreateEmployerProfile(ctx context.Context, profile *models.EmployerProfile) error {
	err := r.db.WithContext(ctx).Create(profile).Error
	if isUniqueViolation(err) {
		return ErrProfileAlreadyExists
	}
	return err
}

func (r *ProfileRepositoryImpl) FindEmployerProfileByUserID(ctx context.Context, userID string) (*models.EmployerProfile, error) {
	var profile models.EmployerProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateEmployerProfile(ctx context.Context, profile *models.EmployerProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// Embedding cache columns

func (r *ProfileRepositoryImpl) LoadEmbedding(ctx context.Context, ownerID string) ([]byte, time.Time, error) {
	var profile models.StudentProfile
	err := r.db.WithContext(ctx).
		Select("embedding_cache", "embedding_updated_at").
		First(&profile, "id = ?", ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, time.Time{}, ErrProfileNotFound
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	var updatedAt time.Time
	if profile.EmbeddingUpdatedAt != nil {
		updatedAt = *profile.EmbeddingUpdatedAt
	}
	return []byte(profile.EmbeddingCache), updatedAt, nil
}

func (r *ProfileRepositoryImpl) SaveEmbedding(ctx context.Context, ownerID string, raw []byte, updatedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.StudentProfile{}).
		Where("id = ?", ownerID).
		Updates(map[string]interface{}{
			"embedding_cache":      datatypes.JSON(raw),
			"embedding_updated_at": updatedAt,
		}).Error
}

func (r *ProfileRepositoryImpl) ClearEmbedding(ctx context.Context, ownerID string) error {
	return r.db.WithContext(ctx).
		Model(&models.StudentProfile{}).
		Where("id = ?", ownerID).
		Updates(map[string]interface{}{
			"embedding_cache":      nil,
			"embedding_updated_at": nil,
		}).Error
}
