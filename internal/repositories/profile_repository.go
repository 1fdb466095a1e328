package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/kkh1902/promptsave-sub001/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *models.Profile) error
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile *models.Profile) error
}

// PostgresProfileRepository implements ProfileRepository with GORM
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// CreateProfile inserts a profile, failing with ErrAlreadyExists when the username is taken
func (r *PostgresProfileRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	if taken, err := r.usernameTaken(ctx, profile.Username, profile.ID); err != nil {
		return err
	} else if taken {
		return fmt.Errorf("%w: username %q", ErrAlreadyExists, profile.Username)
	}
	return r.db.WithContext(ctx).Create(profile).Error
}

// GetProfileByID retrieves a profile by Firebase UID
func (r *PostgresProfileRepository) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: profile %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &profile, nil
}

// GetProfileByUsername retrieves a profile by its unique username
func (r *PostgresProfileRepository) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: username %s", ErrNotFound, username)
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile saves an existing profile, failing with ErrAlreadyExists when the new username is taken
func (r *PostgresProfileRepository) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	if taken, err := r.usernameTaken(ctx, profile.Username, profile.ID); err != nil {
		return err
	} else if taken {
		return fmt.Errorf("%w: username %q", ErrAlreadyExists, profile.Username)
	}
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *PostgresProfileRepository) usernameTaken(ctx context.Context, username, ownerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("username = ? AND id <> ?", username, ownerID).
		Count(&count).Error
	return count > 0, err
}
